package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrLastItem is returned when a caller tries to remove the only remaining
// line item. An invoice always keeps at least one item.
var ErrLastItem = errors.New("cannot remove the last line item")

// ItemField names a line item field for UpdateItem.
type ItemField string

const (
	ItemFieldDescription ItemField = "description"
	ItemFieldQuantity    ItemField = "quantity"
	ItemFieldPrice       ItemField = "price"
)

// The item operations never mutate their input slice. The caller replaces
// its items with the returned slice and runs Recompute afterwards.

// AddItem appends a blank item with quantity 1.
func AddItem(items []LineItem) []LineItem {
	out := copyItems(items)
	return append(out, LineItem{Quantity: 1, Price: decimal.Zero})
}

// DuplicateItem inserts a copy of items[index] directly after it.
func DuplicateItem(items []LineItem, index int) ([]LineItem, error) {
	if index < 0 || index >= len(items) {
		return items, fmt.Errorf("duplicate item: index %d out of range", index)
	}
	dup := items[index]
	dup.ID = 0
	out := make([]LineItem, 0, len(items)+1)
	out = append(out, items[:index+1]...)
	out = append(out, dup)
	out = append(out, items[index+1:]...)
	return out, nil
}

// RemoveItem removes the item at index. Removing the only item is rejected
// with ErrLastItem; the input is returned unchanged.
func RemoveItem(items []LineItem, index int) ([]LineItem, error) {
	if index < 0 || index >= len(items) {
		return items, fmt.Errorf("remove item: index %d out of range", index)
	}
	if len(items) == 1 {
		return items, ErrLastItem
	}
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out, nil
}

// UpdateItem replaces one field of one item. The caller is responsible for
// numeric coercion: quantity takes an int, price a decimal, description a
// string.
func UpdateItem(items []LineItem, index int, field ItemField, value any) ([]LineItem, error) {
	if index < 0 || index >= len(items) {
		return items, fmt.Errorf("update item: index %d out of range", index)
	}
	out := copyItems(items)
	switch field {
	case ItemFieldDescription:
		s, ok := value.(string)
		if !ok {
			return items, fmt.Errorf("update item: description wants a string, got %T", value)
		}
		out[index].Description = s
	case ItemFieldQuantity:
		n, ok := value.(int)
		if !ok {
			return items, fmt.Errorf("update item: quantity wants an int, got %T", value)
		}
		out[index].Quantity = n
	case ItemFieldPrice:
		d, ok := value.(decimal.Decimal)
		if !ok {
			return items, fmt.Errorf("update item: price wants a decimal, got %T", value)
		}
		out[index].Price = d
	default:
		return items, fmt.Errorf("update item: unknown field %q", field)
	}
	return out, nil
}

func copyItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
