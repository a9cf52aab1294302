// Package importer reads line items from spreadsheet files so invoices can
// be filled from exports of other tools. CSV and XLSX are supported.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/invoicehub/engine/model"
)

// Result holds the parsed line items plus the number of rows that were
// skipped because they had no description.
type Result struct {
	Items   []model.LineItem
	Skipped int
}

// ParseError reports a file that could not be read at all. Individual bad
// cells never produce a ParseError, they fall back to zero values.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s file: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseCSV reads line items from CSV data. The column separator is sniffed
// from the first line (semicolon wins over comma, for exports from
// European locales). A header row naming the columns is honored in any
// order; without one the columns are description, quantity, price.
func ParseCSV(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Format: "CSV", Err: err}
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffSeparator(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: "CSV", Err: err}
	}
	return parseRows(rows), nil
}

// ParseXLSX reads line items from the first sheet of an XLSX workbook. The
// same header and column rules as for CSV apply.
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Format: "XLSX", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Format: "XLSX", Err: fmt.Errorf("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Format: "XLSX", Err: err}
	}
	return parseRows(rows), nil
}

// AppendItems merges imported items onto an existing item list, continuing
// the position sequence.
func AppendItems(items []model.LineItem, imported []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(items)+len(imported))
	out = append(out, items...)
	out = append(out, imported...)
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

func sniffSeparator(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}

// column indexes into a row, -1 when the column is absent
type columns struct {
	description int
	quantity    int
	price       int
}

var defaultColumns = columns{description: 0, quantity: 1, price: 2}

// detectHeader checks whether the first row names the columns. Any row
// containing a cell called "description" counts as a header.
func detectHeader(row []string) (columns, bool) {
	cols := columns{description: -1, quantity: -1, price: -1}
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "description":
			cols.description = i
		case "quantity", "qty":
			cols.quantity = i
		case "price", "unit price":
			cols.price = i
		}
	}
	if cols.description < 0 {
		return defaultColumns, false
	}
	return cols, true
}

func parseRows(rows [][]string) *Result {
	res := &Result{}
	cols := defaultColumns
	if len(rows) > 0 {
		if header, ok := detectHeader(rows[0]); ok {
			cols = header
			rows = rows[1:]
		}
	}
	for _, row := range rows {
		desc := strings.TrimSpace(cell(row, cols.description))
		if desc == "" {
			// fully empty lines at the end of a file are not counted
			if rowEmpty(row) {
				continue
			}
			res.Skipped++
			continue
		}
		item := model.LineItem{
			Description: desc,
			Quantity:    parseQuantity(cell(row, cols.quantity)),
			Price:       parsePrice(cell(row, cols.price)),
		}
		res.Items = append(res.Items, item)
	}
	for i := range res.Items {
		res.Items[i].Position = i + 1
	}
	return res
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseQuantity falls back to zero on anything unparseable. Imported rows
// are meant to land in the form for review, not to abort the import.
func parseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// quantities exported as "3.0" and the like
	if f, err := strconv.ParseFloat(normalizeNumber(s), 64); err == nil {
		return int(f)
	}
	return 0
}

func parsePrice(s string) decimal.Decimal {
	s = normalizeNumber(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return decimal.Zero
}

// normalizeNumber turns localized amounts like "1.234,56" or "9,99" into
// parseable form.
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	comma := strings.LastIndexByte(s, ',')
	dot := strings.LastIndexByte(s, '.')
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// dot groups thousands, comma is the decimal mark
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot < 0:
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0 && dot > comma:
		s = strings.ReplaceAll(s, ",", "")
	}
	return s
}
