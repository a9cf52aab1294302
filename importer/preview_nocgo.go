//go:build !cgo
// +build !cgo

package importer

import "fmt"

func RenderPreview(pdf []byte) ([]byte, error) {
	return nil, fmt.Errorf("PDF rendering not supported (built without cgo/fitz)")
}
