// Package relayout provides a fluent API for rebuilding extracted page
// layout (text lines with spans and writing direction) as editable
// documents.
//
// Basic usage:
//
//	f, _ := os.Create("page.docx")
//	defer f.Close()
//	warnings, err := relayout.Open("page.json").WriteDOCX(f)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", relayout.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := relayout.Open("page.json").
//	    Rotation(90).
//	    Clip(model.NewBBox(0, 0, 300, 400)).
//	    Text()
//
// A page record is JSON of the form
//
//	{"rotation": 0, "blocks": [{"lines": [{"dir": [1, 0], "spans": [...]}]}]}
//
// or, without blocks, {"rotation": 0, "lines": [...]}. Lines of one block
// become one paragraph. For lower-level use, the layout, span and docx
// packages are available directly.
package relayout

import (
	"errors"
	"fmt"
	"io"
)

// ErrInvalidPage is returned when a page record cannot be decoded.
var ErrInvalidPage = errors.New("invalid page record")

// Open returns a Converter for the page record stored in a JSON file.
// The file is read by the first terminal operation.
//
// Example:
//
//	text, warnings, err := relayout.Open("page.json").Text()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns a Converter for the page record read from r.
func FromReader(r io.Reader) *Converter {
	c := &Converter{options: defaultOptions()}
	data, err := io.ReadAll(r)
	if err != nil {
		c.err = fmt.Errorf("reading page record: %w", err)
		return c
	}
	c.data = data
	return c
}

// FromBytes returns a Converter for a page record held in memory.
func FromBytes(data []byte) *Converter {
	return &Converter{
		data:    append([]byte(nil), data...),
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is like Must for operations that also return warnings. The
// warnings are discarded.
//
// Example:
//
//	text := relayout.MustResult(relayout.Open("page.json").Text())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
