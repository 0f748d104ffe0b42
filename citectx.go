// Package citectx provides a fluent API for extracting tables and figures,
// with the paragraphs that cite them, from scientific HTML and JATS XML.
//
// Basic usage:
//
//	entities, warnings, err := citectx.Open("2401.00001.html").Entities()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", citectx.FormatWarnings(warnings))
//	}
//
// With options:
//
//	tables, _, err := citectx.FromString(markup).
//	    DocumentID("PMC123456").
//	    Navigation(htmldoc.NavigationExclusionStandard).
//	    Tables()
//
// For batch runs over many files, see the batch package.
package citectx

import (
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/citectx/format"
)

// ErrUnsupportedFormat is returned for files whose extension is neither
// HTML nor XML.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Open returns an Extractor for a file. The document id defaults to the
// file name without its extension, and the source and base URL are guessed
// from that id. The file is read by the terminal operation.
//
// Example:
//
//	figures, _, err := citectx.Open("PMC7096066.xml").Figures()
func Open(filename string) *Extractor {
	e := &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
	if !format.Supported(filename) {
		e.err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	return e
}

// FromString returns an Extractor for markup held in memory. Without a
// DocumentID the entities are keyed under "document" and relative image
// paths are left as they are.
func FromString(markup string) *Extractor {
	return &Extractor{
		markup:   markup,
		inMemory: true,
		options:  defaultOptions(),
	}
}

// FromReader reads all of r and returns an Extractor for its content.
func FromReader(r io.Reader) *Extractor {
	data, err := io.ReadAll(r)
	e := FromString(string(data))
	if err != nil {
		e.err = fmt.Errorf("reading markup: %w", err)
	}
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustEntities wraps a terminal operation and panics if the error is
// non-nil. Warnings are discarded.
//
// Example:
//
//	tables := citectx.MustEntities(citectx.Open("doc.html").Tables())
func MustEntities[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
