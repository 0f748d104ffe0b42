// Package htmldoc provides a single tree abstraction over scientific
// documents delivered as HTML (arXiv, PMC web pages) or JATS XML (PubMed
// Central OA).
//
// Both flavours are parsed into golang.org/x/net/html nodes. JATS elements
// are renamed to their HTML counterparts (fig becomes figure, graphic
// becomes img, and so on) so that extraction code queries one vocabulary
// and never branches on the source format.
package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/citectx/format"
)

// ErrUnparseable is returned when markup cannot be turned into a tree.
var ErrUnparseable = errors.New("unparseable document")

// Reader provides access to a parsed document tree.
type Reader struct {
	root   *html.Node
	format format.Format
}

// Open reads and parses a file, choosing the parser from the extension and
// leading content.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	return Parse(bytes.NewReader(data), format.Resolve(filename, data))
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	return Parse(r, format.HTML)
}

// OpenString parses markup held in memory, sniffing its format.
func OpenString(markup string) (*Reader, error) {
	return Parse(strings.NewReader(markup), format.Resolve("", []byte(markup)))
}

// Parse builds a tree from r using the parser for f. Unknown formats are
// parsed as HTML.
func Parse(r io.Reader, f format.Format) (*Reader, error) {
	var (
		root *html.Node
		err  error
	)

	switch f {
	case format.JATS:
		root, err = parseJATS(r)
	default:
		f = format.HTML
		root, err = html.Parse(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrUnparseable, f, err)
	}

	return &Reader{root: root, format: f}, nil
}

// FromNode wraps an already parsed tree.
func FromNode(root *html.Node) *Reader {
	return &Reader{root: root, format: format.HTML}
}

// Root returns the document node.
func (r *Reader) Root() *html.Node {
	return r.root
}

// Format returns the markup flavour the tree was parsed from.
func (r *Reader) Format() format.Format {
	return r.format
}

// Body returns the body element, or the document node when there is none.
func (r *Reader) Body() *html.Node {
	if body := FindFirst(r.root, "body"); body != nil {
		return body
	}
	return r.root
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// The tree holds no file handles.
	return nil
}
