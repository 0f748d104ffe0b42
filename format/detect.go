// Package format decides how a scientific document's markup should be
// parsed.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported markup flavour.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HTML indicates HTML or XHTML, as served by arXiv and PMC.
	HTML
	// JATS indicates JATS/NLM article XML, as served by the PubMed Central
	// OA service.
	JATS
)

// sniffLen is how many leading bytes content detection looks at.
const sniffLen = 1024

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HTML:
		return "HTML"
	case JATS:
		return "JATS"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case HTML:
		return ".html"
	case JATS:
		return ".xml"
	default:
		return ""
	}
}

// Detect determines the format from a filename extension. ".xml" files are
// reported as JATS; use Resolve when content is available, since XHTML is
// sometimes saved with that extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".xml", ".nxml":
		return JATS
	default:
		return Unknown
	}
}

// Supported reports whether the filename has an extension this package
// recognizes.
func Supported(filename string) bool {
	return Detect(filename) != Unknown
}

// Sniff inspects leading content bytes.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(data) == 0 {
		return Unknown
	}
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}

	upper := strings.ToUpper(string(data))

	// An XML declaration can precede either XHTML or JATS.
	if strings.Contains(upper, "<HTML") || strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return HTML
	}
	if strings.Contains(upper, "<!DOCTYPE ARTICLE") || strings.Contains(upper, "<ARTICLE") ||
		strings.Contains(upper, "<PMC-ARTICLESET") || strings.HasPrefix(upper, "<?XML") {
		return JATS
	}
	if strings.HasPrefix(upper, "<") {
		return HTML
	}

	return Unknown
}

// Resolve combines extension and content. Content wins when the extension
// is ambiguous or missing; HTML is the final default because the HTML
// parser accepts anything.
func Resolve(filename string, data []byte) Format {
	byExt := Detect(filename)
	if byExt == HTML {
		return HTML
	}

	if sniffed := Sniff(data); sniffed != Unknown {
		return sniffed
	}
	if byExt != Unknown {
		return byExt
	}
	return HTML
}

// DetectFromReader reads up to the sniff window from r and resolves the
// format. The bytes consumed are returned so callers can replay them.
func DetectFromReader(filename string, r io.Reader) (Format, []byte, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, nil, err
	}
	buf = buf[:n]
	return Resolve(filename, buf), buf, nil
}
