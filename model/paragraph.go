package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Paragraph is a unit of prose taken from a document.
type Paragraph struct {
	// Index is the position among selected paragraphs (0-based, no gaps).
	Index int

	// Text is the flattened paragraph text.
	Text string

	// Normalized is the lowercased, compatibility-normalized Text used for
	// term matching.
	Normalized string
}

// NewParagraph creates a Paragraph and derives its normalized text.
func NewParagraph(index int, text string) Paragraph {
	return Paragraph{
		Index:      index,
		Text:       text,
		Normalized: Normalize(text),
	}
}

// Normalize folds text for matching: NFKC first so ligatures and
// full-width forms become plain letters, then Unicode lowercasing.
func Normalize(text string) string {
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Lower(language.Und).String(norm.NFKC.String(text))
}
