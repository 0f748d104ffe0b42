package extract

import (
	"github.com/tsawler/citectx/htmldoc"
	"github.com/tsawler/citectx/model"
)

// Config holds every threshold used by the extraction pipeline
type Config struct {
	// MinParagraphChars is the length a paragraph must exceed (in runes) to be
	// indexed
	MinParagraphChars int

	// MinTableBodyChars is the shortest table body that is kept
	MinTableBodyChars int

	// MinImagePixels is the smallest declared width or height accepted for a
	// loose image
	MinImagePixels int

	// MaxStandaloneCaptionChars bounds the caption taken from the element
	// following a loose image
	MaxStandaloneCaptionChars int

	// MinAltTextChars is the length alt text must exceed to serve as caption
	MinAltTextChars int

	// MinTokenLength is the shortest alphabetic run considered a token
	MinTokenLength int

	// MinTermLength is the shortest token considered informative
	MinTermLength int

	// MaxMentions caps the mention list of every entity
	MaxMentions int

	// TableContextMinOverlap is how many informative terms a paragraph must
	// share with a table to count as its context
	TableContextMinOverlap int

	// FigureContextMinOverlap is the same threshold for figures
	FigureContextMinOverlap int

	// MaxTableContext caps the context paragraphs of a table
	MaxTableContext int

	// MaxFigureContext caps the context paragraphs of a figure
	MaxFigureContext int

	// MaxPersistedTerms caps the terms stored on a table
	MaxPersistedTerms int

	// ImageDenylist rejects loose images whose lowercased source contains
	// any of these substrings
	ImageDenylist []string

	// Stopwords are never informative terms
	Stopwords StopwordSet

	// Navigation skips paragraphs and loose images inside site chrome
	Navigation htmldoc.NavigationExclusionMode

	// Only restricts extraction to one kind. KindUnknown extracts both.
	Only model.Kind
}

// DefaultConfig returns the thresholds tuned for arXiv and PMC articles
func DefaultConfig() Config {
	return Config{
		MinParagraphChars:         20,
		MinTableBodyChars:         10,
		MinImagePixels:            100,
		MaxStandaloneCaptionChars: 500,
		MinAltTextChars:           10,
		MinTokenLength:            3,
		MinTermLength:             4,
		MaxMentions:               10,
		TableContextMinOverlap:    3,
		FigureContextMinOverlap:   2,
		MaxTableContext:           15,
		MaxFigureContext:          10,
		MaxPersistedTerms:         50,
		ImageDenylist:             []string{"icon", "logo", "button", "arrow", "pixel"},
		Stopwords:                 DefaultStopwords(),
		Navigation:                htmldoc.NavigationExclusionNone,
	}
}

// contextLimits returns the minimum overlap and the cap for a kind.
func (c *Config) contextLimits(kind model.Kind) (minOverlap, limit int) {
	if kind == model.KindTable {
		return c.TableContextMinOverlap, c.MaxTableContext
	}
	return c.FigureContextMinOverlap, c.MaxFigureContext
}

func (c *Config) wants(kind model.Kind) bool {
	return c.Only == model.KindUnknown || c.Only == kind
}
