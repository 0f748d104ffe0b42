package citectx

import (
	"github.com/tsawler/citectx/extract"
	"github.com/tsawler/citectx/format"
)

// defaultDocumentID keys in-memory documents that were given no id.
const defaultDocumentID = "document"

// extractOptions holds per-Extractor settings.
type extractOptions struct {
	// Document identity; empty values are derived
	documentID string
	source     string
	baseURL    string

	// Parser selection; Unknown resolves from the extension and content
	format format.Format

	config extract.Config
}

func defaultOptions() extractOptions {
	return extractOptions{
		config: extract.DefaultConfig(),
	}
}

// clone creates a copy that can be modified without affecting o.
func (o extractOptions) clone() extractOptions {
	c := o
	if o.config.ImageDenylist != nil {
		c.config.ImageDenylist = append([]string(nil), o.config.ImageDenylist...)
	}
	if o.config.Stopwords != nil {
		c.config.Stopwords = o.config.Stopwords.With()
	}
	return c
}
