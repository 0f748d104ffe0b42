package model

import (
	"strings"

	"github.com/tsawler/citectx/format"
)

// Well-known document sources.
const (
	SourceArxiv  = "arxiv"
	SourcePubMed = "pubmed"
)

// Base URL templates used to resolve relative image paths. The document id
// replaces "{id}".
var defaultBaseURLs = map[string]string{
	SourceArxiv:  "https://arxiv.org/html/{id}/",
	SourcePubMed: "https://pmc.ncbi.nlm.nih.gov/articles/{id}/",
}

// Document is the input to extraction: markup plus the identity it is
// extracted under.
type Document struct {
	// ID is the stable document identifier, e.g. "2401.00001" or "PMC123456".
	ID string

	// Source names where the document came from ("arxiv", "pubmed", ...).
	Source string

	// BaseURL resolves relative image paths. Empty leaves them untouched.
	BaseURL string

	// Markup is the raw HTML or JATS XML.
	Markup string

	// Format selects the parser. Unknown sniffs the markup.
	Format format.Format
}

// DefaultBaseURL returns the base URL conventionally used for a document
// from the given source, or "" when the source is unknown.
func DefaultBaseURL(source, id string) string {
	tmpl, ok := defaultBaseURLs[strings.ToLower(source)]
	if !ok || id == "" {
		return ""
	}
	return strings.ReplaceAll(tmpl, "{id}", id)
}

// SourceFromID guesses the source from the shape of a document id: PubMed
// Central ids start with "PMC", anything else is treated as arXiv.
func SourceFromID(id string) string {
	if strings.HasPrefix(strings.ToUpper(id), "PMC") {
		return SourcePubMed
	}
	return SourceArxiv
}
