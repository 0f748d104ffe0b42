package extract

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/tsawler/citectx/model"
)

// TermExtractor derives informative terms from caption and table text.
// It is safe for concurrent use.
type TermExtractor struct {
	token     *regexp.Regexp
	minLength int
	stopwords StopwordSet
}

// NewTermExtractor creates an extractor using the token and term lengths
// and the stopwords of cfg.
func NewTermExtractor(cfg *Config) *TermExtractor {
	minToken := cfg.MinTokenLength
	if minToken < 1 {
		minToken = 1
	}
	return &TermExtractor{
		token:     regexp.MustCompile(fmt.Sprintf(`\b[a-z]{%d,}\b`, minToken)),
		minLength: cfg.MinTermLength,
		stopwords: cfg.Stopwords,
	}
}

// Extract returns the distinct informative terms of the texts, sorted.
// Each text is tokenized on its own.
func (te *TermExtractor) Extract(texts ...string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, text := range texts {
		for _, tok := range te.token.FindAllString(model.Normalize(text), -1) {
			if len(tok) < te.minLength || te.stopwords.Contains(tok) {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			terms = append(terms, tok)
		}
	}
	sort.Strings(terms)
	return terms
}
