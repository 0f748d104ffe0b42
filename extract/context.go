package extract

import (
	"strings"

	"github.com/tsawler/citectx/model"
)

// SelectContext returns the paragraphs that share enough informative terms
// with an entity without citing it. A term counts when it occurs anywhere
// in the paragraph's normalized text, including inside longer words.
// Paragraphs keep document order; the overlap count never reorders them.
func SelectContext(paragraphs []model.Paragraph, terms, mentions []string, kind model.Kind, cfg *Config) []string {
	minOverlap, limit := cfg.contextLimits(kind)
	if len(terms) < minOverlap || limit <= 0 {
		return nil
	}

	mentioned := make(map[string]struct{}, len(mentions))
	for _, m := range mentions {
		mentioned[m] = struct{}{}
	}

	var selected []string
	for _, p := range paragraphs {
		if len(selected) >= limit {
			break
		}
		if _, ok := mentioned[p.Text]; ok {
			continue
		}
		if overlap(p.Normalized, terms, minOverlap) {
			selected = append(selected, p.Text)
		}
	}
	return selected
}

// overlap reports whether at least need of the terms occur in text.
func overlap(text string, terms []string, need int) bool {
	if need <= 0 {
		return true
	}
	count := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			count++
			if count >= need {
				return true
			}
		}
	}
	return false
}
