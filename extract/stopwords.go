package extract

import (
	"sort"
	"strings"
)

// englishStopwords are English function words.
var englishStopwords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of",
	"with", "by", "from", "as", "is", "was", "are", "were", "been", "be",
	"have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "must", "shall", "can", "this", "that", "these",
	"those", "it", "its", "they", "them", "their", "we", "our", "you", "your",
	"he", "she", "him", "her", "his", "hers", "who", "which", "what", "where",
	"when", "why", "how", "all", "each", "every", "both", "few", "more",
	"most", "other", "some", "such", "no", "not", "only", "same", "so",
	"than", "too", "very", "just", "also", "now", "here", "there", "then",
	"if", "about", "into", "through", "during", "before", "after", "above",
	"below", "between",
}

// italianStopwords are Italian function words.
var italianStopwords = []string{
	"il", "lo", "la", "i", "gli", "le", "un", "uno", "una", "di", "a", "da",
	"in", "con", "su", "per", "tra", "fra", "e", "o", "ma", "se", "che",
	"come", "dove", "quando", "questo", "quello", "quale", "chi", "cosa",
	"sono", "essere",
}

// StopwordSet is a set of lowercase words that never count as informative.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from word lists. Words are lowercased and
// trimmed; empty entries are ignored.
func NewStopwordSet(lists ...[]string) StopwordSet {
	s := make(StopwordSet)
	for _, list := range lists {
		for _, w := range list {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				s[w] = struct{}{}
			}
		}
	}
	return s
}

// DefaultStopwords returns the English and Italian function words.
func DefaultStopwords() StopwordSet {
	return NewStopwordSet(englishStopwords, italianStopwords)
}

// Contains reports whether w is a stopword.
func (s StopwordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// With returns a copy of s extended with extra words.
func (s StopwordSet) With(extra ...string) StopwordSet {
	out := make(StopwordSet, len(s)+len(extra))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range NewStopwordSet(extra) {
		out[w] = struct{}{}
	}
	return out
}

// Sorted returns the words in ascending order.
func (s StopwordSet) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
