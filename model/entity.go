package model

import (
	"fmt"
	"strings"
)

// ParagraphSeparator joins paragraph lists in flat records.
const ParagraphSeparator = "\n\n"

// Entity is a table or figure extracted from one document, together with
// the prose that cites it or discusses it.
type Entity struct {
	// ID is "<document>_<kind>_<position>", see EntityID.
	ID string

	DocumentID string
	Source     string
	Kind       Kind

	// Position is the 1-based ordinal among emitted entities of the same
	// kind, in document order.
	Position int

	// Caption may be empty.
	Caption string

	// Body is the table text (tables only). Rows are separated by newlines
	// and cells by " | ".
	Body string

	// URL is the resolved image location (figures only).
	URL string

	// Mentions are paragraphs that cite the entity explicitly.
	Mentions []string

	// ContextParagraphs share informative terms with the entity but do not
	// cite it. Never overlaps with Mentions.
	ContextParagraphs []string

	// Terms are the informative terms of a table, sorted. Figures leave
	// this empty.
	Terms []string
}

// EntityID builds the deterministic identifier of an entity.
func EntityID(documentID string, kind Kind, position int) string {
	return fmt.Sprintf("%s_%s_%d", documentID, kind.idToken(), position)
}

// Payload returns the body for tables and the URL for figures.
func (e *Entity) Payload() string {
	if e.Kind == KindFigure {
		return e.URL
	}
	return e.Body
}

// Record is the flat representation of an Entity handed to storage.
type Record struct {
	ID                string   `json:"id" yaml:"id"`
	Kind              string   `json:"kind" yaml:"kind"`
	PaperID           string   `json:"paper_id" yaml:"paper_id"`
	Source            string   `json:"source,omitempty" yaml:"source,omitempty"`
	Caption           string   `json:"caption" yaml:"caption"`
	Body              string   `json:"body,omitempty" yaml:"body,omitempty"`
	URL               string   `json:"url,omitempty" yaml:"url,omitempty"`
	Mentions          string   `json:"mentions" yaml:"mentions"`
	ContextParagraphs string   `json:"context_paragraphs" yaml:"context_paragraphs"`
	Position          int      `json:"position" yaml:"position"`
	Terms             []string `json:"terms,omitempty" yaml:"terms,omitempty"`
}

// Record flattens the entity.
func (e *Entity) Record() Record {
	return Record{
		ID:                e.ID,
		Kind:              e.Kind.String(),
		PaperID:           e.DocumentID,
		Source:            e.Source,
		Caption:           e.Caption,
		Body:              e.Body,
		URL:               e.URL,
		Mentions:          JoinParagraphs(e.Mentions),
		ContextParagraphs: JoinParagraphs(e.ContextParagraphs),
		Position:          e.Position,
		Terms:             e.Terms,
	}
}

// Fields returns the record keyed the way search indexes expect it:
// "table_id" or "figure_id" for the identifier and "body" or "url" for
// the payload.
func (r Record) Fields() map[string]any {
	fields := map[string]any{
		"paper_id":           r.PaperID,
		"caption":            r.Caption,
		"mentions":           r.Mentions,
		"context_paragraphs": r.ContextParagraphs,
		"position":           r.Position,
	}
	if r.Source != "" {
		fields["source"] = r.Source
	}

	switch ParseKind(r.Kind) {
	case KindFigure:
		fields["figure_id"] = r.ID
		fields["url"] = r.URL
	default:
		fields["table_id"] = r.ID
		fields["body"] = r.Body
		if len(r.Terms) > 0 {
			fields["terms"] = r.Terms
		}
	}

	return fields
}

// Records flattens a list of entities, preserving order.
func Records(entities []Entity) []Record {
	records := make([]Record, len(entities))
	for i := range entities {
		records[i] = entities[i].Record()
	}
	return records
}

// JoinParagraphs joins paragraph texts with ParagraphSeparator.
func JoinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, ParagraphSeparator)
}

// SplitParagraphs is the inverse of JoinParagraphs.
func SplitParagraphs(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ParagraphSeparator)
}
