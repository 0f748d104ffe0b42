package model

import (
	"reflect"
	"testing"
)

// ============================================================================
// Kind Tests
// ============================================================================

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTable, "table"},
		{KindFigure, "figure"},
		{KindUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
		if tt.kind != KindUnknown && ParseKind(tt.want) != tt.kind {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.want, ParseKind(tt.want), tt.kind)
		}
	}

	if ParseKind("fig") != KindFigure {
		t.Error("ParseKind(\"fig\") should be KindFigure")
	}
}

// ============================================================================
// Entity Tests
// ============================================================================

func TestEntityID(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		kind     Kind
		position int
		want     string
	}{
		{"table", "2401.00001", KindTable, 3, "2401.00001_table_3"},
		{"figure", "PMC123456", KindFigure, 1, "PMC123456_fig_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntityID(tt.doc, tt.kind, tt.position); got != tt.want {
				t.Errorf("EntityID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntityRecord(t *testing.T) {
	e := Entity{
		ID:                "doc_table_1",
		DocumentID:        "doc",
		Kind:              KindTable,
		Position:          1,
		Caption:           "Table 1: Results.",
		Body:              "a | b\n1 | 2",
		Mentions:          []string{"first mention", "second mention"},
		ContextParagraphs: []string{"context"},
		Terms:             []string{"accuracy"},
	}

	r := e.Record()
	if r.Mentions != "first mention\n\nsecond mention" {
		t.Errorf("Mentions = %q", r.Mentions)
	}
	if r.ContextParagraphs != "context" {
		t.Errorf("ContextParagraphs = %q", r.ContextParagraphs)
	}
	if r.Kind != "table" || r.PaperID != "doc" {
		t.Errorf("Record() = %+v", r)
	}

	fields := r.Fields()
	if fields["table_id"] != "doc_table_1" {
		t.Errorf("table_id = %v", fields["table_id"])
	}
	if _, ok := fields["figure_id"]; ok {
		t.Error("table record should not carry figure_id")
	}
	if _, ok := fields["url"]; ok {
		t.Error("table record should not carry url")
	}
}

func TestFigureRecordFields(t *testing.T) {
	e := Entity{ID: "doc_fig_2", DocumentID: "doc", Kind: KindFigure, Position: 2, URL: "https://example.org/a.png"}

	fields := e.Record().Fields()
	if fields["figure_id"] != "doc_fig_2" {
		t.Errorf("figure_id = %v", fields["figure_id"])
	}
	if fields["url"] != "https://example.org/a.png" {
		t.Errorf("url = %v", fields["url"])
	}
	if _, ok := fields["body"]; ok {
		t.Error("figure record should not carry body")
	}
	if e.Payload() != e.URL {
		t.Errorf("Payload() = %q, want URL", e.Payload())
	}
}

func TestSplitParagraphs(t *testing.T) {
	in := []string{"one", "two", "three"}
	if got := SplitParagraphs(JoinParagraphs(in)); !reflect.DeepEqual(got, in) {
		t.Errorf("SplitParagraphs(JoinParagraphs()) = %v, want %v", got, in)
	}
	if got := SplitParagraphs(""); got != nil {
		t.Errorf("SplitParagraphs(\"\") = %v, want nil", got)
	}
}

// ============================================================================
// Paragraph Tests
// ============================================================================

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "Neural Network", "neural network"},
		{"ligature", "Efﬁcient", "efficient"},
		{"full width", "ＡＢＣ", "abc"},
		{"accented", "CAFÉ", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewParagraph(t *testing.T) {
	p := NewParagraph(4, "As shown in Table 1.")
	if p.Index != 4 || p.Text != "As shown in Table 1." || p.Normalized != "as shown in table 1." {
		t.Errorf("NewParagraph() = %+v", p)
	}
}

// ============================================================================
// Document and Stats Tests
// ============================================================================

func TestDefaultBaseURL(t *testing.T) {
	tests := []struct {
		source, id, want string
	}{
		{SourceArxiv, "2401.00001", "https://arxiv.org/html/2401.00001/"},
		{"PubMed", "PMC42", "https://pmc.ncbi.nlm.nih.gov/articles/PMC42/"},
		{"other", "x", ""},
		{SourceArxiv, "", ""},
	}

	for _, tt := range tests {
		if got := DefaultBaseURL(tt.source, tt.id); got != tt.want {
			t.Errorf("DefaultBaseURL(%q, %q) = %q, want %q", tt.source, tt.id, got, tt.want)
		}
	}
}

func TestSourceFromID(t *testing.T) {
	if SourceFromID("PMC1234") != SourcePubMed {
		t.Error("PMC ids should map to pubmed")
	}
	if SourceFromID("2401.00001") != SourceArxiv {
		t.Error("other ids should map to arxiv")
	}
}

func TestStatsAdd(t *testing.T) {
	var total Stats
	total.Add(Stats{TablesExtracted: 2, TablesSkipped: 1, FiguresExtracted: 3})
	total.Add(Stats{FiguresSkipped: 2, ImageFallbacks: 1})

	if total.Extracted() != 5 {
		t.Errorf("Extracted() = %d, want 5", total.Extracted())
	}
	if total.Skipped() != 3 {
		t.Errorf("Skipped() = %d, want 3", total.Skipped())
	}
	if total.ImageFallbacks != 1 {
		t.Errorf("ImageFallbacks = %d, want 1", total.ImageFallbacks)
	}
}
