// Package extract finds tables and figures in a scientific document and
// gathers the prose around them: the paragraphs that cite each entity and
// the paragraphs that share enough informative terms with it.
//
// Each step is exported on its own (IndexParagraphs, LocateTables,
// ResolveReference, FindMentions, SelectContext, ...) and Engine wires them
// together. It holds no per-document state, so one
// Engine can serve many goroutines.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/citectx/format"
	"github.com/tsawler/citectx/htmldoc"
	"github.com/tsawler/citectx/model"
)

var (
	// ErrUnparseable is returned when the markup cannot be turned into a
	// tree. It is the same value as htmldoc.ErrUnparseable.
	ErrUnparseable = htmldoc.ErrUnparseable

	// ErrEmptyDocument is returned for documents without markup.
	ErrEmptyDocument = errors.New("empty document")
)

// Sink receives the flat records of one document.
type Sink interface {
	Write(ctx context.Context, records []model.Record) error
}

// Result is the outcome of extracting one document.
type Result struct {
	DocumentID string

	// Entities holds the tables, then the figures, each in document order.
	Entities []model.Entity

	// Paragraphs are the indexed paragraphs the entities were matched
	// against.
	Paragraphs []model.Paragraph

	Stats model.Stats
}

// Tables returns the table entities.
func (r *Result) Tables() []model.Entity {
	return r.ofKind(model.KindTable)
}

// Figures returns the figure entities.
func (r *Result) Figures() []model.Entity {
	return r.ofKind(model.KindFigure)
}

func (r *Result) ofKind(kind model.Kind) []model.Entity {
	var out []model.Entity
	for _, e := range r.Entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Records flattens the entities for storage.
func (r *Result) Records() []model.Record {
	return model.Records(r.Entities)
}

// Engine runs the extraction pipeline with a fixed configuration.
type Engine struct {
	cfg   Config
	terms *TermExtractor
}

// New creates an Engine. A nil stopword set or denylist in cfg is replaced
// by the default.
func New(cfg Config) *Engine {
	if cfg.Stopwords == nil {
		cfg.Stopwords = DefaultStopwords()
	}
	if cfg.ImageDenylist == nil {
		cfg.ImageDenylist = DefaultConfig().ImageDenylist
	}
	return &Engine{
		cfg:   cfg,
		terms: NewTermExtractor(&cfg),
	}
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Extract parses the document's markup and extracts its entities. Parse
// failures wrap ErrUnparseable and leave nothing extracted.
func (e *Engine) Extract(doc model.Document) (*Result, error) {
	if strings.TrimSpace(doc.Markup) == "" {
		return nil, fmt.Errorf("extracting %s: %w", doc.ID, ErrEmptyDocument)
	}

	f := doc.Format
	if f == format.Unknown {
		f = format.Resolve("", []byte(doc.Markup))
	}

	r, err := htmldoc.Parse(strings.NewReader(doc.Markup), f)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", doc.ID, err)
	}
	defer r.Close()

	return e.ExtractTree(doc, r.Root()), nil
}

// ExtractTree extracts entities from an already parsed tree. doc.Markup is
// not used.
func (e *Engine) ExtractTree(doc model.Document, root *html.Node) *Result {
	res := &Result{DocumentID: doc.ID}
	res.Paragraphs = IndexParagraphs(root, &e.cfg)
	res.Stats.Paragraphs = len(res.Paragraphs)

	a := &assembler{
		cfg:        &e.cfg,
		terms:      e.terms,
		doc:        doc,
		paragraphs: res.Paragraphs,
		stats:      &res.Stats,
	}

	if e.cfg.wants(model.KindTable) {
		res.Entities = append(res.Entities, a.tables(root)...)
	}
	if e.cfg.wants(model.KindFigure) {
		res.Entities = append(res.Entities, a.figures(root)...)
	}
	return res
}

// Run extracts a document and hands its records to sink. Nothing is written
// for a document without entities. The context is checked before any work
// starts.
func (e *Engine) Run(ctx context.Context, doc model.Document, sink Sink) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := e.Extract(doc)
	if err != nil {
		return nil, err
	}

	if len(res.Entities) > 0 && sink != nil {
		if err := sink.Write(ctx, res.Records()); err != nil {
			return res, fmt.Errorf("writing %s: %w", doc.ID, err)
		}
	}
	return res, nil
}
