package citectx

import (
	"context"
	"fmt"
	"os"

	"github.com/tsawler/citectx/batch"
	"github.com/tsawler/citectx/extract"
	"github.com/tsawler/citectx/format"
	"github.com/tsawler/citectx/htmldoc"
	"github.com/tsawler/citectx/model"
)

// Extractor provides a fluent interface for extracting entities from one
// document. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	markup   string
	inMemory bool

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		markup:   e.markup,
		inMemory: e.inMemory,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// DocumentID sets the id entities are keyed under.
//
// Example:
//
//	tables, _, err := citectx.FromString(markup).DocumentID("2401.00001").Tables()
func (e *Extractor) DocumentID(id string) *Extractor {
	newExt := e.clone()
	newExt.options.documentID = id
	return newExt
}

// Source sets the document source, e.g. "arxiv" or "pubmed".
func (e *Extractor) Source(source string) *Extractor {
	newExt := e.clone()
	newExt.options.source = source
	return newExt
}

// BaseURL sets the URL relative image paths are resolved against. "{id}"
// is replaced by the document id.
func (e *Extractor) BaseURL(baseURL string) *Extractor {
	newExt := e.clone()
	newExt.options.baseURL = baseURL
	return newExt
}

// Format forces the parser instead of detecting it.
func (e *Extractor) Format(f format.Format) *Extractor {
	newExt := e.clone()
	newExt.options.format = f
	return newExt
}

// Config replaces the extraction thresholds.
func (e *Extractor) Config(cfg extract.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = cfg
	newExt.options = newExt.options.clone()
	return newExt
}

// TablesOnly skips figure extraction.
func (e *Extractor) TablesOnly() *Extractor {
	newExt := e.clone()
	newExt.options.config.Only = model.KindTable
	return newExt
}

// FiguresOnly skips table extraction.
func (e *Extractor) FiguresOnly() *Extractor {
	newExt := e.clone()
	newExt.options.config.Only = model.KindFigure
	return newExt
}

// Navigation sets how aggressively site chrome is ignored.
//
// Example:
//
//	entities, _, err := citectx.Open("page.html").
//	    Navigation(htmldoc.NavigationExclusionStandard).
//	    Entities()
func (e *Extractor) Navigation(mode htmldoc.NavigationExclusionMode) *Extractor {
	newExt := e.clone()
	newExt.options.config.Navigation = mode
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Result runs the extraction and returns everything it produced, including
// the indexed paragraphs and counters.
func (e *Extractor) Result() (*extract.Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	doc, err := e.document()
	if err != nil {
		return nil, nil, err
	}

	res, err := extract.New(e.options.config).Extract(doc)
	if err != nil {
		return nil, nil, err
	}
	return res, warningsFor(res.Stats, res.Entities), nil
}

// Entities returns the tables, then the figures, each in document order.
//
// Example:
//
//	entities, warnings, err := citectx.Open("2401.00001.html").Entities()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", citectx.FormatWarnings(warnings))
//	}
func (e *Extractor) Entities() ([]model.Entity, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return nil, nil, err
	}
	return res.Entities, warnings, nil
}

// Tables returns only the table entities.
func (e *Extractor) Tables() ([]model.Entity, []Warning, error) {
	res, warnings, err := e.TablesOnly().Result()
	if err != nil {
		return nil, nil, err
	}
	return res.Tables(), warnings, nil
}

// Figures returns only the figure entities.
func (e *Extractor) Figures() ([]model.Entity, []Warning, error) {
	res, warnings, err := e.FiguresOnly().Result()
	if err != nil {
		return nil, nil, err
	}
	return res.Figures(), warnings, nil
}

// Records returns the entities flattened for storage.
func (e *Extractor) Records() ([]model.Record, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return nil, nil, err
	}
	return res.Records(), warnings, nil
}

// WriteTo extracts the document and writes its records to sink, returning
// how many were written.
//
// Example:
//
//	out, _ := sink.New(ctx, sink.KindJSONLines, "entities.jsonl")
//	defer out.Close()
//	n, _, err := citectx.Open("2401.00001.html").WriteTo(ctx, out)
func (e *Extractor) WriteTo(ctx context.Context, sink extract.Sink) (int, []Warning, error) {
	if e.err != nil {
		return 0, nil, e.err
	}

	doc, err := e.document()
	if err != nil {
		return 0, nil, err
	}

	res, err := extract.New(e.options.config).Run(ctx, doc, sink)
	if err != nil {
		return 0, nil, err
	}
	return len(res.Entities), warningsFor(res.Stats, res.Entities), nil
}

// document assembles the input for the engine.
func (e *Extractor) document() (model.Document, error) {
	markup := e.markup
	f := e.options.format
	id := e.options.documentID
	knownID := id != ""

	if !e.inMemory {
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return model.Document{}, fmt.Errorf("failed to open document: %w", err)
		}
		markup = string(data)
		if f == format.Unknown {
			f = format.Resolve(e.filename, data)
		}
		if id == "" {
			id = batch.DocumentID(e.filename)
			knownID = true
		}
	}
	if id == "" {
		id = defaultDocumentID
	}

	source := e.options.source
	if source == "" {
		source = model.SourceFromID(id)
	}

	baseURL := e.options.baseURL
	if baseURL == "" && knownID {
		baseURL = model.DefaultBaseURL(source, id)
	}

	return model.Document{
		ID:      id,
		Source:  source,
		BaseURL: batch.ExpandBaseURL(baseURL, id),
		Markup:  markup,
		Format:  f,
	}, nil
}
