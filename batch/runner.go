// Package batch extracts many documents concurrently. Each document is an
// independent task; a document that fails to parse (or panics) is counted
// and logged, and never stops its siblings.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/citectx/extract"
	"github.com/tsawler/citectx/model"
)

// Options configures a Runner.
type Options struct {
	// Workers bounds concurrent extractions. Zero means GOMAXPROCS.
	Workers int

	// Logger receives progress. Nil discards it.
	Logger *slog.Logger

	// KeepEntities retains every entity in the Report. Leave it off for
	// large corpora written straight to a sink.
	KeepEntities bool
}

// Failure records a document that could not be extracted.
type Failure struct {
	DocumentID string
	Err        error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.DocumentID, f.Err)
}

// Report summarizes a batch run.
type Report struct {
	RunID     string
	Documents int
	Failed    int
	Stats     model.Stats
	Duration  time.Duration

	// Entities are concatenated in input order when Options.KeepEntities
	// is set.
	Entities []model.Entity

	Failures []Failure
}

// Runner extracts documents with a shared engine and sink.
type Runner struct {
	engine  *extract.Engine
	sink    extract.Sink
	workers int
	logger  *slog.Logger
	keep    bool

	// writeMu serializes sink emission.
	writeMu sync.Mutex
}

// New creates a Runner. sink may be nil when only the Report is wanted.
func New(engine *extract.Engine, sink extract.Sink, opts Options) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		engine:  engine,
		sink:    sink,
		workers: workers,
		logger:  logger,
		keep:    opts.KeepEntities,
	}
}

// slot holds the outcome of one task, indexed like the input.
type slot struct {
	started  bool
	id       string
	entities []model.Entity
	stats    model.Stats
	err      error
}

// Run extracts documents held in memory.
func (r *Runner) Run(ctx context.Context, docs []model.Document) (*Report, error) {
	return r.run(ctx, len(docs), func(i int) (model.Document, error) {
		return docs[i], nil
	})
}

// RunFiles loads and extracts files, reading each one only when its task
// starts.
func (r *Runner) RunFiles(ctx context.Context, paths []string, opts LoadOptions) (*Report, error) {
	return r.run(ctx, len(paths), func(i int) (model.Document, error) {
		return LoadDocument(paths[i], opts)
	})
}

func (r *Runner) run(ctx context.Context, n int, load func(int) (model.Document, error)) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := r.logger.With("run", runID)
	logger.Info("batch started", "documents", n, "workers", r.workers)

	slots := make([]slot, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				slots[i] = slot{started: true, err: err}
				return nil
			}

			doc, err := load(i)
			if err != nil {
				slots[i] = slot{started: true, id: doc.ID, err: err}
				logger.Warn("document skipped", "index", i, "error", err)
				return nil
			}

			docLog := logger.With("document", doc.ID)
			res, err := r.extractSafe(doc)
			if err != nil {
				slots[i] = slot{started: true, id: doc.ID, err: err}
				docLog.Warn("document skipped", "error", err)
				return nil
			}

			slots[i] = slot{started: true, id: doc.ID, stats: res.Stats}
			if r.keep {
				slots[i].entities = res.Entities
			}
			docLog.Info("document extracted",
				"tables", res.Stats.TablesExtracted,
				"figures", res.Stats.FiguresExtracted,
				"skipped", res.Stats.Skipped())

			return r.emit(gctx, doc.ID, res)
		})
	}

	waitErr := g.Wait()
	report := r.report(runID, slots, time.Since(start))
	logger.Info("batch finished",
		"documents", report.Documents,
		"failed", report.Failed,
		"entities", report.Stats.Extracted(),
		"duration", report.Duration)

	if waitErr != nil {
		return report, waitErr
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// extractSafe turns a panic inside extraction into a document failure.
func (r *Runner) extractSafe(doc model.Document) (res *extract.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res, err = nil, fmt.Errorf("extracting %s: panic: %v", doc.ID, rec)
		}
	}()
	return r.engine.Extract(doc)
}

// emit writes one document's records. A sink failure aborts the batch.
func (r *Runner) emit(ctx context.Context, id string, res *extract.Result) error {
	if r.sink == nil || len(res.Entities) == 0 {
		return nil
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := r.sink.Write(ctx, res.Records()); err != nil {
		return fmt.Errorf("writing %s: %w", id, err)
	}
	return nil
}

func (r *Runner) report(runID string, slots []slot, elapsed time.Duration) *Report {
	report := &Report{RunID: runID, Duration: elapsed}
	for _, s := range slots {
		if !s.started {
			// The batch was cancelled before this document was scheduled.
			continue
		}
		report.Documents++
		if s.err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{DocumentID: s.id, Err: s.err})
			continue
		}
		report.Stats.Add(s.stats)
		report.Entities = append(report.Entities, s.entities...)
	}
	return report
}
