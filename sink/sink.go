// Package sink writes flat entity records to their destination: a JSON
// Lines or YAML stream for inspection and piping, or a SQLite full-text
// index for search.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/tsawler/citectx/model"
)

// Sink receives the records of one document at a time. Implementations are
// safe for concurrent use.
type Sink interface {
	Write(ctx context.Context, records []model.Record) error
	Close() error
}

// Sink kinds accepted by New.
const (
	KindJSONLines = "jsonl"
	KindYAML      = "yaml"
	KindSQLite    = "sqlite"
	KindMemory    = "memory"
)

// ErrUnknownKind is returned by New for an unsupported sink kind.
var ErrUnknownKind = errors.New("unknown sink kind")

// Kinds lists the sink kinds New accepts.
func Kinds() []string {
	return []string{KindJSONLines, KindYAML, KindSQLite, KindMemory}
}

// New opens a sink by kind. out is a file path; "" or "-" means standard
// output for the stream sinks. The SQLite sink needs a path.
func New(ctx context.Context, kind, out string) (Sink, error) {
	switch strings.ToLower(kind) {
	case KindJSONLines, "json", "jsonlines":
		w, err := openOutput(out)
		if err != nil {
			return nil, err
		}
		return NewJSONLines(w), nil
	case KindYAML, "yml":
		w, err := openOutput(out)
		if err != nil {
			return nil, err
		}
		return NewYAML(w), nil
	case KindSQLite:
		if out == "" || out == "-" {
			return nil, errors.New("sqlite sink needs a database path")
		}
		return OpenSQLite(ctx, out)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownKind, kind, strings.Join(Kinds(), ", "))
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens out for writing, truncating an existing file.
func openOutput(out string) (io.WriteCloser, error) {
	if out == "" || out == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return f, nil
}

// Memory keeps records in memory. It is used in tests and by callers that
// post-process records themselves.
type Memory struct {
	mu      sync.Mutex
	records []model.Record
}

// NewMemory creates an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Write appends the records.
func (m *Memory) Write(_ context.Context, records []model.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return nil
}

// Records returns a copy of everything written so far.
func (m *Memory) Records() []model.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Record, len(m.records))
	copy(out, m.records)
	return out
}

// Close does nothing.
func (m *Memory) Close() error {
	return nil
}
