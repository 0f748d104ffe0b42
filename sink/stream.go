package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/tsawler/citectx/model"
)

// JSONLines writes one JSON object per record, keyed like model.Record.Fields.
type JSONLines struct {
	mu  sync.Mutex
	w   io.WriteCloser
	enc *json.Encoder
}

// NewJSONLines creates a sink writing to w. Close closes w.
func NewJSONLines(w io.WriteCloser) *JSONLines {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLines{w: w, enc: enc}
}

// Write encodes the records in order.
func (j *JSONLines) Write(ctx context.Context, records []model.Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.enc.Encode(r.Fields()); err != nil {
			return fmt.Errorf("encoding %s: %w", r.ID, err)
		}
	}
	return nil
}

// Close closes the underlying writer.
func (j *JSONLines) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.w.Close()
}

// YAML writes a stream of YAML documents, one per record.
type YAML struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// NewYAML creates a sink writing to w. Close closes w.
func NewYAML(w io.WriteCloser) *YAML {
	return &YAML{w: w}
}

// Write marshals the records in order, each preceded by a document marker.
func (y *YAML) Write(ctx context.Context, records []model.Record) error {
	y.mu.Lock()
	defer y.mu.Unlock()

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := yaml.Marshal(r.Fields())
		if err != nil {
			return fmt.Errorf("encoding %s: %w", r.ID, err)
		}
		if _, err := io.WriteString(y.w, "---\n"); err != nil {
			return err
		}
		if _, err := y.w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying writer.
func (y *YAML) Close() error {
	y.mu.Lock()
	defer y.mu.Unlock()
	return y.w.Close()
}
