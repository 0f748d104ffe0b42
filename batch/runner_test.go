package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/citectx/extract"
	"github.com/tsawler/citectx/format"
	"github.com/tsawler/citectx/model"
	"github.com/tsawler/citectx/sink"
)

const tablePage = `<html><body>
<div>Table 1: Results.</div>
<table><tr><th>Model</th><th>Accuracy</th></tr><tr><td>Ours</td><td>0.93</td></tr></table>
<p>As shown in Table 1, accuracy improves.</p>
</body></html>`

const figurePage = `<html><body>
<figure><img src="x1.png"><figcaption>Figure 1: Overview of the system.</figcaption></figure>
<p>Figure 1 gives an overview of the whole system.</p>
</body></html>`

func documents(n int) []model.Document {
	docs := make([]model.Document, n)
	for i := range docs {
		markup := tablePage
		if i%2 == 1 {
			markup = figurePage
		}
		docs[i] = model.Document{ID: fmt.Sprintf("doc%02d", i), Source: model.SourceArxiv, Markup: markup}
	}
	return docs
}

func TestRun_ConcatenatesInInputOrder(t *testing.T) {
	mem := sink.NewMemory()
	r := New(extract.New(extract.DefaultConfig()), mem, Options{Workers: 4, KeepEntities: true})

	report, err := r.Run(context.Background(), documents(10))
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 10, report.Documents)
	assert.Zero(t, report.Failed)
	assert.Equal(t, 5, report.Stats.TablesExtracted)
	assert.Equal(t, 5, report.Stats.FiguresExtracted)

	require.Len(t, report.Entities, 10)
	for i, e := range report.Entities {
		assert.Equal(t, fmt.Sprintf("doc%02d", i), e.DocumentID)
	}

	// Sink order follows completion, so compare as sets.
	records := mem.Records()
	require.Len(t, records, 10)
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	sort.Strings(ids)
	assert.Equal(t, "doc00_table_1", ids[0])
	assert.Equal(t, "doc09_fig_1", ids[9])
}

func TestRun_FailuresDoNotStopSiblings(t *testing.T) {
	docs := documents(4)
	docs[1].Markup = ""
	docs[2].Markup = "not xml at all"
	docs[2].Format = format.JATS

	r := New(extract.New(extract.DefaultConfig()), nil, Options{Workers: 2})
	report, err := r.Run(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Documents)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 2, report.Stats.Extracted())
	assert.Empty(t, report.Entities)

	require.Len(t, report.Failures, 2)
	assert.Equal(t, "doc01", report.Failures[0].DocumentID)
	assert.ErrorIs(t, report.Failures[0].Err, extract.ErrEmptyDocument)
	assert.ErrorIs(t, report.Failures[1].Err, extract.ErrUnparseable)
	assert.Contains(t, report.Failures[1].Error(), "doc02")
}

type failingSink struct{}

func (failingSink) Write(context.Context, []model.Record) error { return errors.New("disk full") }

func TestRun_SinkFailureAborts(t *testing.T) {
	r := New(extract.New(extract.DefaultConfig()), failingSink{}, Options{Workers: 1})
	_, err := r.Run(context.Background(), documents(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(extract.New(extract.DefaultConfig()), nil, Options{Workers: 2})
	report, err := r.Run(ctx, documents(5))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Stats.Extracted())
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2401.00001.html"), []byte(tablePage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "PMC42.html"), []byte(figurePage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	paths, err := Discover([]string{dir})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	r := New(extract.New(extract.DefaultConfig()), nil, Options{KeepEntities: true})
	report, err := r.RunFiles(context.Background(), paths, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, report.Entities, 2)

	table, fig := report.Entities[0], report.Entities[1]
	assert.Equal(t, "2401.00001_table_1", table.ID)
	assert.Equal(t, model.SourceArxiv, table.Source)
	assert.Equal(t, "PMC42_fig_1", fig.ID)
	assert.Equal(t, model.SourcePubMed, fig.Source)
	assert.Equal(t, "https://pmc.ncbi.nlm.nih.gov/articles/PMC42/x1.png", fig.URL)
}

func TestRunFiles_MissingFile(t *testing.T) {
	r := New(extract.New(extract.DefaultConfig()), nil, Options{})
	report, err := r.RunFiles(context.Background(), []string{filepath.Join(t.TempDir(), "gone.html")}, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "gone", report.Failures[0].DocumentID)
}
