package extract

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/citectx/format"
	"github.com/tsawler/citectx/model"
)

func extractMarkup(t *testing.T, markup string) *Result {
	t.Helper()
	res, err := New(DefaultConfig()).Extract(model.Document{
		ID:      "2401.00001",
		Source:  model.SourceArxiv,
		BaseURL: "https://arxiv.org/html/2401.00001/",
		Markup:  markup,
	})
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	return res
}

func TestExtract_TableMention(t *testing.T) {
	res := extractMarkup(t, `<html><body>
		<div>Table 1: Results.</div>
		<table><tr><th>Model</th><th>Accuracy</th></tr><tr><td>Ours</td><td>0.93</td></tr></table>
		<p>As shown in Table 1, accuracy improves.</p>
	</body></html>`)

	tables := res.Tables()
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	table := tables[0]

	if table.ID != "2401.00001_table_1" {
		t.Errorf("ID = %q", table.ID)
	}
	if table.Caption != "Table 1: Results." {
		t.Errorf("Caption = %q", table.Caption)
	}
	if ref := ResolveReference(model.KindTable, nil, table.Caption, table.Position); ref != "Table 1" {
		t.Errorf("reference = %q, want Table 1", ref)
	}
	if len(table.Mentions) != 1 || table.Mentions[0] != "As shown in Table 1, accuracy improves." {
		t.Errorf("Mentions = %q", table.Mentions)
	}
	for _, c := range table.ContextParagraphs {
		if c == table.Mentions[0] {
			t.Error("mention also appears in context")
		}
	}
	if table.Body != "Model | Accuracy\nOurs | 0.93" {
		t.Errorf("Body = %q", table.Body)
	}
	if len(table.Terms) == 0 || table.Terms[0] != "accuracy" {
		t.Errorf("Terms = %v", table.Terms)
	}
}

func TestExtract_FigureFallback(t *testing.T) {
	res := extractMarkup(t, `<html><body>
		<p>The proposed system is described below in detail.</p>
		<img src="chart.png" width="400" height="300" alt="Model architecture diagram">
	</body></html>`)

	figures := res.Figures()
	if len(figures) != 1 {
		t.Fatalf("got %d figures, want 1", len(figures))
	}
	fig := figures[0]

	if fig.Position != 1 || fig.ID != "2401.00001_fig_1" {
		t.Errorf("Position = %d, ID = %q", fig.Position, fig.ID)
	}
	if fig.Caption != "Model architecture diagram" {
		t.Errorf("Caption = %q, want alt text", fig.Caption)
	}
	if fig.URL != "https://arxiv.org/html/2401.00001/chart.png" {
		t.Errorf("URL = %q", fig.URL)
	}
	if res.Stats.ImageFallbacks != 1 {
		t.Errorf("ImageFallbacks = %d, want 1", res.Stats.ImageFallbacks)
	}
}

func TestExtract_DenylistedImage(t *testing.T) {
	res := extractMarkup(t, `<html><body>
		<img src="/static/logo.png" width="50" height="50">
		<p>A paragraph that is long enough to be indexed.</p>
	</body></html>`)

	if n := len(res.Figures()); n != 0 {
		t.Errorf("got %d figures, want 0", n)
	}
	if res.Stats.FiguresSkipped != 1 || res.Stats.ImageFallbacks != 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestExtract_InsufficientFigureContext(t *testing.T) {
	res := extractMarkup(t, `<html><body>
		<figure><img src="net.png"><figcaption>Neural network</figcaption></figure>
		<p>Only the neural part is discussed in this paragraph.</p>
		<p>Here the neural network is discussed in full detail.</p>
	</body></html>`)

	fig := res.Figures()[0]
	if len(fig.ContextParagraphs) != 1 || !strings.HasPrefix(fig.ContextParagraphs[0], "Here the neural network") {
		t.Errorf("ContextParagraphs = %q", fig.ContextParagraphs)
	}
}

func TestExtract_EmptyCaption(t *testing.T) {
	res := extractMarkup(t, `<html><body>
		<table><tr><td>alpha value</td><td>beta value</td></tr></table>
	</body></html>`)

	tables := res.Tables()
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	if tables[0].Caption != "" {
		t.Errorf("Caption = %q, want empty", tables[0].Caption)
	}
}

const multiEntityPage = `<html><body>
	<div class="ltx_para"><p>We evaluate the neural network on three benchmark datasets and report accuracy.</p></div>
	<table><tr><td>x</td></tr></table>
	<figure id="fig1"><img src="a.png"><figcaption>Figure 1: Neural network accuracy curves.</figcaption></figure>
	<figure><figcaption>Figure 2: No image here.</figcaption></figure>
	<div class="ltx_table">
		<div class="ltx_caption">Table 1: Accuracy of the neural network per benchmark dataset.</div>
		<table><tr><th>Dataset</th><th>Accuracy</th></tr><tr><td>benchmark one</td><td>0.91</td></tr></table>
	</div>
	<div class="ltx_para"><p>Table 1 lists the accuracy obtained on every benchmark.</p></div>
	<figure><img data-src="b.png"><figcaption>Figure 2: Loss curves of the network.</figcaption></figure>
	<div class="ltx_para"><p>As Figure 2 shows, the loss of the network decreases.</p></div>
	<div class="ltx_para"><p>See fig1 for neural network accuracy over time.</p></div>
	<table><tr><td>Model</td><td>Neural network benchmark accuracy</td></tr></table>
</body></html>`

func TestExtract_PositionsAreDense(t *testing.T) {
	res := extractMarkup(t, multiEntityPage)

	for _, kind := range []model.Kind{model.KindTable, model.KindFigure} {
		want := 1
		for _, e := range res.Entities {
			if e.Kind != kind {
				continue
			}
			if e.Position != want {
				t.Errorf("%s position = %d, want %d", kind, e.Position, want)
			}
			if e.ID != model.EntityID("2401.00001", kind, want) {
				t.Errorf("%s ID = %q", kind, e.ID)
			}
			want++
		}
	}

	if len(res.Tables()) != 2 || len(res.Figures()) != 2 {
		t.Fatalf("got %d tables and %d figures, want 2 and 2", len(res.Tables()), len(res.Figures()))
	}

	s := res.Stats
	if s.TablesFound != 3 || s.TablesSkipped != 1 || s.TablesExtracted != 2 {
		t.Errorf("table stats = %+v", s)
	}
	if s.FiguresFound != 3 || s.FiguresSkipped != 1 || s.FiguresExtracted != 2 {
		t.Errorf("figure stats = %+v", s)
	}
	if s.Paragraphs != 4 {
		t.Errorf("Paragraphs = %d, want 4", s.Paragraphs)
	}
}

func TestExtract_MentionsAndContextDisjoint(t *testing.T) {
	res := extractMarkup(t, multiEntityPage)

	for _, e := range res.Entities {
		seen := make(map[string]bool)
		for _, m := range e.Mentions {
			seen[m] = true
		}
		for _, c := range e.ContextParagraphs {
			if seen[c] {
				t.Errorf("%s: %q is both a mention and context", e.ID, c)
			}
		}
	}

	figs := res.Figures()
	if len(figs[0].Mentions) != 1 || !strings.HasPrefix(figs[0].Mentions[0], "See fig1") {
		t.Errorf("fig 1 mentions = %q", figs[0].Mentions)
	}
	if len(figs[1].Mentions) != 1 || !strings.HasPrefix(figs[1].Mentions[0], "As Figure 2") {
		t.Errorf("fig 2 mentions = %q", figs[1].Mentions)
	}
	if figs[1].URL != "https://arxiv.org/html/2401.00001/b.png" {
		t.Errorf("fig 2 URL = %q", figs[1].URL)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	first := extractMarkup(t, multiEntityPage)
	second := extractMarkup(t, multiEntityPage)

	if !reflect.DeepEqual(first.Entities, second.Entities) {
		t.Error("two runs over the same document differ")
	}
}

func TestExtract_Only(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Only = model.KindFigure

	res, err := New(cfg).Extract(model.Document{ID: "d", Markup: multiEntityPage})
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if len(res.Tables()) != 0 || len(res.Figures()) != 2 {
		t.Errorf("got %d tables and %d figures", len(res.Tables()), len(res.Figures()))
	}
}

func TestExtract_StructuralFiguresSuppressFallback(t *testing.T) {
	res := extractMarkup(t, `<html><body>
		<figure><img src="a.png"></figure>
		<img src="loose.png" width="400" height="400">
	</body></html>`)

	if n := len(res.Figures()); n != 1 {
		t.Errorf("got %d figures, want 1", n)
	}
	if res.Stats.ImageFallbacks != 0 {
		t.Errorf("ImageFallbacks = %d, want 0", res.Stats.ImageFallbacks)
	}
}

func TestExtract_Errors(t *testing.T) {
	e := New(DefaultConfig())

	_, err := e.Extract(model.Document{ID: "blank", Markup: "  \n"})
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("blank markup error = %v, want ErrEmptyDocument", err)
	}

	_, err = e.Extract(model.Document{ID: "bad", Markup: "no markup at all", Format: format.JATS})
	if !errors.Is(err, ErrUnparseable) {
		t.Errorf("bad JATS error = %v, want ErrUnparseable", err)
	}
}

func TestExtract_JATS(t *testing.T) {
	markup := `<?xml version="1.0"?>
<article xmlns:xlink="http://www.w3.org/1999/xlink"><body><sec>
<p>The cohort characteristics are summarized in Table 1 below.</p>
<table-wrap id="T1"><label>Table 1</label><caption><p>Cohort characteristics.</p></caption>
<table><tr><th>Group</th><th>Count</th></tr><tr><td>Control</td><td>120</td></tr></table></table-wrap>
<fig id="F1"><label>Figure 1</label><caption><p>Study flow chart.</p></caption><graphic xlink:href="flow.jpg"/></fig>
<p>The study flow chart in F1 shows exclusions.</p>
</sec></body></article>`

	res, err := New(DefaultConfig()).Extract(model.Document{
		ID:      "PMC123",
		Source:  model.SourcePubMed,
		BaseURL: model.DefaultBaseURL(model.SourcePubMed, "PMC123"),
		Markup:  markup,
	})
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}

	tables, figs := res.Tables(), res.Figures()
	if len(tables) != 1 || len(figs) != 1 {
		t.Fatalf("got %d tables and %d figures", len(tables), len(figs))
	}
	if tables[0].Caption != "Table 1 Cohort characteristics." {
		t.Errorf("table caption = %q", tables[0].Caption)
	}
	if len(tables[0].Mentions) != 1 {
		t.Errorf("table mentions = %q", tables[0].Mentions)
	}
	if figs[0].URL != "https://pmc.ncbi.nlm.nih.gov/articles/PMC123/flow.jpg" {
		t.Errorf("figure URL = %q", figs[0].URL)
	}
	if len(figs[0].Mentions) != 1 || !strings.Contains(figs[0].Mentions[0], "F1") {
		t.Errorf("figure mentions = %q", figs[0].Mentions)
	}
}

type recordingSink struct {
	records []model.Record
	err     error
}

func (s *recordingSink) Write(_ context.Context, records []model.Record) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, records...)
	return nil
}

func TestRun(t *testing.T) {
	e := New(DefaultConfig())
	doc := model.Document{ID: "2401.00001", Markup: multiEntityPage}

	sink := &recordingSink{}
	res, err := e.Run(context.Background(), doc, sink)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(sink.records) != len(res.Entities) {
		t.Errorf("sink got %d records, want %d", len(sink.records), len(res.Entities))
	}

	failing := &recordingSink{err: errors.New("disk full")}
	if _, err := e.Run(context.Background(), doc, failing); err == nil {
		t.Error("Run() should report sink failures")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx, doc, sink); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() with cancelled context error = %v", err)
	}
}
