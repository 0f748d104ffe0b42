package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/tsawler/citectx/htmldoc"
	"github.com/tsawler/citectx/model"
)

// Table bodies are flattened row by row.
const (
	cellSeparator = " | "
	rowSeparator  = "\n"
)

// assembler builds the entities of one document.
type assembler struct {
	cfg        *Config
	terms      *TermExtractor
	doc        model.Document
	paragraphs []model.Paragraph
	stats      *model.Stats
}

func (a *assembler) tables(root *html.Node) []model.Entity {
	var entities []model.Entity
	for _, table := range LocateTables(root) {
		a.stats.TablesFound++

		body := TableBody(table)
		if utf8.RuneCountInString(body) < a.cfg.MinTableBodyChars {
			a.stats.TablesSkipped++
			continue
		}

		position := len(entities) + 1
		caption, _ := resolveCaption(tableCaptionRules, table, a.cfg)
		ref := ResolveReference(model.KindTable, table, caption, position)
		mentions := FindMentions(a.paragraphs, model.KindTable, ref, position, a.cfg)
		terms := a.terms.Extract(caption, body)

		entity := a.entity(model.KindTable, position, caption, mentions, terms)
		entity.Body = body
		entity.Terms = capTerms(terms, a.cfg.MaxPersistedTerms)
		entities = append(entities, entity)
		a.stats.TablesExtracted++
	}
	return entities
}

// figures extracts figure containers, and falls back to loose images only
// when no figure container yields an entity.
func (a *assembler) figures(root *html.Node) []model.Entity {
	var entities []model.Entity
	for _, fig := range LocateFigures(root) {
		a.stats.FiguresFound++

		src := imageSource(htmldoc.FindFirst(fig, "img"))
		if src == "" {
			a.stats.FiguresSkipped++
			continue
		}

		position := len(entities) + 1
		caption, _ := resolveCaption(figureCaptionRules, fig, a.cfg)
		entities = append(entities, a.figure(fig, src, caption, position))
	}
	if len(entities) > 0 {
		return entities
	}

	images := LocateImages(root, a.cfg)
	a.stats.FiguresFound += len(images.Accepted) + images.Rejected
	a.stats.FiguresSkipped += images.Rejected
	for _, img := range images.Accepted {
		position := len(entities) + 1
		caption, _ := resolveCaption(imageCaptionRules, img, a.cfg)
		entities = append(entities, a.figure(img, imageSource(img), caption, position))
	}
	if len(entities) > 0 {
		a.stats.ImageFallbacks++
	}
	return entities
}

func (a *assembler) figure(n *html.Node, src, caption string, position int) model.Entity {
	ref := ResolveReference(model.KindFigure, n, caption, position)
	mentions := FindMentions(a.paragraphs, model.KindFigure, ref, position, a.cfg)
	terms := a.terms.Extract(caption)

	entity := a.entity(model.KindFigure, position, caption, mentions, terms)
	entity.URL = ResolveURL(a.doc.BaseURL, src)
	a.stats.FiguresExtracted++
	return entity
}

func (a *assembler) entity(kind model.Kind, position int, caption string, mentions, terms []string) model.Entity {
	return model.Entity{
		ID:                model.EntityID(a.doc.ID, kind, position),
		DocumentID:        a.doc.ID,
		Source:            a.doc.Source,
		Kind:              kind,
		Position:          position,
		Caption:           caption,
		Mentions:          mentions,
		ContextParagraphs: SelectContext(a.paragraphs, terms, mentions, kind, a.cfg),
	}
}

// TableBody flattens a table: one line per row that has cells, cells
// separated by " | ".
func TableBody(table *html.Node) string {
	var rows []string
	for _, tr := range htmldoc.FindAll(table, "tr") {
		cells := htmldoc.FindAll(tr, "th", "td")
		if len(cells) == 0 {
			continue
		}
		texts := make([]string, len(cells))
		for i, c := range cells {
			texts[i] = htmldoc.Text(c)
		}
		rows = append(rows, strings.Join(texts, cellSeparator))
	}
	return strings.Join(rows, rowSeparator)
}

// ResolveURL makes an image source absolute against base. Absolute http(s)
// sources, an empty base, and anything that fails to parse are returned
// unchanged.
func ResolveURL(base, src string) string {
	if base == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	b, err := url.Parse(base)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return b.ResolveReference(ref).String()
}

func capTerms(terms []string, limit int) []string {
	if limit >= 0 && len(terms) > limit {
		return terms[:limit]
	}
	return terms
}
