package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/tsawler/citectx/htmldoc"
)

// captionRule is one step of a caption fallback chain. resolve returns ""
// when the rule does not apply.
type captionRule struct {
	name    string
	resolve func(n *html.Node, cfg *Config) string
}

var (
	tableLabelPattern  = regexp.MustCompile(`(?i)^Table\s+\d+`)
	figureLabelPattern = regexp.MustCompile(`(?i)^(Figure|Fig\.?)\s*\d+`)
)

// tableCaptionRules apply to a <table> element.
var tableCaptionRules = []captionRule{
	{"caption-element", tableOwnCaption},
	{"container-caption", tableContainerCaption},
	{"container-class", tableContainerClassCaption},
	{"preceding-label", tablePrecedingLabel},
}

// figureCaptionRules apply to a <figure> element.
var figureCaptionRules = []captionRule{
	{"figcaption", figureFigcaption},
	{"class", classCaption},
	{"following-label", figureFollowingLabel},
}

// imageCaptionRules apply to a loose <img> element.
var imageCaptionRules = []captionRule{
	{"following-sibling", imageFollowingSibling},
	{"alt", imageAltText},
}

// resolveCaption runs the rules in order and returns the first non-empty
// caption together with the name of the rule that produced it. Both are
// empty when no rule applies.
func resolveCaption(rules []captionRule, n *html.Node, cfg *Config) (caption, rule string) {
	for _, r := range rules {
		if c := r.resolve(n, cfg); c != "" {
			return c, r.name
		}
	}
	return "", ""
}

func tableOwnCaption(table *html.Node, _ *Config) string {
	return htmldoc.Text(htmldoc.FindFirst(table, "caption"))
}

// tableContainer is the element that holds a table and its caption: the
// table's parent (a figure or wrapper div), or the table itself when it
// sits directly in the body.
func tableContainer(table *html.Node) *html.Node {
	parent := table.Parent
	if parent == nil || parent.Type == html.DocumentNode || htmldoc.IsElement(parent, "body", "html") {
		return table
	}
	return parent
}

func tableContainerCaption(table *html.Node, _ *Config) string {
	return htmldoc.Text(htmldoc.FindFirst(tableContainer(table), "figcaption", "caption"))
}

func tableContainerClassCaption(table *html.Node, cfg *Config) string {
	return classCaption(tableContainer(table), cfg)
}

func tablePrecedingLabel(table *html.Node, _ *Config) string {
	for s := htmldoc.PrevElementSibling(table); s != nil; s = htmldoc.PrevElementSibling(s) {
		if !htmldoc.IsElement(s, "p", "div", "span") {
			continue
		}
		text := htmldoc.Text(s)
		if tableLabelPattern.MatchString(text) {
			return text
		}
		return ""
	}
	return ""
}

func figureFigcaption(fig *html.Node, _ *Config) string {
	return htmldoc.Text(htmldoc.FindFirst(fig, "figcaption"))
}

func classCaption(n *html.Node, _ *Config) string {
	return htmldoc.Text(htmldoc.FindFirstFunc(n, func(c *html.Node) bool {
		return htmldoc.ClassContains(c, "caption")
	}))
}

// figureFollowingLabel accepts the first text element after the figure's
// image when it belongs to the figure itself and starts with a figure label.
func figureFollowingLabel(fig *html.Node, _ *Config) string {
	img := htmldoc.FindFirst(fig, "img")
	if img == nil {
		return ""
	}
	next := htmldoc.NextElement(img, "p", "span", "div")
	if next == nil || next.Parent != fig {
		return ""
	}
	text := htmldoc.Text(next)
	if figureLabelPattern.MatchString(text) {
		return text
	}
	return ""
}

func imageFollowingSibling(img *html.Node, cfg *Config) string {
	for s := htmldoc.NextElementSibling(img); s != nil; s = htmldoc.NextElementSibling(s) {
		if !htmldoc.IsElement(s, "p", "span", "div", "figcaption") {
			continue
		}
		text := htmldoc.Text(s)
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) < cfg.MaxStandaloneCaptionChars {
			return text
		}
		return ""
	}
	return ""
}

func imageAltText(img *html.Node, cfg *Config) string {
	alt := strings.Join(strings.Fields(htmldoc.Attr(img, "alt")), " ")
	if utf8.RuneCountInString(alt) > cfg.MinAltTextChars {
		return alt
	}
	return ""
}
