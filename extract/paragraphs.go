package extract

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/tsawler/citectx/htmldoc"
	"github.com/tsawler/citectx/model"
)

// IndexParagraphs returns the prose paragraphs of a document in document
// order. Elements whose class marks them as paragraphs (arXiv's ltx_para,
// PMC's para) are preferred; when there are none, every <p> is a candidate.
// Candidates no longer than cfg.MinParagraphChars are dropped, and Index
// counts only the paragraphs that are kept.
func IndexParagraphs(root *html.Node, cfg *Config) []model.Paragraph {
	candidates := htmldoc.FindAllFunc(root, isParagraphClass)
	if len(candidates) == 0 {
		candidates = htmldoc.FindAll(root, "p")
	}

	var chrome *htmldoc.ExclusionChecker
	if cfg.Navigation != htmldoc.NavigationExclusionNone {
		chrome = htmldoc.NewExclusionChecker(cfg.Navigation, root)
	}

	var paragraphs []model.Paragraph
	for _, n := range candidates {
		if chrome.Excluded(n) {
			continue
		}
		text := htmldoc.Text(n)
		if utf8.RuneCountInString(text) <= cfg.MinParagraphChars {
			continue
		}
		paragraphs = append(paragraphs, model.NewParagraph(len(paragraphs), text))
	}
	return paragraphs
}

func isParagraphClass(n *html.Node) bool {
	return htmldoc.IsElement(n, "p", "div") && htmldoc.ClassContains(n, "para")
}
