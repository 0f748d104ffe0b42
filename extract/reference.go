package extract

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/citectx/htmldoc"
	"github.com/tsawler/citectx/model"
)

var (
	tableNumberPattern  = regexp.MustCompile(`(?i)Table\s*(\d+)`)
	figureNumberPattern = regexp.MustCompile(`(?i)(?:Figure|Fig\.?)\s*(\d+)`)
)

// ResolveReference returns the token authors are expected to cite the
// entity by. The element's id wins, then a number found in the caption
// ("Table 3"), then the entity's position.
func ResolveReference(kind model.Kind, n *html.Node, caption string, position int) string {
	if n != nil {
		if id := strings.TrimSpace(htmldoc.Attr(n, "id")); id != "" {
			return id
		}
	}

	pattern := tableNumberPattern
	if kind == model.KindFigure {
		pattern = figureNumberPattern
	}
	if m := pattern.FindStringSubmatch(caption); m != nil {
		return kind.Label() + " " + m[1]
	}

	return fmt.Sprintf("%s %d", kind.Label(), position)
}
