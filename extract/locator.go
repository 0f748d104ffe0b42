package extract

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/citectx/htmldoc"
)

// LocateTables returns every table element in document order.
func LocateTables(root *html.Node) []*html.Node {
	return htmldoc.FindAll(root, "table")
}

// LocateFigures returns every figure container in document order. JATS
// <fig> elements arrive here as <figure>.
func LocateFigures(root *html.Node) []*html.Node {
	return htmldoc.FindAll(root, "figure")
}

// ImageCandidates is the outcome of scanning loose images.
type ImageCandidates struct {
	// Accepted images, in document order.
	Accepted []*html.Node

	// Rejected counts images with a source that failed the filters.
	Rejected int
}

// LocateImages scans every <img> with a source and keeps those that look
// like content: the source contains no denylisted marker, and the declared
// size (when both width and height parse as integers) is at least
// cfg.MinImagePixels in each direction.
func LocateImages(root *html.Node, cfg *Config) ImageCandidates {
	var chrome *htmldoc.ExclusionChecker
	if cfg.Navigation != htmldoc.NavigationExclusionNone {
		chrome = htmldoc.NewExclusionChecker(cfg.Navigation, root)
	}

	var out ImageCandidates
	for _, img := range htmldoc.FindAll(root, "img") {
		src := imageSource(img)
		if src == "" {
			continue
		}
		if chrome.Excluded(img) || !acceptImage(img, src, cfg) {
			out.Rejected++
			continue
		}
		out.Accepted = append(out.Accepted, img)
	}
	return out
}

// imageSource returns src, or data-src for lazily loaded images.
func imageSource(img *html.Node) string {
	if img == nil {
		return ""
	}
	if src := strings.TrimSpace(htmldoc.Attr(img, "src")); src != "" {
		return src
	}
	return strings.TrimSpace(htmldoc.Attr(img, "data-src"))
}

func acceptImage(img *html.Node, src string, cfg *Config) bool {
	lower := strings.ToLower(src)
	for _, marker := range cfg.ImageDenylist {
		if marker != "" && strings.Contains(lower, marker) {
			return false
		}
	}

	width, wok := dimension(img, "width")
	height, hok := dimension(img, "height")
	if wok && hok && (width < cfg.MinImagePixels || height < cfg.MinImagePixels) {
		return false
	}
	return true
}

// dimension parses a size attribute. Anything that is not a plain integer
// counts as absent.
func dimension(n *html.Node, key string) (int, bool) {
	v := strings.TrimSpace(htmldoc.Attr(n, key))
	if v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}
