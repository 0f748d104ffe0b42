package htmldoc

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// NavigationExclusionMode controls which regions of a page are treated as
// site chrome rather than article content.
type NavigationExclusionMode int

const (
	// NavigationExclusionNone keeps every region.
	NavigationExclusionNone NavigationExclusionMode = iota

	// NavigationExclusionExplicit skips <nav>, <aside> and ARIA navigation
	// roles anywhere, and <header>/<footer> (or banner/contentinfo roles)
	// only when they sit directly under <body> or a single top-level wrapper.
	NavigationExclusionExplicit

	// NavigationExclusionStandard also matches common class/id names such
	// as navbar, breadcrumb, footer and sidebar.
	NavigationExclusionStandard

	// NavigationExclusionAggressive also drops containers whose text is
	// mostly link text.
	NavigationExclusionAggressive
)

// String returns the configuration name of the mode.
func (m NavigationExclusionMode) String() string {
	switch m {
	case NavigationExclusionNone:
		return "none"
	case NavigationExclusionExplicit:
		return "explicit"
	case NavigationExclusionStandard:
		return "standard"
	case NavigationExclusionAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// ParseNavigationMode converts a configuration name into a mode. The empty
// string means NavigationExclusionNone.
func ParseNavigationMode(s string) (NavigationExclusionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NavigationExclusionNone, nil
	case "explicit":
		return NavigationExclusionExplicit, nil
	case "standard":
		return NavigationExclusionStandard, nil
	case "aggressive":
		return NavigationExclusionAggressive, nil
	default:
		return NavigationExclusionNone, fmt.Errorf("unknown navigation exclusion mode %q", s)
	}
}

// chromePattern matches class and id values used for navigation and
// boilerplate regions, on word boundaries.
var chromePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumb|breadcrumbs|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget|aside)([^a-z]|$)`)

const (
	linkDensityThreshold = 0.6
	minLinksForDensity   = 4
)

// ExclusionChecker decides whether a node lies inside site chrome.
// Results are memoized per node, so a checker belongs to one tree and one
// goroutine.
type ExclusionChecker struct {
	mode     NavigationExclusionMode
	body     *html.Node
	wrapper  *html.Node
	excluded map[*html.Node]bool
}

// NewExclusionChecker creates a checker for the given mode and tree.
func NewExclusionChecker(mode NavigationExclusionMode, root *html.Node) *ExclusionChecker {
	body := FindFirst(root, "body")
	if body == nil {
		body = root
	}

	return &ExclusionChecker{
		mode:     mode,
		body:     body,
		wrapper:  singleWrapper(body),
		excluded: make(map[*html.Node]bool),
	}
}

// singleWrapper finds the lone div/main under body, as in
// <body><div id="page">...</div></body>.
func singleWrapper(body *html.Node) *html.Node {
	var wrapper *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "script", "style", "noscript", "template":
		case "div", "main":
			if wrapper != nil {
				return nil
			}
			wrapper = c
		default:
			return nil
		}
	}
	return wrapper
}

// Excluded reports whether n or any of its ancestors is site chrome.
func (ec *ExclusionChecker) Excluded(n *html.Node) bool {
	if ec == nil || ec.mode == NavigationExclusionNone || n == nil {
		return false
	}
	if v, ok := ec.excluded[n]; ok {
		return v
	}

	v := ec.isChrome(n) || ec.Excluded(n.Parent)
	ec.excluded[n] = v
	return v
}

// isChrome checks n alone.
func (ec *ExclusionChecker) isChrome(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if ec.isExplicitChrome(n) {
		return true
	}
	if ec.mode >= NavigationExclusionStandard && matchesChromeName(n) {
		return true
	}
	if ec.mode >= NavigationExclusionAggressive && isLinkFarm(n) {
		return true
	}
	return false
}

func (ec *ExclusionChecker) isExplicitChrome(n *html.Node) bool {
	switch n.Data {
	case "nav", "aside":
		return true
	case "header", "footer":
		return ec.isTopLevel(n)
	}

	switch Attr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		return ec.isTopLevel(n)
	}
	return false
}

func (ec *ExclusionChecker) isTopLevel(n *html.Node) bool {
	parent := n.Parent
	return parent != nil && (parent == ec.body || (ec.wrapper != nil && parent == ec.wrapper))
}

func matchesChromeName(n *html.Node) bool {
	for _, key := range []string{"class", "id"} {
		if v := Attr(n, key); v != "" && chromePattern.MatchString(v) {
			return true
		}
	}
	return false
}

// isLinkFarm reports block containers where most of the text is link text.
func isLinkFarm(n *html.Node) bool {
	switch n.Data {
	case "div", "section", "ul", "ol":
	default:
		return false
	}

	total := textLength(n)
	if total == 0 {
		return false
	}
	links := len(FindAll(n, "a"))
	if links < minLinksForDensity {
		return false
	}
	return float64(linkTextLength(n))/float64(total) > linkDensityThreshold
}

func textLength(n *html.Node) int {
	if n.Type == html.TextNode {
		return len(strings.TrimSpace(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLength(c)
	}
	return total
}

func linkTextLength(n *html.Node) int {
	if IsElement(n, "a") {
		return textLength(n)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += linkTextLength(c)
	}
	return total
}
