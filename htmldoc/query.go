package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// Walk visits the descendants of n in document order (pre-order), not n
// itself. Returning false from fn stops the walk.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	walk(n, fn)
}

func walk(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !fn(c) {
			return false
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// FindAllFunc returns every descendant element of n accepted by match, in
// document order.
func FindAllFunc(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && match(c) {
			found = append(found, c)
		}
		return true
	})
	return found
}

// FindFirstFunc returns the first descendant element of n accepted by match.
func FindFirstFunc(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant element with one of the tag names.
func FindAll(n *html.Node, tags ...string) []*html.Node {
	return FindAllFunc(n, func(c *html.Node) bool { return IsElement(c, tags...) })
}

// FindFirst returns the first descendant element with one of the tag names.
func FindFirst(n *html.Node, tags ...string) *html.Node {
	return FindFirstFunc(n, func(c *html.Node) bool { return IsElement(c, tags...) })
}

// IsElement reports whether n is an element with one of the tag names. With
// no names it only checks that n is an element.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if n.Data == tag {
			return true
		}
	}
	return false
}

// Attr returns the value of an attribute on a node, or empty string if not
// found.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present, even if empty.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// ClassContains reports whether the class attribute contains substr,
// ignoring case.
func ClassContains(n *html.Node, substr string) bool {
	class := Attr(n, "class")
	if class == "" {
		return false
	}
	return strings.Contains(strings.ToLower(class), strings.ToLower(substr))
}

// PrevElementSibling returns the nearest preceding sibling that is an
// element.
func PrevElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// NextElementSibling returns the nearest following sibling that is an
// element.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// NextElement returns the first element after n in document order with one
// of the tag names. n's own descendants come first, then everything that
// follows n.
func NextElement(n *html.Node, tags ...string) *html.Node {
	if found := FindFirst(n, tags...); found != nil {
		return found
	}
	for cur := n; cur != nil; cur = cur.Parent {
		for s := cur.NextSibling; s != nil; s = s.NextSibling {
			if IsElement(s, tags...) {
				return s
			}
			if found := FindFirst(s, tags...); found != nil {
				return found
			}
		}
	}
	return nil
}

// Text flattens the text of n and its descendants. Block boundaries become
// spaces, whitespace runs collapse to a single space and the result is
// trimmed. Script-like content is skipped. A nil node has no text.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	writeText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
	}

	block := n.Type == html.ElementNode && isBlockElement(n.Data)
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, b)
	}
	if block {
		b.WriteByte(' ')
	}
}

// shouldSkipElement returns true if the element's content is not prose.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockElement returns true for elements whose boundaries separate words.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "li", "br", "tr", "td", "th", "caption", "figcaption", "figure",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "section", "article", "table":
		return true
	}
	return false
}
