package htmldoc

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// jatsElementNames maps JATS element names onto the HTML vocabulary the
// extraction code understands. Unlisted names are kept as they are; table
// markup (table, tr, td, th, thead, tbody) is already shared.
var jatsElementNames = map[string]string{
	"fig":            "figure",
	"fig-group":      "div",
	"table-wrap":     "div",
	"caption":        "figcaption",
	"graphic":        "img",
	"inline-graphic": "img",
	"sec":            "section",
	"xref":           "a",
	"label":          "span",
	"title":          "span",
	"bold":           "b",
	"italic":         "i",
	"list-item":      "li",
}

var errNoElements = errors.New("no elements found")

// parseJATS decodes JATS XML into an html.Node tree.
func parseJATS(r io.Reader) (*html.Node, error) {
	d := xml.NewDecoder(r)
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	root := &html.Node{Type: html.DocumentNode}
	stack := []*html.Node{root}
	elements := 0

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		parent := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			n := jatsElement(t)
			parent.AppendChild(n)
			stack = append(stack, n)
			elements++
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			appendText(parent, string(t))
		}
	}

	if elements == 0 {
		return nil, errNoElements
	}

	attachLabels(root)
	return root, nil
}

// jatsElement converts a start tag. Renamed elements keep their JATS name
// as a class so class-based heuristics still see it.
func jatsElement(t xml.StartElement) *html.Node {
	name := t.Name.Local
	n := &html.Node{Type: html.ElementNode, Data: name}

	class := ""
	if mapped, ok := jatsElementNames[name]; ok {
		n.Data = mapped
		class = name
	}

	for _, a := range t.Attr {
		key := a.Name.Local
		if key == "href" && n.Data == "img" {
			key = "src"
		}
		if key == "class" {
			class = joinClass(class, a.Value)
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: a.Value})
	}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}

	n.DataAtom = atom.Lookup([]byte(n.Data))
	return n
}

func joinClass(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// appendText adds character data, merging it into a preceding text node.
func appendText(parent *html.Node, data string) {
	if last := parent.LastChild; last != nil && last.Type == html.TextNode {
		last.Data += data
		return
	}
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: data})
}

// attachLabels copies the text of a JATS <label> (e.g. "Table 2") to the
// front of its sibling caption, where HTML documents usually carry it.
func attachLabels(root *html.Node) {
	for _, container := range FindAllFunc(root, func(n *html.Node) bool {
		return ClassContains(n, "fig") || ClassContains(n, "table-wrap")
	}) {
		var label, caption *html.Node
		for c := container.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case IsElement(c, "span") && ClassContains(c, "label") && label == nil:
				label = c
			case IsElement(c, "figcaption") && caption == nil:
				caption = c
			}
		}
		if label == nil || caption == nil {
			continue
		}

		labelText := Text(label)
		if labelText == "" {
			continue
		}
		caption.InsertBefore(&html.Node{Type: html.TextNode, Data: labelText + " "}, caption.FirstChild)
	}
}
