package testsupport

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a parsed HTML fragment with lookup helpers.
type Fragment struct {
	Nodes []*html.Node
}

// MustParseFragment parses markup as the content of a <body> element.
func MustParseFragment(t *testing.T, markup string) Fragment {
	t.Helper()

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return Fragment{Nodes: nodes}
}

// ByID returns the first element with the given id, or nil.
func (f Fragment) ByID(id string) *html.Node {
	return f.Find(func(n *html.Node) bool {
		value, ok := Attr(n, "id")
		return ok && value == id
	})
}

// Find returns the first element matching fn in document order.
func (f Fragment) Find(fn func(*html.Node) bool) *html.Node {
	all := f.FindAll(fn)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// FindAll returns every element matching fn in document order.
func (f Fragment) FindAll(fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && fn(n) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range f.Nodes {
		walk(n)
	}
	return out
}

// Inputs returns the hidden inputs named name, in document order.
func (f Fragment) Inputs(name string) []*html.Node {
	return f.FindAll(func(n *html.Node) bool {
		if n.Data != "input" {
			return false
		}
		value, _ := Attr(n, "name")
		kind, _ := Attr(n, "type")
		return value == name && kind == "hidden"
	})
}

// HasClass reports whether class is present on n.
func HasClass(n *html.Node, class string) bool {
	value, _ := Attr(n, "class")
	for _, candidate := range strings.Fields(value) {
		if candidate == class {
			return true
		}
	}
	return false
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Text returns the concatenated text content of n with whitespace collapsed.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		_ = html.Render(&b, child)
	}
	return b.String()
}
