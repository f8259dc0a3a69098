package memdom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-riskform/pkg/dom"
)

// Document is an in-memory dom.Document backed by an x/net/html tree. It is
// not safe for concurrent use; like a browser page it expects every handler
// to run on a single goroutine (see eventloop.Loop).
type Document struct {
	root      *html.Node
	elements  map[*html.Node]*Element
	selectors map[string]cascadia.Selector
}

var _ dom.Document = (*Document)(nil)

// Parse reads an HTML page into a Document.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("memdom: parse html: %w", err)
	}
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		selectors: make(map[string]cascadia.Selector),
	}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) dom.Element {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return d.wrapElement(found)
}

// Query returns the first element matching selector in document order.
// Invalid selectors match nothing.
func (d *Document) Query(selector string) dom.Element {
	sel, ok := d.compile(selector)
	if !ok {
		return nil
	}
	return d.wrapElement(sel.MatchFirst(d.root))
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []dom.Element {
	sel, ok := d.compile(selector)
	if !ok {
		return nil
	}
	nodes := sel.MatchAll(d.root)
	out := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

// CreateElement returns a detached element owned by d.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(n)
}

// Head returns the <head> element; the HTML parser always synthesises one.
func (d *Document) Head() dom.Element {
	return d.Query("head")
}

// Render writes the current tree as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("memdom: render: %w", err)
	}
	return nil
}

// String renders the current tree, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Lookup returns the concrete element for id, for callers that need the
// memdom-only helpers.
func (d *Document) Lookup(id string) (*Element, bool) {
	el, ok := d.ElementByID(id).(*Element)
	return el, ok && el != nil
}

func (d *Document) compile(selector string) (cascadia.Selector, bool) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, false
	}

	if sel, ok := d.selectors[selector]; ok {
		return sel, sel != nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		d.selectors[selector] = nil
		return nil, false
	}
	d.selectors[selector] = sel
	return sel, true
}

func (d *Document) wrapElement(n *html.Node) dom.Element {
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

func (d *Document) wrap(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, name string) string {
	v, _ := lookupAttr(n, name)
	return v
}

func lookupAttr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}
