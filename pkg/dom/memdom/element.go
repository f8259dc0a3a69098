package memdom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-riskform/pkg/dom"
)

// Element wraps an html.Node and carries the state a browser keeps outside
// the markup: listeners and scroll requests.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners map[dom.EventType][]dom.Listener

	scrolls      int
	smoothScroll bool
}

var _ dom.Element = (*Element)(nil)

func (e *Element) ID() string {
	return attr(e.node, "id")
}

func (e *Element) Tag() string {
	return e.node.Data
}

func (e *Element) Attr(name string) (string, bool) {
	return lookupAttr(e.node, name)
}

func (e *Element) SetAttr(name, value string) {
	setAttr(e.node, name, value)
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	removeAttr(e.node, name)
}

// Value mirrors the DOM value property for inputs, selects and textareas.
func (e *Element) Value() string {
	switch e.node.Data {
	case "select":
		return selectValue(e.node)
	case "textarea":
		return textContent(e.node)
	case "option":
		return optionValue(e.node)
	case "input":
		if v, ok := lookupAttr(e.node, "value"); ok {
			return v
		}
		switch strings.ToLower(attr(e.node, "type")) {
		case "checkbox", "radio":
			return "on"
		case "range":
			return defaultRangeValue(e.node)
		}
		return ""
	default:
		return attr(e.node, "value")
	}
}

// SetValue updates the live value without dispatching events.
func (e *Element) SetValue(value string) {
	switch e.node.Data {
	case "select":
		for _, opt := range options(e.node) {
			if optionValue(opt) == value {
				setAttr(opt, "selected", "")
			} else {
				removeAttr(opt, "selected")
			}
		}
	case "textarea":
		replaceChildren(e.node, &html.Node{Type: html.TextNode, Data: value})
	default:
		setAttr(e.node, "value", value)
	}
}

func (e *Element) Checked() bool {
	_, ok := lookupAttr(e.node, "checked")
	return ok
}

// SetChecked toggles the checked attribute; radios uncheck their group.
func (e *Element) SetChecked(on bool) {
	if !on {
		removeAttr(e.node, "checked")
		return
	}
	if strings.EqualFold(attr(e.node, "type"), "radio") {
		name := attr(e.node, "name")
		walk(e.doc.root, func(n *html.Node) bool {
			if n.Type == html.ElementNode && n.Data == "input" &&
				strings.EqualFold(attr(n, "type"), "radio") && attr(n, "name") == name {
				removeAttr(n, "checked")
			}
			return true
		})
	}
	setAttr(e.node, "checked", "")
}

func (e *Element) Text() string {
	return textContent(e.node)
}

func (e *Element) SetText(text string) {
	replaceChildren(e.node, &html.Node{Type: html.TextNode, Data: text})
}

// SetInnerHTML parses markup in the element's context and replaces its
// children. Unparseable markup clears the element.
func (e *Element) SetInnerHTML(markup string) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		nodes = nil
	}
	replaceChildren(e.node, nodes...)
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return ""
		}
	}
	return b.String()
}

func (e *Element) Style(property string) string {
	for _, decl := range parseStyle(attr(e.node, "style")) {
		if decl.property == property {
			return decl.value
		}
	}
	return ""
}

func (e *Element) SetStyle(property, value string) {
	decls := parseStyle(attr(e.node, "style"))
	replaced := false
	for i := range decls {
		if decls[i].property == property {
			decls[i].value = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, styleDecl{property: property, value: value})
	}
	setAttr(e.node, "style", formatStyle(decls))
}

func (e *Element) HasClass(name string) bool {
	return slices.Contains(strings.Fields(attr(e.node, "class")), name)
}

func (e *Element) AddClass(name string) {
	classes := strings.Fields(attr(e.node, "class"))
	if slices.Contains(classes, name) {
		return
	}
	setAttr(e.node, "class", strings.Join(append(classes, name), " "))
}

func (e *Element) RemoveClass(name string) {
	classes := strings.Fields(attr(e.node, "class"))
	if !slices.Contains(classes, name) {
		return
	}
	classes = slices.DeleteFunc(classes, func(c string) bool { return c == name })
	setAttr(e.node, "class", strings.Join(classes, " "))
}

// ScrollIntoView records the request; ScrollCount and ScrolledSmoothly expose
// it to tests.
func (e *Element) ScrollIntoView(smooth bool) {
	e.scrolls++
	e.smoothScroll = smooth
}

// ScrollCount reports how many times the element was scrolled into view.
func (e *Element) ScrollCount() int {
	return e.scrolls
}

// ScrolledSmoothly reports whether the last scroll request asked for smooth
// behaviour.
func (e *Element) ScrolledSmoothly() bool {
	return e.smoothScroll
}

func (e *Element) Prepend(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil || c.node == e.node {
		return
	}
	detach(c.node)
	e.node.InsertBefore(c.node, e.node.FirstChild)
}

func (e *Element) Append(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil || c.node == e.node {
		return
	}
	detach(c.node)
	e.node.AppendChild(c.node)
}

// Parent returns the enclosing element, or nil for detached and root nodes.
func (e *Element) Parent() *Element {
	if e.node.Parent == nil || e.node.Parent.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(e.node.Parent)
}

// FirstElementChild returns the first child element, skipping text nodes.
func (e *Element) FirstElementChild() *Element {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return e.doc.wrap(c)
		}
	}
	return nil
}

func (e *Element) AddEventListener(typ dom.EventType, fn dom.Listener) {
	if fn == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[dom.EventType][]dom.Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], fn)
}

// Dispatch runs listeners in registration order. Listeners added while
// dispatching do not see the current event.
func (e *Element) Dispatch(ev *dom.Event) bool {
	if ev == nil {
		return true
	}
	if ev.Target == nil {
		ev.Target = e
	}
	for _, fn := range slices.Clone(e.listeners[ev.Type]) {
		fn(ev)
	}
	return !ev.DefaultPrevented()
}

// ListenerCount reports how many listeners are registered for typ.
func (e *Element) ListenerCount(typ dom.EventType) int {
	return len(e.listeners[typ])
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func replaceChildren(n *html.Node, children ...*html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		detach(c)
		n.AppendChild(c)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func options(sel *html.Node) []*html.Node {
	var out []*html.Node
	walk(sel, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "option" {
			out = append(out, n)
		}
		return true
	})
	return out
}

func optionValue(opt *html.Node) string {
	if v, ok := lookupAttr(opt, "value"); ok {
		return v
	}
	return strings.TrimSpace(textContent(opt))
}

func selectValue(sel *html.Node) string {
	opts := options(sel)
	for _, opt := range opts {
		if _, ok := lookupAttr(opt, "selected"); ok {
			return optionValue(opt)
		}
	}
	if _, multiple := lookupAttr(sel, "multiple"); multiple || len(opts) == 0 {
		return ""
	}
	return optionValue(opts[0])
}

// defaultRangeValue mirrors the browser default for a range input without a
// value attribute: the midpoint of its bounds.
func defaultRangeValue(n *html.Node) string {
	minVal, maxVal := 0.0, 100.0
	if v, ok := parseAttrNumber(n, "min"); ok {
		minVal = v
	}
	if v, ok := parseAttrNumber(n, "max"); ok {
		maxVal = v
	}
	if maxVal < minVal {
		return formatFloat(minVal)
	}
	return formatFloat(minVal + (maxVal-minVal)/2)
}
