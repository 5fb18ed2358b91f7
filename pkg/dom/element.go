package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kyu49/euonymus/pkg/ui"
)

// Element is an element node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
	id   string

	value    string
	selStart int
	selEnd   int
	checked  bool

	listeners map[string][]ui.Listener
}

var _ ui.Element = (*Element)(nil)

// ID returns the element's data-eid.
func (e *Element) ID() string { return e.id }

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Tag implements ui.Element.
func (e *Element) Tag() string { return e.node.Data }

// Value implements ui.Target.
func (e *Element) Value() string { return e.value }

// SetValue implements ui.Target. The value is reflected into the value
// attribute, or into the text content for a textarea.
func (e *Element) SetValue(v string) {
	e.value = v
	if e.node.DataAtom == atom.Textarea {
		e.clearChildren()
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		return
	}
	setAttr(e.node, "value", v)
}

// Selection implements ui.Target.
func (e *Element) Selection() (int, int) {
	return e.selStart, e.selEnd
}

// SetSelection implements ui.Target.
func (e *Element) SetSelection(start, end int) {
	n := utf8.RuneCountInString(e.value)
	start = clamp(start, 0, n)
	end = clamp(end, start, n)
	e.selStart, e.selEnd = start, end
}

// Checked implements ui.Target.
func (e *Element) Checked() bool { return e.checked }

// SetChecked implements ui.Target.
func (e *Element) SetChecked(checked bool) {
	e.checked = checked
	if checked {
		setAttr(e.node, "checked", "")
	} else {
		removeAttr(e.node, "checked")
	}
}

// Hidden implements ui.Target.
func (e *Element) Hidden() bool { return e.HasClass(HiddenClass) }

// SetHidden implements ui.Target.
func (e *Element) SetHidden(hidden bool) {
	if hidden {
		e.AddClass(HiddenClass)
	} else {
		e.RemoveClass(HiddenClass)
	}
}

// Disabled implements ui.Target.
func (e *Element) Disabled() bool {
	_, ok := getAttr(e.node, "disabled")
	return ok
}

// SetDisabled implements ui.Target.
func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		setAttr(e.node, "disabled", "")
	} else {
		removeAttr(e.node, "disabled")
	}
}

// SetInnerHTML implements ui.Target.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return fmt.Errorf("dom: parse inner markup of <%s>: %w", e.node.Data, err)
	}
	e.clearChildren()
	for _, n := range nodes {
		e.node.AppendChild(n)
		e.wrapTree(n)
	}
	return nil
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	return renderString(func(buf *bytes.Buffer) error {
		for c := e.node.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(buf, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	return renderString(func(buf *bytes.Buffer) error {
		return html.Render(buf, e.node)
	})
}

// OuterHTMLWithIDs renders the element with data-eid attributes.
func (e *Element) OuterHTMLWithIDs() string {
	return renderString(func(buf *bytes.Buffer) error {
		return e.doc.withIDs(func() error { return html.Render(buf, e.node) })
	})
}

// renderString runs render into a buffer. Writes to a bytes.Buffer cannot
// fail, so an error means the tree holds a node html.Render rejects; it is
// reported inline the same way Document.String does.
func renderString(render func(*bytes.Buffer) error) string {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Sprintf("<!-- render error: %v -->", err)
	}
	return buf.String()
}

// Text returns the concatenated text content.
func (e *Element) Text() string { return textContent(e.node) }

// AddEventListener implements ui.Target.
func (e *Element) AddEventListener(event string, l ui.Listener) {
	if l == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]ui.Listener)
	}
	e.listeners[event] = append(e.listeners[event], l)
}

// ListenerCount returns how many listeners are registered for event.
func (e *Element) ListenerCount(event string) int {
	return len(e.listeners[event])
}

// Dispatch fires event on the element. Every listener runs in registration
// order; their errors are joined.
func (e *Element) Dispatch(event string) error {
	ls := append([]ui.Listener(nil), e.listeners[event]...)
	var errs []error
	for _, l := range ls {
		if err := l(ui.Event{Type: event, Target: e}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Type simulates the user typing: the value is replaced, the caret moves to
// the end and an input event fires.
func (e *Element) Type(v string) error {
	e.value = v
	setAttr(e.node, "value", v)
	n := utf8.RuneCountInString(v)
	e.selStart, e.selEnd = n, n
	return e.Dispatch(ui.EventInput)
}

// Toggle simulates the user clicking a checkbox: checked flips and a change
// event fires.
func (e *Element) Toggle() error {
	e.SetChecked(!e.checked)
	return e.Dispatch(ui.EventChange)
}

// Attribute implements ui.Element.
func (e *Element) Attribute(name string) (string, bool) {
	return getAttr(e.node, name)
}

// SetAttribute implements ui.Element. The data-eid attribute is reserved.
func (e *Element) SetAttribute(name, value string) {
	if name == IDAttr {
		return
	}
	switch name {
	case "value":
		e.SetValue(value)
	case "checked":
		e.SetChecked(true)
	default:
		setAttr(e.node, name, value)
	}
}

// RemoveAttribute implements ui.Element.
func (e *Element) RemoveAttribute(name string) {
	if name == IDAttr {
		return
	}
	if name == "checked" {
		e.SetChecked(false)
		return
	}
	removeAttr(e.node, name)
}

// Style implements ui.Element.
func (e *Element) Style(property string) (string, bool) {
	for _, d := range e.styles() {
		if d.prop == property {
			return d.value, true
		}
	}
	return "", false
}

// SetStyle implements ui.Element.
func (e *Element) SetStyle(property, value string) {
	decls := e.styles()
	for i := range decls {
		if decls[i].prop == property {
			decls[i].value = value
			e.setStyles(decls)
			return
		}
	}
	e.setStyles(append(decls, styleDecl{prop: property, value: value}))
}

// RemoveStyle implements ui.Element.
func (e *Element) RemoveStyle(property string) {
	decls := e.styles()
	for i := range decls {
		if decls[i].prop == property {
			e.setStyles(append(decls[:i], decls[i+1:]...))
			return
		}
	}
}

// HasClass implements ui.Element.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

// Classes returns the class list in order.
func (e *Element) Classes() []string { return e.classes() }

// AddClass implements ui.Element.
func (e *Element) AddClass(names ...string) {
	list := e.classes()
	for _, name := range names {
		if name == "" || contains(list, name) {
			continue
		}
		list = append(list, name)
	}
	e.setClasses(list)
}

// RemoveClass implements ui.Element.
func (e *Element) RemoveClass(names ...string) {
	list := e.classes()
	kept := list[:0]
	for _, c := range list {
		if !contains(names, c) {
			kept = append(kept, c)
		}
	}
	e.setClasses(kept)
}

// Parent implements ui.Element.
func (e *Element) Parent() ui.Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children implements ui.Element.
func (e *Element) Children() []ui.Element {
	var out []ui.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// AppendChild implements ui.Element.
func (e *Element) AppendChild(child ui.Element) {
	e.InsertBefore(child, nil)
}

// InsertBefore implements ui.Element.
func (e *Element) InsertBefore(child, ref ui.Element) {
	c := e.own(child)
	if p := c.node.Parent; p != nil {
		p.RemoveChild(c.node)
	}
	var refNode *html.Node
	if ref != nil {
		r := e.own(ref)
		if r.node.Parent == e.node {
			refNode = r.node
		}
	}
	e.node.InsertBefore(c.node, refNode)
}

// RemoveChild implements ui.Element.
func (e *Element) RemoveChild(child ui.Element) {
	c := e.own(child)
	if c.node.Parent != e.node {
		return
	}
	e.node.RemoveChild(c.node)
}

// own converts a ui.Element from this document back to *Element.
func (e *Element) own(other ui.Element) *Element {
	o, ok := other.(*Element)
	if !ok || o.doc != e.doc {
		panic(fmt.Sprintf("dom: element %T does not belong to this document", other))
	}
	return o
}

func (e *Element) clearChildren() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		e.doc.forget(c)
		c = next
	}
}

func (e *Element) wrapTree(n *html.Node) {
	if n.Type == html.ElementNode {
		e.doc.wrap(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.wrapTree(c)
	}
}

type styleDecl struct {
	prop  string
	value string
}

func (e *Element) styles() []styleDecl {
	raw, _ := getAttr(e.node, "style")
	var out []styleDecl
	for _, part := range strings.Split(raw, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out = append(out, styleDecl{prop: prop, value: strings.TrimSpace(value)})
	}
	return out
}

func (e *Element) setStyles(decls []styleDecl) {
	if len(decls) == 0 {
		removeAttr(e.node, "style")
		return
	}
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value
	}
	setAttr(e.node, "style", strings.Join(parts, "; "))
}

func (e *Element) classes() []string {
	raw, _ := getAttr(e.node, "class")
	return strings.Fields(raw)
}

func (e *Element) setClasses(list []string) {
	if len(list) == 0 {
		removeAttr(e.node, "class")
		return
	}
	setAttr(e.node, "class", strings.Join(list, " "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
