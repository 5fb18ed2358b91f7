package dom

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kyu49/euonymus/pkg/ui"
)

// IDAttr is the attribute carrying an element's document-unique id.
const IDAttr = "data-eid"

// HiddenClass is the class toggled by SetHidden.
const HiddenClass = "hidden"

// Document is an in-memory HTML document.
type Document struct {
	root   *html.Node
	head   *Element
	body   *Element
	byNode map[*html.Node]*Element
	byID   map[string]*Element
	nextID int
}

// NewDocument creates an empty document with head and body.
func NewDocument(title string) *Document {
	d := &Document{
		root:   &html.Node{Type: html.DocumentNode},
		byNode: make(map[*html.Node]*Element),
		byID:   make(map[string]*Element),
	}
	d.root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := d.newElement("html")
	d.root.AppendChild(htmlEl.node)
	d.head = d.newElement("head")
	d.body = d.newElement("body")
	htmlEl.AppendChild(d.head)
	htmlEl.AppendChild(d.body)

	if title != "" {
		t := d.newElement("title")
		t.node.AppendChild(&html.Node{Type: html.TextNode, Data: title})
		d.head.AppendChild(t)
	}
	return d
}

// Head returns the head element.
func (d *Document) Head() *Element { return d.head }

// Body returns the body element.
func (d *Document) Body() *Element { return d.body }

// CreateElement implements ui.Document.
func (d *Document) CreateElement(tag string) ui.Element {
	return d.newElement(tag)
}

// Create is CreateElement returning the concrete type.
func (d *Document) Create(tag string) *Element {
	return d.newElement(tag)
}

// ElementByID returns the element with the given data-eid.
func (d *Document) ElementByID(id string) (*Element, bool) {
	e, ok := d.byID[id]
	return e, ok
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// RenderWithIDs writes the whole document with every element carrying its
// data-eid attribute, for clients that route events back by id.
func (d *Document) RenderWithIDs(w io.Writer) error {
	return d.withIDs(func() error { return html.Render(w, d.root) })
}

// withIDs runs fn while the data-eid attributes are present in the tree.
func (d *Document) withIDs(fn func() error) error {
	for n, e := range d.byNode {
		setAttr(n, IDAttr, e.id)
	}
	defer func() {
		for n := range d.byNode {
			removeAttr(n, IDAttr)
		}
	}()
	return fn()
}

// String renders the whole document, returning an error marker on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return fmt.Sprintf("<!-- render error: %v -->", err)
	}
	return buf.String()
}

func (d *Document) newElement(tag string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(n)
}

// wrap returns the Element for n, creating and registering one if needed.
func (d *Document) wrap(n *html.Node) *Element {
	if e, ok := d.byNode[n]; ok {
		return e
	}
	d.nextID++
	id := "e" + strconv.Itoa(d.nextID)

	e := &Element{doc: d, node: n, id: id}
	// Parsed markup may already carry state in attributes.
	for _, a := range n.Attr {
		switch a.Key {
		case "value":
			e.value = a.Val
		case "checked":
			e.checked = true
		}
	}
	if n.DataAtom == atom.Textarea {
		e.value = textContent(n)
	}
	removeAttr(n, IDAttr)

	d.byNode[n] = e
	d.byID[id] = e
	return e
}

// forget drops the registrations of n and its element descendants.
func (d *Document) forget(n *html.Node) {
	if e, ok := d.byNode[n]; ok {
		delete(d.byID, e.id)
		delete(d.byNode, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
