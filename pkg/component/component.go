package component

import (
	"fmt"
	"strings"
	"time"

	"github.com/kyu49/euonymus/pkg/binding"
	"github.com/kyu49/euonymus/pkg/instrument"
	"github.com/kyu49/euonymus/pkg/template"
	"github.com/kyu49/euonymus/pkg/ui"
)

// Component is a live node of a declarative UI tree.
type Component struct {
	id   uint64
	desc Descriptor
	doc  ui.Document
	node ui.Element
	opts *options

	composed bool
	// markup is true while the node's content comes from a template.
	markup   bool
	children []*Component
	root     ui.Element
	disposed bool

	content *binding.Computation
	styles  map[string]*declaration
	attrs   map[string]*declaration
	classes []*declaration

	handlers  map[string][]func(ui.Event) error
	listening map[string]bool
}

// New creates the component and its backing element. Content and
// declarations are not applied until Compose.
func New(doc ui.Document, d Descriptor, opts ...ComponentOption) *Component {
	return newComponent(doc, d, applyOptions(opts))
}

func newComponent(doc ui.Document, d Descriptor, o *options) *Component {
	d.Tag = normalizeTag(d.Tag)
	c := &Component{
		id:        binding.NextID(),
		desc:      d,
		doc:       doc,
		node:      doc.CreateElement(d.Tag),
		opts:      o,
		styles:    make(map[string]*declaration),
		attrs:     make(map[string]*declaration),
		listening: make(map[string]bool),
	}
	c.setEvents(d.Events)
	return c
}

// Mount creates, composes and roots a component in one step.
func Mount(doc ui.Document, d Descriptor, root ui.Element, opts ...ComponentOption) (*Component, error) {
	c := New(doc, d, opts...)
	if err := c.Compose(); err != nil {
		return c, err
	}
	return c, c.SetRoot(root)
}

// ID returns the component's unique identifier.
func (c *Component) ID() uint64 { return c.id }

// Node returns the backing element.
func (c *Component) Node() ui.Element { return c.node }

// Tag returns the component's tag.
func (c *Component) Tag() string { return c.desc.Tag }

// Key returns the reconciliation key.
func (c *Component) Key() string { return c.desc.Key }

// ViewModel returns the current view-model.
func (c *Component) ViewModel() ViewModel { return c.desc.ViewModel }

// Children returns the child components in order.
func (c *Component) Children() []*Component {
	return append([]*Component(nil), c.children...)
}

// Composed reports whether the first composition pass has run.
func (c *Component) Composed() bool { return c.composed }

// Disposed reports whether the component was disposed.
func (c *Component) Disposed() bool { return c.disposed }

// Compose applies the component's content and declarations. The first call
// builds everything; later calls re-evaluate and reconcile in place.
func (c *Component) Compose() error {
	if c.disposed {
		return nil
	}
	start := time.Now()
	phase := instrument.PhaseReconcile
	if !c.composed {
		phase = instrument.PhaseInitial
		c.content = binding.NewComputation(c.renderContent)
	}

	if err := c.syncDeclarations(); err != nil {
		return c.wrap(err)
	}
	err := c.content.Run()
	c.composed = true
	c.opts.recorder.Compose(phase, time.Since(start))
	return c.wrap(err)
}

// Update replaces the component's descriptor in place: the element is
// kept, declarations are re-applied and content is reconciled. An
// uncomposed component is composed.
func (c *Component) Update(d Descriptor) error {
	d.Tag = normalizeTag(d.Tag)
	if d.Tag != c.desc.Tag {
		return fmt.Errorf("%w: <%s> to <%s>", ErrTagMismatch, c.desc.Tag, d.Tag)
	}
	if c.disposed {
		return nil
	}
	c.desc = d
	c.setEvents(d.Events)
	if !c.composed {
		return c.Compose()
	}

	start := time.Now()
	if err := c.syncDeclarations(); err != nil {
		return c.wrap(err)
	}
	err := c.content.Run()
	c.opts.recorder.Compose(instrument.PhaseUpdate, time.Since(start))
	return c.wrap(err)
}

// SetRoot attaches the component's element under target. A component is
// rooted at most once, and children built by a parent count as rooted
// under it; later calls are logged and rejected with ErrAlreadyRooted.
func (c *Component) SetRoot(target ui.Element) error {
	if c.root != nil {
		c.opts.logger.Warn("component already assigned to a parent element",
			"tag", c.desc.Tag,
			"key", c.desc.Key,
			"id", c.id)
		return ErrAlreadyRooted
	}
	target.AppendChild(c.node)
	c.root = target
	return nil
}

// Root returns the element the component was rooted under, or nil.
func (c *Component) Root() ui.Element { return c.root }

// Dispose unsubscribes the component and all its descendants from every
// cell. The element is left where it is.
func (c *Component) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	if c.content != nil {
		c.content.Dispose()
	}
	for _, d := range c.styles {
		d.dispose()
	}
	for _, d := range c.attrs {
		d.dispose()
	}
	for _, d := range c.classes {
		d.dispose()
	}
	for _, child := range c.children {
		child.Dispose()
	}
}

// renderContent is the content computation's body.
func (c *Component) renderContent() error {
	switch content := c.desc.Content.(type) {
	case nil:
		if c.markup {
			c.markup = false
			return c.node.SetInnerHTML("")
		}
		return c.renderChildren(nil)
	case string:
		c.clearChildren()
		c.markup = true
		var markup string
		if c.desc.Escape {
			markup = template.InterpolateEscaped(content, c.desc.ViewModel)
		} else {
			markup = template.Interpolate(content, c.desc.ViewModel)
		}
		return c.node.SetInnerHTML(markup)
	case []Descriptor:
		return c.renderChildren(content)
	case ChildrenFunc:
		return c.renderChildren(content(c.desc.ViewModel))
	case func(ViewModel) []Descriptor:
		return c.renderChildren(content(c.desc.ViewModel))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedContent, c.desc.Content)
	}
}

// clearChildren drops child components before template content replaces
// the element's children wholesale.
func (c *Component) clearChildren() {
	for _, child := range c.children {
		child.Dispose()
	}
	if len(c.children) > 0 {
		c.opts.recorder.Children(0, 0, len(c.children))
	}
	c.children = nil
}

func (c *Component) setEvents(events []EventBinding) {
	handlers := make(map[string][]func(ui.Event) error, len(events))
	for _, e := range events {
		if e.Type == "" || e.Callback == nil {
			continue
		}
		handlers[e.Type] = append(handlers[e.Type], e.Callback)
	}
	c.handlers = handlers
	for typ := range handlers {
		c.listen(typ)
	}
}

// listen registers one element listener per event type; it dispatches to
// whatever callbacks the component currently holds for that type.
func (c *Component) listen(typ string) {
	if c.listening[typ] {
		return
	}
	c.listening[typ] = true
	c.node.AddEventListener(typ, func(ev ui.Event) error {
		for _, cb := range c.handlers[typ] {
			if err := cb(ev); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *Component) wrap(err error) error {
	if err == nil {
		return nil
	}
	if c.desc.Key != "" {
		return fmt.Errorf("compose <%s key=%q>: %w", c.desc.Tag, c.desc.Key, err)
	}
	return fmt.Errorf("compose <%s>: %w", c.desc.Tag, err)
}

func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return DefaultTag
	}
	return tag
}
