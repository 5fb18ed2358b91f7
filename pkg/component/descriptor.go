package component

import (
	"github.com/kyu49/euonymus/pkg/binding"
	"github.com/kyu49/euonymus/pkg/ui"
)

// DefaultTag is used when a descriptor has no tag.
const DefaultTag = "section"

// ViewModel holds the values a component's templates and expressions
// resolve names against. Values may be plain values, cells (any
// binding.Reader) or func() any; cells and functions are read at
// resolution time, so the read is tracked.
type ViewModel map[string]any

// Resolve implements template.Resolver.
func (vm ViewModel) Resolve(key string) (any, bool) {
	v, ok := vm[key]
	if !ok {
		return nil, false
	}
	return read(v), true
}

// Get resolves key, returning nil when absent.
func (vm ViewModel) Get(key string) any {
	v, _ := vm.Resolve(key)
	return v
}

func read(v any) any {
	switch x := v.(type) {
	case binding.Reader:
		return x.Any()
	case func() any:
		return x()
	}
	return v
}

// ChildrenFunc produces child descriptors from the view-model. Cells read
// inside it make the children list reactive.
type ChildrenFunc func(vm ViewModel) []Descriptor

// EventBinding attaches a callback to a named event.
type EventBinding struct {
	Type     string
	Callback func(ui.Event) error
}

// Descriptor is the declarative description of one component.
type Descriptor struct {
	Tag string
	// Key identifies the child across reconciliations. Optional.
	Key       string
	ViewModel ViewModel
	// Content is a template string, a []Descriptor, a ChildrenFunc or nil.
	Content any
	// Escape makes template content HTML-escape substituted values.
	Escape bool
	// Style maps CSS properties to expressions.
	Style map[string]any
	// Class entries are expressions producing space-separated class names.
	Class  []any
	Events []EventBinding
	// Attrs maps attribute names to expressions.
	Attrs map[string]any
}

// Option configures a Descriptor.
type Option func(*Descriptor)

// El builds a descriptor for tag. An empty tag means DefaultTag.
func El(tag string, opts ...Option) Descriptor {
	if tag == "" {
		tag = DefaultTag
	}
	d := Descriptor{Tag: tag}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Key sets the reconciliation key.
func Key(key string) Option {
	return func(d *Descriptor) { d.Key = key }
}

// VM sets the view-model.
func VM(vm ViewModel) Option {
	return func(d *Descriptor) { d.ViewModel = vm }
}

// Text sets template content inserted as raw markup.
func Text(tmpl string) Option {
	return func(d *Descriptor) {
		d.Content = tmpl
		d.Escape = false
	}
}

// EscapedText sets template content whose substituted values are escaped.
func EscapedText(tmpl string) Option {
	return func(d *Descriptor) {
		d.Content = tmpl
		d.Escape = true
	}
}

// Children sets a static list of child descriptors.
func Children(children ...Descriptor) Option {
	return func(d *Descriptor) { d.Content = children }
}

// Dynamic sets a function producing the children.
func Dynamic(fn ChildrenFunc) Option {
	return func(d *Descriptor) { d.Content = fn }
}

// Style merges CSS declarations.
func Style(style map[string]any) Option {
	return func(d *Descriptor) {
		if d.Style == nil {
			d.Style = make(map[string]any, len(style))
		}
		for k, v := range style {
			d.Style[k] = v
		}
	}
}

// StyleProp sets one CSS declaration.
func StyleProp(property string, expr any) Option {
	return Style(map[string]any{property: expr})
}

// Class appends class-list entries.
func Class(entries ...any) Option {
	return func(d *Descriptor) { d.Class = append(d.Class, entries...) }
}

// On appends an event binding.
func On(event string, callback func(ui.Event) error) Option {
	return func(d *Descriptor) {
		d.Events = append(d.Events, EventBinding{Type: event, Callback: callback})
	}
}

// Attrs merges attribute declarations.
func Attrs(attrs map[string]any) Option {
	return func(d *Descriptor) {
		if d.Attrs == nil {
			d.Attrs = make(map[string]any, len(attrs))
		}
		for k, v := range attrs {
			d.Attrs[k] = v
		}
	}
}

// Attr sets one attribute declaration.
func Attr(name string, expr any) Option {
	return Attrs(map[string]any{name: expr})
}
