package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kyu49/euonymus/pkg/binding"
	"github.com/kyu49/euonymus/pkg/template"
)

type declKind uint8

const (
	declStyle declKind = iota
	declAttr
	declClass
)

// declaration is one style property, attribute or class entry with its own
// computation, so a cell change re-applies only the declarations that read
// the cell.
type declaration struct {
	kind  declKind
	name  string
	expr  any
	owner *Component
	comp  *binding.Computation

	// applied holds the class names a class entry last added.
	applied []string
}

func (c *Component) newDeclaration(kind declKind, name string) *declaration {
	d := &declaration{kind: kind, name: name, owner: c}
	d.comp = binding.NewComputation(d.apply)
	return d
}

func (d *declaration) dispose() {
	d.comp.Dispose()
}

// syncDeclarations brings the declaration set in line with the current
// descriptor and re-applies each one. Removed declarations are disposed
// and their effect on the element undone.
func (c *Component) syncDeclarations() error {
	for name, d := range c.styles {
		if _, ok := c.desc.Style[name]; !ok {
			d.dispose()
			c.node.RemoveStyle(name)
			delete(c.styles, name)
		}
	}
	for _, name := range sortedKeys(c.desc.Style) {
		d, ok := c.styles[name]
		if !ok {
			d = c.newDeclaration(declStyle, name)
			c.styles[name] = d
		}
		d.expr = c.desc.Style[name]
		if err := d.comp.Run(); err != nil {
			return fmt.Errorf("style %q: %w", name, err)
		}
	}

	for name, d := range c.attrs {
		if _, ok := c.desc.Attrs[name]; !ok {
			d.dispose()
			c.node.RemoveAttribute(name)
			delete(c.attrs, name)
		}
	}
	for _, name := range sortedKeys(c.desc.Attrs) {
		d, ok := c.attrs[name]
		if !ok {
			d = c.newDeclaration(declAttr, name)
			c.attrs[name] = d
		}
		d.expr = c.desc.Attrs[name]
		if err := d.comp.Run(); err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}
	}

	if n := len(c.desc.Class); len(c.classes) > n {
		stale := c.classes[n:]
		c.classes = c.classes[:n:n]
		for _, d := range stale {
			d.dispose()
			c.removeClasses(d, d.applied)
			d.applied = nil
		}
	}
	for i, expr := range c.desc.Class {
		if i == len(c.classes) {
			c.classes = append(c.classes, c.newDeclaration(declClass, ""))
		}
		d := c.classes[i]
		d.expr = expr
		if err := d.comp.Run(); err != nil {
			return fmt.Errorf("class entry %d: %w", i, err)
		}
	}
	return nil
}

// apply is the body of a declaration's computation.
func (d *declaration) apply() error {
	c := d.owner
	v := evaluate(d.expr, c.desc.ViewModel)

	switch d.kind {
	case declStyle:
		if s, ok := styleValue(v); ok {
			c.node.SetStyle(d.name, s)
		} else {
			c.node.RemoveStyle(d.name)
		}
	case declAttr:
		if s, ok := attrValue(v); ok {
			c.node.SetAttribute(d.name, s)
		} else {
			c.node.RemoveAttribute(d.name)
		}
	case declClass:
		names := classNames(v)
		var stale []string
		for _, old := range d.applied {
			if !containsString(names, old) {
				stale = append(stale, old)
			}
		}
		d.applied = names
		c.removeClasses(d, stale)
		c.node.AddClass(names...)
	}
	return nil
}

// removeClasses removes names unless another class entry still applies them.
func (c *Component) removeClasses(except *declaration, names []string) {
	for _, name := range names {
		shared := false
		for _, other := range c.classes {
			if other != except && containsString(other.applied, name) {
				shared = true
				break
			}
		}
		if !shared {
			c.node.RemoveClass(name)
		}
	}
}

// evaluate resolves a declaration expression. Strings are templates over
// the view-model; cells and functions are read, which records the
// dependency in the running computation.
func evaluate(expr any, vm ViewModel) any {
	switch x := expr.(type) {
	case string:
		return template.Interpolate(x, vm)
	case binding.Reader:
		return x.Any()
	case func() any:
		return x()
	case func() string:
		return x()
	case func() bool:
		return x()
	case func(ViewModel) any:
		return x(vm)
	}
	return expr
}

// styleValue maps nil, false and "" to "remove the property".
func styleValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case bool:
		if !x {
			return "", false
		}
	}
	s := template.Stringify(v)
	return s, s != ""
}

// attrValue maps true to a present empty attribute and nil or false to an
// absent one.
func attrValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", x
	}
	return template.Stringify(v), true
}

func classNames(v any) []string {
	switch x := v.(type) {
	case []string:
		var out []string
		for _, s := range x {
			out = append(out, strings.Fields(s)...)
		}
		return out
	}
	if !template.Truthy(v) {
		return nil
	}
	return strings.Fields(template.Stringify(v))
}

// ClassIf returns a class entry that yields name while cond is truthy.
// cond may be a cell, a func() any or a plain value.
func ClassIf(name string, cond any) func() any {
	return func() any {
		if template.Truthy(read(cond)) {
			return name
		}
		return ""
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
