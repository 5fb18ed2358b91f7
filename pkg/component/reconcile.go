package component

import (
	"github.com/kyu49/euonymus/pkg/ui"
)

// renderChildren makes the component's children match descriptors. On the
// first pass every child is built; afterwards existing children are matched
// and updated in place.
func (c *Component) renderChildren(descriptors []Descriptor) error {
	if c.markup {
		// Template content owned the element's children until now.
		c.markup = false
		if err := c.node.SetInnerHTML(""); err != nil {
			return err
		}
	}

	old := c.children
	keyed := make(map[string]*Component, len(old))
	for _, child := range old {
		if child.desc.Key != "" {
			if _, dup := keyed[child.desc.Key]; !dup {
				keyed[child.desc.Key] = child
			}
		}
	}
	used := make(map[*Component]bool, len(old))

	next := make([]*Component, 0, len(descriptors))
	var created, reused int
	var err error
	for i, d := range descriptors {
		d.Tag = normalizeTag(d.Tag)
		match := c.match(d, i, old, keyed, used)
		if match != nil {
			used[match] = true
			reused++
			next = append(next, match)
			if err = match.Update(d); err != nil {
				break
			}
			continue
		}
		child := newComponent(c.doc, d, c.opts)
		child.root = c.node
		created++
		next = append(next, child)
		if err = child.Compose(); err != nil {
			break
		}
	}

	destroyed := 0
	if err != nil {
		// Keep the children we did not get to; the next pass retries them.
		for _, child := range old {
			if !used[child] {
				next = append(next, child)
			}
		}
	} else {
		for _, child := range old {
			if !used[child] {
				child.Dispose()
				c.node.RemoveChild(child.node)
				destroyed++
			}
		}
	}

	c.place(next)
	c.children = next
	c.opts.recorder.Children(created, reused, destroyed)
	return err
}

// match finds the existing child descriptor d should update in place.
// Keyed descriptors match by key anywhere in the old list; unkeyed ones
// match the unkeyed child at the same position. Tags must agree.
func (c *Component) match(d Descriptor, i int, old []*Component, keyed map[string]*Component, used map[*Component]bool) *Component {
	var candidate *Component
	if d.Key != "" {
		candidate = keyed[d.Key]
	} else if i < len(old) && old[i].desc.Key == "" {
		candidate = old[i]
	}
	if candidate == nil || used[candidate] || candidate.desc.Tag != d.Tag {
		return nil
	}
	return candidate
}

// place orders the element's children to match next, moving only the
// elements that are out of place.
func (c *Component) place(next []*Component) {
	current := c.node.Children()
	for i, child := range next {
		if i < len(current) && current[i] == child.node {
			continue
		}
		var ref ui.Element
		if i < len(current) {
			ref = current[i]
		}
		c.node.InsertBefore(child.node, ref)
		current = c.node.Children()
	}
}
