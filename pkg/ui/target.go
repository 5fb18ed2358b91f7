package ui

// Standard interaction event names.
const (
	EventInput  = "input"
	EventChange = "change"
	EventClick  = "click"
	EventSubmit = "submit"
)

// Event is delivered to listeners when a target fires an interaction event.
type Event struct {
	// Type is the event name, e.g. "input".
	Type string

	// Target is the element the event was fired on.
	Target Target
}

// Listener handles an interaction event. A returned error propagates to
// whoever fired the event.
type Listener func(Event) error

// Target is a UI element whose interactive state can be read, written and
// observed.
type Target interface {
	// Value returns the text-like value (input value, textarea content).
	Value() string
	// SetValue replaces the text-like value.
	SetValue(v string)

	// Selection returns the current selection range of a text-like target.
	Selection() (start, end int)
	// SetSelection sets the selection range. Out-of-range positions are clamped.
	SetSelection(start, end int)

	// Checked reports the checked state of a checkbox-like target.
	Checked() bool
	// SetChecked sets the checked state.
	SetChecked(checked bool)

	// Hidden reports whether the target is hidden.
	Hidden() bool
	// SetHidden shows or hides the target.
	SetHidden(hidden bool)

	// Disabled reports whether the target is disabled.
	Disabled() bool
	// SetDisabled enables or disables the target.
	SetDisabled(disabled bool)

	// SetInnerHTML replaces the target's content with raw markup.
	// The markup is not escaped.
	SetInnerHTML(markup string) error

	// AddEventListener subscribes l to the named event.
	AddEventListener(event string, l Listener)
}

// Element is a Target that also carries attributes, inline style, a class
// list and children. Components render into Elements.
type Element interface {
	Target

	// Tag returns the lower-case tag name.
	Tag() string

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	Style(property string) (string, bool)
	SetStyle(property, value string)
	RemoveStyle(property string)

	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)

	// Parent returns the parent element, or nil when detached.
	Parent() Element
	// Children returns the element children in document order.
	Children() []Element

	// AppendChild attaches child as the last child, detaching it from any
	// previous parent first.
	AppendChild(child Element)
	// InsertBefore attaches child before ref. A nil ref appends.
	InsertBefore(child, ref Element)
	// RemoveChild detaches child. Removing a non-child is a no-op.
	RemoveChild(child Element)
}

// Document creates Elements.
type Document interface {
	CreateElement(tag string) Element
}
