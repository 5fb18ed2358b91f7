package binding

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/kyu49/euonymus/pkg/template"
	"github.com/kyu49/euonymus/pkg/ui"
)

// Kind selects one of the standard observer behaviors.
type Kind uint8

const (
	// KindCustom uses the observer's own Project and Extract functions.
	KindCustom Kind = iota
	// KindTextLike mirrors a text value and preserves the selection range.
	KindTextLike
	// KindContent replaces the target's inner markup. Read-only.
	KindContent
	// KindCheckbox mirrors a checked state.
	KindCheckbox
	// KindVisible shows the target when the value is truthy. Read-only.
	KindVisible
	// KindInvisible hides the target when the value is truthy. Read-only.
	KindInvisible
	// KindEnabled enables the target when the value is truthy. Read-only.
	KindEnabled
	// KindDisabled disables the target when the value is truthy. Read-only.
	KindDisabled
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindTextLike:
		return "text"
	case KindContent:
		return "content"
	case KindCheckbox:
		return "checkbox"
	case KindVisible:
		return "visible"
	case KindInvisible:
		return "invisible"
	case KindEnabled:
		return "enabled"
	case KindDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Observer binds a cell to one UI target.
//
// Project and Extract override the Kind's standard behavior when set; a
// KindCustom observer must provide them itself. Projectors run on every
// change, including the echo of a change the observer's own trigger
// caused, so they must be cheap and idempotent.
type Observer[T any] struct {
	Target  ui.Target
	Kind    Kind
	Project func(v T, t ui.Target) error
	Extract func(c *Cell[T], t ui.Target) (T, error)
	// Trigger is the target event that feeds Extract's result back into
	// the cell. Empty means the observer is read-only.
	Trigger string
}

// TextLike binds a text input or textarea. Typing updates the cell on the
// input event; programmatic changes keep the caret where it was.
func TextLike(t ui.Target) Observer[string] {
	return Observer[string]{Target: t, Kind: KindTextLike, Trigger: ui.EventInput}
}

// Content replaces t's inner markup with the value's string form. The
// markup is inserted unescaped.
func Content[T any](t ui.Target) Observer[T] {
	return Observer[T]{Target: t, Kind: KindContent}
}

// Checkbox binds a checkbox's checked state on the change event.
func Checkbox(t ui.Target) Observer[bool] {
	return Observer[bool]{Target: t, Kind: KindCheckbox, Trigger: ui.EventChange}
}

// Visible shows t while the value is truthy.
func Visible[T any](t ui.Target) Observer[T] {
	return Observer[T]{Target: t, Kind: KindVisible}
}

// Invisible hides t while the value is truthy.
func Invisible[T any](t ui.Target) Observer[T] {
	return Observer[T]{Target: t, Kind: KindInvisible}
}

// Enabled enables t while the value is truthy.
func Enabled[T any](t ui.Target) Observer[T] {
	return Observer[T]{Target: t, Kind: KindEnabled}
}

// Disabled disables t while the value is truthy.
func Disabled[T any](t ui.Target) Observer[T] {
	return Observer[T]{Target: t, Kind: KindDisabled}
}

// Custom builds an observer from caller-supplied callbacks. extract and
// trigger may be nil and empty for a read-only binding.
func Custom[T any](t ui.Target, project func(T, ui.Target) error, extract func(*Cell[T], ui.Target) (T, error), trigger string) Observer[T] {
	return Observer[T]{Target: t, Kind: KindCustom, Project: project, Extract: extract, Trigger: trigger}
}

func (o *Observer[T]) canExtract() bool {
	if o.Extract != nil {
		return true
	}
	return o.Kind == KindTextLike || o.Kind == KindCheckbox
}

func (o *Observer[T]) project(v T) error {
	if o.Project != nil {
		return o.Project(v, o.Target)
	}
	return applyProjection(o.Kind, v, o.Target)
}

func (o *Observer[T]) extract(c *Cell[T]) (T, error) {
	if o.Extract != nil {
		return o.Extract(c, o.Target)
	}
	raw, err := applyExtraction(o.Kind, o.Target)
	if err != nil {
		var zero T
		return zero, err
	}
	return convert[T](raw)
}

// applyProjection is the single dispatch point for the standard variants.
func applyProjection(kind Kind, v any, t ui.Target) error {
	switch kind {
	case KindTextLike:
		start, end := t.Selection()
		t.SetValue(template.Stringify(v))
		t.SetSelection(start, end)
	case KindContent:
		return t.SetInnerHTML(template.Stringify(v))
	case KindCheckbox:
		t.SetChecked(template.Truthy(v))
	case KindVisible:
		t.SetHidden(!template.Truthy(v))
	case KindInvisible:
		t.SetHidden(template.Truthy(v))
	case KindEnabled:
		t.SetDisabled(!template.Truthy(v))
	case KindDisabled:
		t.SetDisabled(template.Truthy(v))
	case KindCustom:
		return fmt.Errorf("custom observer without projector")
	default:
		return fmt.Errorf("unknown observer kind %d", kind)
	}
	return nil
}

func applyExtraction(kind Kind, t ui.Target) (any, error) {
	switch kind {
	case KindTextLike:
		return t.Value(), nil
	case KindCheckbox:
		return t.Checked(), nil
	default:
		return nil, fmt.Errorf("%s observer has no extractor", kind)
	}
}

// convert turns an extracted value into T. Strings are parsed into numeric
// and boolean cells so a number input can feed a Cell[int].
func convert[T any](raw any) (T, error) {
	var zero T
	if v, ok := raw.(T); ok {
		return v, nil
	}
	target := reflect.TypeOf(zero)
	if target == nil {
		// T is an interface type that raw does not satisfy.
		return zero, fmt.Errorf("%w: %T", ErrTypeMismatch, raw)
	}
	out := reflect.New(target).Elem()

	switch r := raw.(type) {
	case string:
		if err := parseInto(out, r); err != nil {
			return zero, err
		}
		return out.Interface().(T), nil
	case bool:
		if out.Kind() == reflect.String {
			out.SetString(strconv.FormatBool(r))
			return out.Interface().(T), nil
		}
	}
	return zero, fmt.Errorf("%w: cannot use %T as %s", ErrTypeMismatch, raw, target)
}

func parseInto(out reflect.Value, s string) error {
	switch out.Kind() {
	case reflect.String:
		out.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, out.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, out.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, out.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		out.SetFloat(f)
	default:
		return fmt.Errorf("%w: cannot parse %q into %s", ErrTypeMismatch, s, out.Type())
	}
	return nil
}
