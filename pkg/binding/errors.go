package binding

import (
	"errors"
	"fmt"
)

// ErrCallbackFailed matches every *CallbackError.
var ErrCallbackFailed = errors.New("euonymus: binding callback failed")

// ErrReentrantOverflow is returned by Set when nested updates exceed the
// configured depth. It usually means two cells feed each other through
// projectors or dependent components.
var ErrReentrantOverflow = errors.New("euonymus: reentrant update overflow")

// ErrTypeMismatch is wrapped when an extracted value cannot be converted to
// the cell's type.
var ErrTypeMismatch = errors.New("euonymus: extracted value has wrong type")

// Phase names the callback that failed.
type Phase string

const (
	PhaseProject  Phase = "project"
	PhaseExtract  Phase = "extract"
	PhaseListener Phase = "listener"
)

// CallbackError reports a failed projector or extractor. Observers notified
// before the failure keep their new state; later observers in the same pass
// were skipped.
type CallbackError struct {
	Phase Phase
	Kind  Kind
	// Event is the trigger event being handled, empty for programmatic Set.
	Event string
	Err   error
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	if e.Event != "" {
		return fmt.Sprintf("euonymus: %s %s observer on %q event: %v", e.Phase, e.Kind, e.Event, e.Err)
	}
	return fmt.Sprintf("euonymus: %s %s observer: %v", e.Phase, e.Kind, e.Err)
}

// Unwrap exposes both ErrCallbackFailed and the cause.
func (e *CallbackError) Unwrap() []error {
	return []error{ErrCallbackFailed, e.Err}
}

// panicError carries a recovered panic value.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

// guard runs fn, converting a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return fn()
}
