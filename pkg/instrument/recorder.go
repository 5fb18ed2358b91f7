package instrument

import "time"

// Compose phases reported to Recorder.Compose.
const (
	PhaseInitial   = "initial"
	PhaseReconcile = "reconcile"
	PhaseUpdate    = "update"
)

// Recorder receives engine events. Implementations must be cheap; they are
// called on every notification.
type Recorder interface {
	// Notification is called once per projector invocation.
	Notification(kind string)

	// CallbackFailure is called when a projector, extractor or dependent
	// listener fails. phase is "project", "extract" or "listener".
	CallbackFailure(phase string)

	// Overflow is called when a reentrant update exceeds the depth ceiling.
	Overflow()

	// Compose is called after each composition pass of a component.
	Compose(phase string, d time.Duration)

	// Children is called after a reconciliation with the number of child
	// components created, reused in place and destroyed.
	Children(created, reused, destroyed int)
}

// Nop is a Recorder that does nothing.
type Nop struct{}

func (Nop) Notification(string)                {}
func (Nop) CallbackFailure(string)             {}
func (Nop) Overflow()                          {}
func (Nop) Compose(string, time.Duration)      {}
func (Nop) Children(created, reused, gone int) {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}
