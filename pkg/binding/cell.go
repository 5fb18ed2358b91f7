package binding

import (
	"fmt"
	"reflect"

	"github.com/kyu49/euonymus/pkg/instrument"
	"github.com/kyu49/euonymus/pkg/ui"
)

// Cell holds one logical value and the observers bound to it.
type Cell[T any] struct {
	id    uint64
	value T

	// version increments on every stored change. A fan-out stops early when
	// a nested Set has already delivered a newer value.
	version uint64

	observers []*Observer[T]
	subs      subscribers

	cfg   Config
	rec   instrument.Recorder
	equal func(a, b T) bool
}

var _ Reader = (*Cell[int])(nil)

// NewCell creates a cell holding initial. Without options the cell uses
// DefaultConfig.
func NewCell[T any](initial T, opts ...CellOption) *Cell[T] {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cell[T]{
		id:    NextID(),
		value: initial,
		cfg:   cfg,
		rec:   instrument.OrNop(cfg.Recorder),
	}
}

// ID returns the cell's unique identifier.
func (c *Cell[T]) ID() uint64 { return c.id }

// Config returns the configuration the cell was created with.
func (c *Cell[T]) Config() Config { return c.cfg }

// Override reports the initial-synchronization policy.
func (c *Cell[T]) Override() bool { return c.cfg.OverrideWithState }

// WithEquals replaces the equality used by Set and returns the cell.
func (c *Cell[T]) WithEquals(fn func(a, b T) bool) *Cell[T] {
	c.equal = fn
	return c
}

// Get returns the current value and records the read in the current
// tracking context.
func (c *Cell[T]) Get() T {
	if l := currentListener(); l != nil {
		if c.subs.add(l) {
			if d, ok := l.(dependent); ok {
				d.track(c)
			}
		}
	}
	return c.value
}

// Peek returns the current value without recording a dependency.
func (c *Cell[T]) Peek() T {
	return c.value
}

// Any implements Reader.
func (c *Cell[T]) Any() any {
	return c.Get()
}

// Observers returns the number of bound observers.
func (c *Cell[T]) Observers() int { return len(c.observers) }

// Subscribers returns the number of dependent listeners.
func (c *Cell[T]) Subscribers() int { return len(c.subs.list) }

// Set stores v and notifies every observer in attachment order, then every
// dependent listener in subscription order. Setting a value equal to the
// current one does nothing.
//
// Equality is == for scalar kinds and reflect.DeepEqual otherwise, unless
// WithEquals installed a custom function. Pointers compare by address
// through ==, so two pointers to equal structs count as a change.
//
// The value is stored before any observer runs. If a callback fails, the
// pass stops there and the error is returned; observers already notified
// keep the new value and the rest are skipped.
func (c *Cell[T]) Set(v T) error {
	if c.equals(c.value, v) {
		return nil
	}

	ctx, ok := enter(c.cfg.maxDepth())
	if !ok {
		c.rec.Overflow()
		releaseIfIdle(ctx)
		return fmt.Errorf("%w: cell %d exceeded depth %d", ErrReentrantOverflow, c.id, c.cfg.maxDepth())
	}
	defer leave(ctx)

	c.value = v
	c.version++
	return c.fanOut(v, c.version, "")
}

// Update sets the result of fn applied to the current value.
func (c *Cell[T]) Update(fn func(T) T) error {
	return c.Set(fn(c.value))
}

// fanOut delivers v to observers then listeners. event names the trigger
// being handled, for error reports.
func (c *Cell[T]) fanOut(v T, version uint64, event string) error {
	observers := append([]*Observer[T](nil), c.observers...)
	for _, o := range observers {
		if c.version != version {
			// A nested Set already delivered a newer value to everyone.
			return nil
		}
		if err := c.project(o, v, event); err != nil {
			return err
		}
	}

	for _, l := range c.subs.snapshot() {
		if c.version != version {
			return nil
		}
		if err := l.MarkDirty(); err != nil {
			c.rec.CallbackFailure(string(PhaseListener))
			return err
		}
	}
	return nil
}

// Bind attaches o. A trigger event, if set, is subscribed on o.Target so
// that firing it extracts the target's state into the cell. The cell and
// target are then synchronized once according to the override policy.
func (c *Cell[T]) Bind(o Observer[T]) error {
	if o.Target == nil {
		return fmt.Errorf("euonymus: bind %s observer: nil target", o.Kind)
	}
	obs := &o
	c.observers = append(c.observers, obs)

	if obs.Trigger != "" && obs.canExtract() {
		event := obs.Trigger
		obs.Target.AddEventListener(event, func(ev ui.Event) error {
			v, err := c.extract(obs, ev.Type)
			if err != nil {
				return err
			}
			return c.Set(v)
		})
	}

	if c.cfg.OverrideWithState && obs.canExtract() {
		v, err := c.extract(obs, "")
		if err != nil {
			return err
		}
		if c.equals(c.value, v) {
			// Target already agrees; still normalize its presentation.
			return c.project(obs, c.value, "")
		}
		return c.Set(v)
	}
	return c.project(obs, c.value, "")
}

// BindTarget binds t as a text-like target, the default variant.
func (c *Cell[T]) BindTarget(t ui.Target) error {
	return c.Bind(Observer[T]{Target: t, Kind: KindTextLike, Trigger: ui.EventInput})
}

func (c *Cell[T]) project(o *Observer[T], v T, event string) error {
	c.rec.Notification(o.Kind.String())
	if err := guard(func() error { return o.project(v) }); err != nil {
		c.rec.CallbackFailure(string(PhaseProject))
		return &CallbackError{Phase: PhaseProject, Kind: o.Kind, Event: event, Err: err}
	}
	return nil
}

func (c *Cell[T]) extract(o *Observer[T], event string) (T, error) {
	var v T
	err := guard(func() error {
		var err error
		v, err = o.extract(c)
		return err
	})
	if err != nil {
		c.rec.CallbackFailure(string(PhaseExtract))
		var zero T
		return zero, &CallbackError{Phase: PhaseExtract, Kind: o.Kind, Event: event, Err: err}
	}
	return v, nil
}

// unsubscribe implements Source.
func (c *Cell[T]) unsubscribe(l Listener) {
	c.subs.remove(l)
}

func (c *Cell[T]) equals(a, b T) bool {
	if c.equal != nil {
		return c.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for comparable scalar kinds and reflect.DeepEqual
// for everything else. Values of different dynamic types are never equal.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		bv, ok := any(b).(int)
		return ok && av == bv
	case int64:
		bv, ok := any(b).(int64)
		return ok && av == bv
	case float64:
		bv, ok := any(b).(float64)
		return ok && av == bv
	case string:
		bv, ok := any(b).(string)
		return ok && av == bv
	case bool:
		bv, ok := any(b).(bool)
		return ok && av == bv
	}
	ra, rb := reflect.ValueOf(any(a)), reflect.ValueOf(any(b))
	if ra.IsValid() != rb.IsValid() {
		return false
	}
	if ra.IsValid() && ra.Type() != rb.Type() {
		return false
	}
	if ra.IsValid() {
		switch ra.Kind() {
		case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
			return ra.Pointer() == rb.Pointer()
		}
	}
	return reflect.DeepEqual(any(a), any(b))
}
