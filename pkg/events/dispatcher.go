// Package events provides a small typed-name event dispatcher used to wire
// models and controllers together.
package events

import (
	"fmt"
	"sync"
)

// Handler receives the arguments passed to Dispatch.
type Handler func(args ...any) error

type entry struct {
	id uint64
	fn Handler
}

// Dispatcher delivers named events to registered handlers in registration
// order. It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]entry
}

// On registers h for typ and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (d *Dispatcher) On(typ string, h Handler) (off func()) {
	if h == nil {
		return func() {}
	}
	d.mu.Lock()
	if d.handlers == nil {
		d.handlers = make(map[string][]entry)
	}
	d.nextID++
	id := d.nextID
	d.handlers[typ] = append(d.handlers[typ], entry{id: id, fn: h})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(typ, id) })
	}
}

func (d *Dispatcher) remove(typ string, id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.handlers[typ]
	for i, e := range list {
		if e.id == id {
			kept := make([]entry, 0, len(list)-1)
			kept = append(kept, list[:i]...)
			kept = append(kept, list[i+1:]...)
			if len(kept) == 0 {
				delete(d.handlers, typ)
			} else {
				d.handlers[typ] = kept
			}
			return
		}
	}
}

// Off removes every handler registered for typ.
func (d *Dispatcher) Off(typ string) {
	d.mu.Lock()
	delete(d.handlers, typ)
	d.mu.Unlock()
}

// Clear removes all handlers.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	d.handlers = nil
	d.mu.Unlock()
}

// Count returns the number of handlers registered for typ.
func (d *Dispatcher) Count(typ string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[typ])
}

// Dispatch calls the handlers registered for typ with args. Handlers added
// or removed during delivery take effect on the next Dispatch. The first
// handler error stops delivery.
func (d *Dispatcher) Dispatch(typ string, args ...any) error {
	d.mu.RLock()
	list := d.handlers[typ]
	d.mu.RUnlock()

	for _, e := range list {
		if err := e.fn(args...); err != nil {
			return fmt.Errorf("event %s: %w", typ, err)
		}
	}
	return nil
}
