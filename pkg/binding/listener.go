package binding

// Listener is notified when a cell it read changes. Components and
// computations implement it.
type Listener interface {
	// ID returns a unique identifier used to deduplicate subscriptions.
	ID() uint64

	// MarkDirty is called synchronously during the cell's fan-out. A
	// returned error aborts the fan-out and propagates to the caller of Set.
	MarkDirty() error
}

// Source is a value a Listener can depend on.
type Source interface {
	ID() uint64
	unsubscribe(l Listener)
}

// Reader is a type-erased, tracked view of a cell. The component engine
// uses it to read cells referenced from view-models and expressions.
type Reader interface {
	Source

	// Any returns the current value and records the read in the tracking
	// context, exactly like Get.
	Any() any
}

// dependent is implemented by listeners that want to know their sources.
type dependent interface {
	Listener
	track(src Source)
}

// subscribers is an ordered, deduplicated listener list.
type subscribers struct {
	list []Listener
}

func (s *subscribers) add(l Listener) bool {
	id := l.ID()
	for _, existing := range s.list {
		if existing.ID() == id {
			return false
		}
	}
	s.list = append(s.list, l)
	return true
}

// remove deletes l keeping the order of the others.
func (s *subscribers) remove(l Listener) {
	id := l.ID()
	for i, existing := range s.list {
		if existing.ID() == id {
			s.list = append(s.list[:i:i], s.list[i+1:]...)
			return
		}
	}
}

func (s *subscribers) snapshot() []Listener {
	if len(s.list) == 0 {
		return nil
	}
	out := make([]Listener, len(s.list))
	copy(out, s.list)
	return out
}
