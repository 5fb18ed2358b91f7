package binding

// Computation runs a function under dependency tracking and re-runs it
// whenever a cell it read changes.
//
// Each run first drops every subscription of the previous run, so a cell
// read in one run but not the next no longer triggers it.
type Computation struct {
	id       uint64
	fn       func() error
	sources  []Source
	disposed bool
	runs     int
}

var _ Listener = (*Computation)(nil)

// NewComputation creates a computation. It does not run until Run is called.
func NewComputation(fn func() error) *Computation {
	return &Computation{id: NextID(), fn: fn}
}

// ID implements Listener.
func (c *Computation) ID() uint64 { return c.id }

// MarkDirty implements Listener by re-running synchronously.
func (c *Computation) MarkDirty() error {
	return c.Run()
}

// Run executes the function, recording the cells it reads.
func (c *Computation) Run() error {
	if c.disposed {
		return nil
	}
	c.clearSources()
	c.runs++
	return WithListener(c, c.fn)
}

// Dispose unsubscribes from every source. A disposed computation never
// runs again.
func (c *Computation) Dispose() {
	c.disposed = true
	c.clearSources()
}

// Disposed reports whether Dispose was called.
func (c *Computation) Disposed() bool { return c.disposed }

// Runs returns how many times the function has executed.
func (c *Computation) Runs() int { return c.runs }

// Sources returns the number of cells read during the last run.
func (c *Computation) Sources() int { return len(c.sources) }

// DependsOn reports whether the last run read src.
func (c *Computation) DependsOn(src Source) bool {
	id := src.ID()
	for _, s := range c.sources {
		if s.ID() == id {
			return true
		}
	}
	return false
}

func (c *Computation) track(src Source) {
	if c.disposed {
		src.unsubscribe(c)
		return
	}
	c.sources = append(c.sources, src)
}

func (c *Computation) clearSources() {
	for _, s := range c.sources {
		s.unsubscribe(c)
	}
	c.sources = c.sources[:0]
}
