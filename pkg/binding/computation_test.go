package binding

import (
	"errors"
	"testing"

	"github.com/kyu49/euonymus/pkg/dom"
	"github.com/kyu49/euonymus/pkg/ui"
)

func TestComputationTracksReads(t *testing.T) {
	a := NewCell(1)
	b := NewCell(10)
	useB := NewCell(true)

	var total int
	c := NewComputation(func() error {
		total = a.Get()
		if useB.Get() {
			total += b.Get()
		}
		return nil
	})
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if total != 11 || c.Sources() != 3 {
		t.Fatalf("total=%d sources=%d", total, c.Sources())
	}

	a.Set(2)
	if total != 12 {
		t.Errorf("total = %d, want 12", total)
	}

	useB.Set(false)
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if c.DependsOn(b) || b.Subscribers() != 0 {
		t.Error("b was not read in the last run and must be unsubscribed")
	}

	runs := c.Runs()
	b.Set(99)
	if c.Runs() != runs {
		t.Error("stale dependency triggered a re-run")
	}
}

func TestPeekDoesNotTrack(t *testing.T) {
	a := NewCell("x")
	c := NewComputation(func() error {
		_ = a.Peek()
		return nil
	})
	c.Run()
	if c.Sources() != 0 || a.Subscribers() != 0 {
		t.Error("Peek should not subscribe")
	}
}

func TestUntracked(t *testing.T) {
	a := NewCell("x")
	c := NewComputation(func() error {
		Untracked(func() { _ = a.Get() })
		return nil
	})
	c.Run()
	if c.Sources() != 0 {
		t.Error("Get inside Untracked should not subscribe")
	}
}

func TestComputationDispose(t *testing.T) {
	a := NewCell(0)
	c := NewComputation(func() error {
		_ = a.Get()
		return nil
	})
	c.Run()
	c.Dispose()
	if a.Subscribers() != 0 {
		t.Error("Dispose should unsubscribe")
	}
	a.Set(1)
	if c.Runs() != 1 {
		t.Errorf("disposed computation ran again: %d", c.Runs())
	}
}

func TestListenerErrorPropagates(t *testing.T) {
	a := NewCell(0)
	boom := errors.New("render failed")
	c := NewComputation(func() error {
		if a.Get() > 0 {
			return boom
		}
		return nil
	})
	c.Run()
	if err := a.Set(1); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if a.Get() != 1 {
		t.Errorf("value = %d, want 1", a.Get())
	}
}

func TestListenersRunAfterObservers(t *testing.T) {
	a := NewCell(0)
	var order []string
	c := NewComputation(func() error {
		a.Get()
		order = append(order, "listener")
		return nil
	})
	c.Run()
	a.Bind(recordingOrder(&order))
	order = nil

	a.Set(5)
	if len(order) != 2 || order[0] != "observer" || order[1] != "listener" {
		t.Errorf("order = %v", order)
	}
}

func recordingOrder(order *[]string) Observer[int] {
	return Custom[int](newTestTarget(), func(int, ui.Target) error {
		*order = append(*order, "observer")
		return nil
	}, nil, "")
}

func newTestTarget() ui.Target {
	return dom.NewDocument("").Create("div")
}
