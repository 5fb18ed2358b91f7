package instrument

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(WithRegistry(reg), WithNamespace("test"))

	p.Notification("text")
	p.Notification("text")
	p.Notification("checkbox")
	p.CallbackFailure("project")
	p.Overflow()
	p.Compose(PhaseInitial, 3*time.Millisecond)
	p.Children(2, 1, 0)

	if got := testutil.ToFloat64(p.notifications.WithLabelValues("text")); got != 2 {
		t.Errorf("text notifications = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.notifications.WithLabelValues("checkbox")); got != 1 {
		t.Errorf("checkbox notifications = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.overflows); got != 1 {
		t.Errorf("overflows = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.children.WithLabelValues("created")); got != 2 {
		t.Errorf("created = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(p.composeDuration); got != 1 {
		t.Errorf("compose series = %d, want 1", got)
	}
}

func TestOrNop(t *testing.T) {
	if _, ok := OrNop(nil).(Nop); !ok {
		t.Error("OrNop(nil) should return Nop")
	}
	p := NewPrometheus(WithRegistry(prometheus.NewRegistry()))
	if OrNop(p) != Recorder(p) {
		t.Error("OrNop should return the given recorder")
	}
}
