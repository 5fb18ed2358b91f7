package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusConfig configures the Prometheus recorder.
type PrometheusConfig struct {
	// Namespace is the metrics namespace (default: "euonymus").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for compose duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// PrometheusOption configures the Prometheus recorder.
type PrometheusOption func(*PrometheusConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.Registry = registry
	}
}

func defaultPrometheusConfig() PrometheusConfig {
	return PrometheusConfig{
		Namespace: "euonymus",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus is a Recorder backed by Prometheus collectors.
type Prometheus struct {
	notifications    *prometheus.CounterVec
	callbackFailures *prometheus.CounterVec
	overflows        prometheus.Counter
	composeDuration  *prometheus.HistogramVec
	children         *prometheus.CounterVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus registers the collectors and returns the recorder.
//
// Metrics collected:
//   - euonymus_notifications_total: projector invocations by observer kind
//   - euonymus_callback_failures_total: failed callbacks by phase
//   - euonymus_reentrant_overflows_total: updates rejected by the depth ceiling
//   - euonymus_compose_duration_seconds: composition passes by phase
//   - euonymus_children_total: reconciled children by outcome
func NewPrometheus(opts ...PrometheusOption) *Prometheus {
	config := defaultPrometheusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Prometheus{
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of projector invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		callbackFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "callback_failures_total",
			Help:        "Total number of failed binding callbacks",
			ConstLabels: config.ConstLabels,
		}, []string{"phase"}),

		overflows: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reentrant_overflows_total",
			Help:        "Total number of updates rejected by the reentrancy ceiling",
			ConstLabels: config.ConstLabels,
		}),

		composeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compose_duration_seconds",
			Help:        "Component composition duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"phase"}),

		children: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "children_total",
			Help:        "Total number of reconciled child components by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),
	}
}

// Notification implements Recorder.
func (p *Prometheus) Notification(kind string) {
	p.notifications.WithLabelValues(kind).Inc()
}

// CallbackFailure implements Recorder.
func (p *Prometheus) CallbackFailure(phase string) {
	p.callbackFailures.WithLabelValues(phase).Inc()
}

// Overflow implements Recorder.
func (p *Prometheus) Overflow() {
	p.overflows.Inc()
}

// Compose implements Recorder.
func (p *Prometheus) Compose(phase string, d time.Duration) {
	p.composeDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// Children implements Recorder.
func (p *Prometheus) Children(created, reused, destroyed int) {
	if created > 0 {
		p.children.WithLabelValues("created").Add(float64(created))
	}
	if reused > 0 {
		p.children.WithLabelValues("reused").Add(float64(reused))
	}
	if destroyed > 0 {
		p.children.WithLabelValues("destroyed").Add(float64(destroyed))
	}
}
