package component

import (
	"log/slog"

	"github.com/kyu49/euonymus/pkg/instrument"
)

// ComponentOption configures a component and, through it, its children.
type ComponentOption func(*options)

type options struct {
	logger   *slog.Logger
	recorder instrument.Recorder
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ComponentOption {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r instrument.Recorder) ComponentOption {
	return func(o *options) {
		o.recorder = instrument.OrNop(r)
	}
}

func applyOptions(opts []ComponentOption) *options {
	o := &options{
		logger:   slog.Default().With("component", "euonymus"),
		recorder: instrument.Nop{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
