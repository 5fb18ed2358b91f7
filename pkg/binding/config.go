package binding

import "github.com/kyu49/euonymus/pkg/instrument"

// DefaultMaxDepth is the default ceiling on nested fan-outs.
const DefaultMaxDepth = 64

// Config controls cell behavior. It is copied into each cell at
// construction.
type Config struct {
	// OverrideWithState makes Bind pull the target's state into the cell
	// instead of pushing the cell's value into the target.
	OverrideWithState bool

	// MaxDepth bounds how deeply Set may nest through projectors and
	// dependent listeners. Zero means DefaultMaxDepth.
	MaxDepth int

	// Recorder receives notification and failure events. Nil disables
	// recording.
	Recorder instrument.Recorder
}

// DefaultConfig returns the value-wins configuration.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// CellOption configures a cell at construction.
type CellOption func(*Config)

// WithConfig replaces the cell's whole configuration.
func WithConfig(cfg Config) CellOption {
	return func(c *Config) {
		*c = cfg
	}
}

// WithOverride sets the initial-synchronization policy.
func WithOverride(override bool) CellOption {
	return func(c *Config) {
		c.OverrideWithState = override
	}
}

// WithMaxDepth sets the reentrancy ceiling.
func WithMaxDepth(depth int) CellOption {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithRecorder sets the recorder.
func WithRecorder(r instrument.Recorder) CellOption {
	return func(c *Config) {
		c.Recorder = r
	}
}
