// Package instrument records what the binding and component engines do.
//
// Engines report through the Recorder interface. Nop discards everything
// and is the default; Prometheus exports counters and histograms through
// github.com/prometheus/client_golang.
package instrument
