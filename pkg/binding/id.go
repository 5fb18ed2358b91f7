package binding

import "sync/atomic"

var globalIDCounter uint64

// NextID returns a process-unique identifier for cells, computations and
// other listeners. IDs are never reused.
func NextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
