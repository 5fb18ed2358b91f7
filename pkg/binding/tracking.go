package binding

import (
	"runtime"
	"sync"
)

// trackingContext is the execution-scoped state of one goroutine.
type trackingContext struct {
	// listener is what is currently recording dependencies.
	// nil means reads do not create subscriptions.
	listener Listener

	// depth counts nested fan-outs on this goroutine.
	depth int
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID parses the current goroutine's id from its stack header,
// which starts with "goroutine <id> ".
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := getGoroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// releaseIfIdle drops the goroutine's context once nothing is in flight,
// so short-lived goroutines do not leak entries.
func releaseIfIdle(ctx *trackingContext) {
	if ctx.listener == nil && ctx.depth == 0 {
		trackingContexts.Delete(getGoroutineID())
	}
}

func currentListener() Listener {
	if ctx, ok := trackingContexts.Load(getGoroutineID()); ok {
		return ctx.(*trackingContext).listener
	}
	return nil
}

// WithListener runs fn with l recording dependencies. Cells read through
// Get inside fn subscribe l.
func WithListener(l Listener, fn func() error) error {
	ctx := getTrackingContext()
	old := ctx.listener
	ctx.listener = l
	defer func() {
		ctx.listener = old
		releaseIfIdle(ctx)
	}()
	return fn()
}

// Untracked runs fn without dependency recording, so Get behaves like Peek.
func Untracked(fn func()) {
	ctx := getTrackingContext()
	old := ctx.listener
	ctx.listener = nil
	defer func() {
		ctx.listener = old
		releaseIfIdle(ctx)
	}()
	fn()
}

// enter increments the fan-out depth, failing past limit.
func enter(limit int) (*trackingContext, bool) {
	ctx := getTrackingContext()
	if ctx.depth >= limit {
		return ctx, false
	}
	ctx.depth++
	return ctx, true
}

func leave(ctx *trackingContext) {
	ctx.depth--
	releaseIfIdle(ctx)
}

// Depth returns the current fan-out nesting depth of the calling goroutine.
func Depth() int {
	if ctx, ok := trackingContexts.Load(getGoroutineID()); ok {
		return ctx.(*trackingContext).depth
	}
	return 0
}
