// Package binding provides value cells with two-way synchronization to UI
// targets, and the dependency tracking the component engine builds on.
//
// A Cell holds one logical value. Observers pair a ui.Target with a
// projector (value to target), an extractor (target to value) and an
// optional trigger event. When the trigger fires, the extractor's result is
// written back into the cell, which then fans the value out to every
// observer in attachment order, including the one that triggered it.
//
//	query := binding.NewCell("")
//	query.Bind(binding.TextLike(input))   // input event -> cell -> input
//	hide := binding.NewCell(false)
//	hide.Bind(binding.Checkbox(toggle))
//	hide.Bind(binding.Invisible(input))   // checked hides the input
//
// # Initial synchronization
//
// Bind reconciles the cell and the target once. With OverrideWithState the
// target's current state wins and is pulled into the cell, which is what a
// page restored by the browser wants. Otherwise the cell's value is pushed
// into the target. The policy is read from the Config the cell was created
// with; it is never looked up from global state afterwards.
//
// # Dependency tracking
//
// Get records the cell in the execution-scoped tracking context. A
// Computation runs a function inside such a context and subscribes to
// exactly the cells it read, dropping the previous run's subscriptions
// first, and re-runs synchronously when one of them changes. Peek reads
// without tracking.
//
// # Threading
//
// Cells are not safe for concurrent use. All propagation is synchronous
// and depth-first; drive a tree of cells from one goroutine at a time.
// Nested updates are allowed up to Config.MaxDepth, beyond which Set fails
// with ErrReentrantOverflow.
package binding
