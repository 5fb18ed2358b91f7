// Package ui defines the target capability the binding and component
// engines drive.
//
// The engines never own a rendering surface. They read and write the
// interactive state of a Target, subscribe to its named interaction events,
// and attach or detach child Elements. Any surface that implements these
// interfaces can be driven: the in-memory DOM in package dom, a WebAssembly
// bridge to a real browser document, or a test double.
package ui
