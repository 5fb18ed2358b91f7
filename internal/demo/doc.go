// Package demo is the sample todo application served by the euonymus CLI.
//
// It is split the classic way: the Model owns the cells, the Controller
// turns view intents into model calls, and the View binds elements to the
// model's cells and composes the component tree. App wires the three
// together under a document's body.
package demo
