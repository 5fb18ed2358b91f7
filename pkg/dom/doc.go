// Package dom is an in-memory document that implements the ui target
// interfaces on top of golang.org/x/net/html node trees.
//
// It keeps the interactive state a browser keeps outside the markup
// (input value, selection, checked) next to each node and reflects it into
// attributes so a rendered snapshot shows what the user would see. Every
// element has a document-unique id; RenderWithIDs emits it as a data-eid
// attribute so a remote client can route events back to the element.
//
// Hidden elements carry the "hidden" class; pages are expected to style it
// with display: none.
package dom
