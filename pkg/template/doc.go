// Package template expands "${name}" placeholders against a view-model.
//
// The syntax is a small subset of JavaScript template literals:
//
//	Interpolate("Hello ${ name }", template.Map{"name": "Kyu"}) // "Hello Kyu"
//	Interpolate("$${literal}", nil)                             // "${literal}"
//
// The identifier between the braces is trimmed and looked up verbatim; no
// expressions are evaluated. A placeholder whose key is missing, or whose
// value is falsy (see Truthy), renders as the empty string. This is silent
// by design of the syntax, so a counter holding 0 renders as nothing;
// format such values before placing them in the view-model.
//
// # Trust boundary
//
// Interpolate performs no escaping. Its result is inserted into the
// document as markup, so view-model values reach the page as HTML. Use
// InterpolateEscaped whenever a value may carry untrusted text.
package template
