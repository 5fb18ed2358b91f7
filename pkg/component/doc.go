// Package component turns declarative descriptors into live ui elements
// and keeps them in sync with the cells they read.
//
// A Descriptor names a tag, a view-model, content (a template string, a
// static list of child descriptors, or a function producing one) and
// style, class, attribute and event declarations:
//
//	todo := component.El("li",
//	    component.Key(item.ID),
//	    component.VM(component.ViewModel{"title": item.Title, "done": doneCell}),
//	    component.Text("${title}"),
//	    component.Class("todo", "${done}"),
//	    component.Attr("aria-checked", doneCell),
//	)
//
// # Dependency tracking
//
// Content and every single style, class and attribute declaration is
// evaluated inside its own binding.Computation. Whatever cells the
// evaluation reads, through the view-model or directly, become that
// declaration's dependencies, and a change re-applies only the
// declarations that read the changed cell. Cells no longer read by the
// latest evaluation are unsubscribed.
//
// # Reconciliation
//
// The first Compose builds every child. Later passes reconcile: a
// descriptor with a Key matches the existing child with the same key and
// tag wherever it sits; an unkeyed descriptor matches the existing child at
// the same position if that child is unkeyed and has the same tag. Matched
// children are updated in place and keep their element; unmatched ones are
// disposed and replaced by freshly composed children. Siblings that match
// are never recreated.
//
// # Trust boundary
//
// Template content is inserted as raw markup; view-model values are not
// escaped. Use EscapedText for values that may carry untrusted input.
package component
