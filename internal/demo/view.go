package demo

import (
	"fmt"

	"github.com/kyu49/euonymus/pkg/binding"
	"github.com/kyu49/euonymus/pkg/component"
	"github.com/kyu49/euonymus/pkg/dom"
	"github.com/kyu49/euonymus/pkg/ui"
)

// View owns the page's elements and bindings.
type View struct {
	model      *Model
	controller *Controller

	// Form holds the query input, the hide checkbox and the submit button.
	Form   *dom.Element
	Query  *dom.Element
	Hide   *dom.Element
	Submit *dom.Element

	// Root is the component tree: heading, filter, list and status line.
	Root *component.Component

	// disabled derives Model.Disabled from the todo list.
	disabled *binding.Computation
}

// NewView builds the page under parent and binds it to model.
func NewView(doc *dom.Document, parent ui.Element, title string, model *Model, controller *Controller, opts ...component.ComponentOption) (*View, error) {
	v := &View{model: model, controller: controller}
	v.buildForm(doc)
	parent.AppendChild(v.Form)

	if err := v.bindForm(); err != nil {
		return nil, err
	}

	model.On(EventValueChanged, func(args ...any) error {
		return model.Status.Set(fmt.Sprintf("Added %q, %v todos", args[0], args[1]))
	})

	root, err := component.Mount(doc, v.tree(title), parent, opts...)
	if err != nil {
		return nil, err
	}
	v.Root = root

	filter := root.Children()[1].Node()
	if err := model.Filter.Bind(binding.TextLike(filter)); err != nil {
		return nil, err
	}
	if err := model.Disabled.Bind(binding.Disabled[bool](filter)); err != nil {
		return nil, err
	}

	v.disabled = binding.NewComputation(func() error {
		return model.Disabled.Set(len(model.Todos.Get()) == 0)
	})
	if err := v.disabled.Run(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *View) buildForm(doc *dom.Document) {
	v.Form = doc.Create("form")
	v.Form.SetAttribute("name", "todo")

	v.Query = doc.Create("input")
	v.Query.SetAttribute("type", "text")
	v.Query.SetAttribute("name", "query")
	v.Query.SetAttribute("placeholder", "What needs doing?")

	label := doc.Create("label")
	v.Hide = doc.Create("input")
	v.Hide.SetAttribute("type", "checkbox")
	v.Hide.SetAttribute("name", "hide")
	label.AppendChild(v.Hide)
	text := doc.Create("span")
	text.SetInnerHTML("Hide input")
	label.AppendChild(text)

	v.Submit = doc.Create("button")
	v.Submit.SetAttribute("type", "submit")
	v.Submit.SetInnerHTML("Add")

	v.Form.AppendChild(v.Query)
	v.Form.AppendChild(label)
	v.Form.AppendChild(v.Submit)

	v.Form.AddEventListener(ui.EventSubmit, func(ui.Event) error {
		return v.controller.Submit()
	})
}

// bindForm wires the form the way the page has always behaved: the query
// text follows Query, and the checkbox hides the input and disables the
// submit button.
func (v *View) bindForm() error {
	m := v.model
	bindings := []func() error{
		func() error { return m.Query.Bind(binding.TextLike(v.Query)) },
		func() error { return m.Hide.Bind(binding.Checkbox(v.Hide)) },
		func() error { return m.Hide.Bind(binding.Invisible[bool](v.Query)) },
		func() error { return m.Hide.Bind(binding.Disabled[bool](v.Submit)) },
	}
	for _, bind := range bindings {
		if err := bind(); err != nil {
			return err
		}
	}
	return nil
}

func (v *View) tree(title string) component.Descriptor {
	m := v.model
	el := component.El

	return el("section",
		component.Class("todo-app"),
		component.Children(
			el("h1",
				component.VM(component.ViewModel{
					"title":     title,
					"remaining": func() any { return m.Remaining() },
				}),
				component.EscapedText("${title} <small>${remaining} left</small>"),
			),
			el("input",
				component.Key("filter"),
				component.Attrs(map[string]any{
					"type":        "search",
					"placeholder": "Filter todos",
				}),
			),
			el("ul",
				component.Key("list"),
				component.Class("todos"),
				component.Dynamic(func(component.ViewModel) []component.Descriptor {
					return v.items()
				}),
			),
			el("p",
				component.Key("status"),
				component.VM(component.ViewModel{"message": m.Status}),
				component.EscapedText("${message}"),
				component.Class("status", component.ClassIf("muted", m.Hide)),
				component.StyleProp("display", func() any {
					if m.Status.Get() == "" {
						return "none"
					}
					return nil
				}),
			),
		),
	)
}

// items renders the filtered todo list. Reading Todos and Filter here makes
// the list re-render when either changes.
func (v *View) items() []component.Descriptor {
	shown := filterTodos(v.model.Todos.Get(), v.model.Filter.Get())
	out := make([]component.Descriptor, 0, len(shown))
	for _, t := range shown {
		id := t.ID
		out = append(out, component.El("li",
			component.Key(id),
			component.VM(component.ViewModel{"title": t.Markup}),
			component.Text("${title}"),
			component.Class("todo", component.ClassIf("done", t.Done)),
			component.Attr("data-todo", id),
			component.On(ui.EventClick, func(ui.Event) error {
				return v.controller.Toggle(id)
			}),
		))
	}
	return out
}

// Dispose stops the view's derived state.
func (v *View) Dispose() {
	v.disabled.Dispose()
	v.Root.Dispose()
}
