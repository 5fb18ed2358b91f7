package demo

import (
	"fmt"
	"strings"

	"github.com/kyu49/euonymus/pkg/binding"
	"github.com/kyu49/euonymus/pkg/events"
)

// EventValueChanged is dispatched by Model.Submit with the submitted value
// and the resulting todo count.
const EventValueChanged = "VALUE_CHANGED"

// Todo is one list entry.
type Todo struct {
	ID    string
	Title string
	Done  bool
}

// Model holds the application state.
type Model struct {
	events.Dispatcher

	Query    *binding.Cell[string]
	Hide     *binding.Cell[bool]
	Disabled *binding.Cell[bool]
	Todos    *binding.Cell[[]Todo]
	Filter   *binding.Cell[string]
	Status   *binding.Cell[string]

	nextID int
}

// NewModel creates the model. Every cell is built with opts.
func NewModel(opts ...binding.CellOption) *Model {
	return &Model{
		Query:    binding.NewCell("", opts...),
		Hide:     binding.NewCell(false, opts...),
		Disabled: binding.NewCell(false, opts...),
		Todos:    binding.NewCell([]Todo(nil), opts...),
		Filter:   binding.NewCell("", opts...),
		Status:   binding.NewCell("", opts...),
	}
}

// Add appends a todo and returns it. Blank titles are ignored and yield a
// zero Todo.
func (m *Model) Add(title string) (Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Todo{}, nil
	}
	m.nextID++
	t := Todo{ID: fmt.Sprintf("t%d", m.nextID), Title: title}
	err := m.Todos.Update(func(list []Todo) []Todo {
		return append(append([]Todo(nil), list...), t)
	})
	if err != nil {
		return Todo{}, err
	}
	return t, nil
}

// Toggle flips the done state of the todo with id.
func (m *Model) Toggle(id string) error {
	return m.Todos.Update(func(list []Todo) []Todo {
		out := append([]Todo(nil), list...)
		for i := range out {
			if out[i].ID == id {
				out[i].Done = !out[i].Done
			}
		}
		return out
	})
}

// Remaining counts todos not done. It reads Todos, so it is tracked when
// called inside a computation.
func (m *Model) Remaining() int {
	n := 0
	for _, t := range m.Todos.Get() {
		if !t.Done {
			n++
		}
	}
	return n
}

// Submit adds value as a todo and dispatches EventValueChanged with the
// value and the new todo count.
func (m *Model) Submit(value string) error {
	if _, err := m.Add(value); err != nil {
		return err
	}
	return m.Dispatch(EventValueChanged, value, len(m.Todos.Peek()))
}
