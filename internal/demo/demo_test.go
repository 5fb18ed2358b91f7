package demo

import (
	"strings"
	"testing"

	"github.com/kyu49/euonymus/internal/config"
	"github.com/kyu49/euonymus/pkg/dom"
	"github.com/kyu49/euonymus/pkg/ui"
)

func newApp(t *testing.T) *App {
	t.Helper()
	doc := dom.NewDocument("todo")
	a, err := New(doc, config.New(), nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func listItems(a *App) []*dom.Element {
	list := a.View.Root.Children()[2].Node()
	var out []*dom.Element
	for _, n := range list.Children() {
		out = append(out, n.(*dom.Element))
	}
	return out
}

func TestAppInitialPage(t *testing.T) {
	a := newApp(t)

	if got := len(listItems(a)); got != len(DefaultTodos) {
		t.Errorf("items = %d, want %d", got, len(DefaultTodos))
	}
	heading := a.View.Root.Children()[0].Node().(*dom.Element)
	if got := heading.InnerHTML(); got != "euonymus <small>3 left</small>" {
		t.Errorf("heading = %q", got)
	}
	filter := a.View.Root.Children()[1].Node()
	if filter.Disabled() {
		t.Error("filter should be enabled once todos exist")
	}
	page := a.Doc.String()
	if !strings.Contains(page, ".hidden{display:none}") {
		t.Error("stylesheet missing")
	}
}

func TestTypingAndSubmit(t *testing.T) {
	a := newApp(t)

	if err := a.View.Query.Type("Buy milk"); err != nil {
		t.Fatal(err)
	}
	if a.Model.Query.Get() != "Buy milk" {
		t.Fatalf("Query = %q", a.Model.Query.Get())
	}

	var events [][]any
	a.Model.On(EventValueChanged, func(args ...any) error {
		events = append(events, args)
		return nil
	})

	if err := a.View.Form.Dispatch(ui.EventSubmit); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0][0] != "Buy milk" || events[0][1] != 4 {
		t.Errorf("events = %v", events)
	}
	if a.View.Query.Value() != "" || a.Model.Query.Get() != "" {
		t.Error("query should be cleared after submit")
	}

	items := listItems(a)
	if len(items) != 4 || items[3].Text() != "Buy milk" {
		t.Fatalf("items = %d", len(items))
	}
	status := a.View.Root.Children()[3].Node().(*dom.Element)
	if status.Text() != `Added "Buy milk", 4 todos` {
		t.Errorf("status = %q", status.Text())
	}
	if _, ok := status.Style("display"); ok {
		t.Error("status should be visible once it has a message")
	}
}

func TestBlankSubmitAddsNothing(t *testing.T) {
	a := newApp(t)
	if err := a.View.Form.Dispatch(ui.EventSubmit); err != nil {
		t.Fatal(err)
	}
	if len(a.Model.Todos.Get()) != len(DefaultTodos) {
		t.Error("blank query added a todo")
	}
}

func TestHideCheckbox(t *testing.T) {
	a := newApp(t)
	status := a.View.Root.Children()[3].Node()

	if err := a.View.Hide.Toggle(); err != nil {
		t.Fatal(err)
	}
	if !a.Model.Hide.Get() {
		t.Fatal("Hide should follow the checkbox")
	}
	if !a.View.Query.Hidden() {
		t.Error("query input should be hidden")
	}
	if !a.View.Submit.Disabled() {
		t.Error("submit should be disabled")
	}
	if !status.HasClass("muted") {
		t.Error("status should be muted")
	}

	if err := a.Model.Hide.Set(false); err != nil {
		t.Fatal(err)
	}
	if a.View.Hide.Checked() || a.View.Query.Hidden() || a.View.Submit.Disabled() {
		t.Error("setting the cell should restore every bound element")
	}
}

func TestToggleTodoKeepsNodes(t *testing.T) {
	a := newApp(t)
	before := listItems(a)

	if err := before[1].Dispatch(ui.EventClick); err != nil {
		t.Fatal(err)
	}
	after := listItems(a)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("item %d was recreated", i)
		}
	}
	if !after[1].HasClass("done") || after[0].HasClass("done") {
		t.Error("only the clicked todo should be done")
	}
	heading := a.View.Root.Children()[0].Node().(*dom.Element)
	if !strings.Contains(heading.InnerHTML(), "2 left") {
		t.Errorf("heading = %q", heading.InnerHTML())
	}
}

func TestFilter(t *testing.T) {
	a := newApp(t)
	filter := a.View.Root.Children()[1].Node().(*dom.Element)

	if err := filter.Type("snap"); err != nil {
		t.Fatal(err)
	}
	items := listItems(a)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Text() != "Publish a snapshot" || !strings.Contains(items[0].InnerHTML(), "<mark>") {
		t.Errorf("item = %q", items[0].InnerHTML())
	}

	if err := filter.Type(""); err != nil {
		t.Fatal(err)
	}
	if len(listItems(a)) != len(DefaultTodos) {
		t.Error("clearing the filter should restore the list")
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		s       string
		offsets []int
		want    string
	}{
		{"abc", nil, "abc"},
		{"abc", []int{0, 2}, "<mark>a</mark>b<mark>c</mark>"},
		{"a<b", []int{1}, "a<mark>&lt;</mark>b"},
		{"héllo", []int{1, 3}, "h<mark>él</mark>lo"},
	}
	for _, tt := range tests {
		if got := highlight(tt.s, tt.offsets); got != tt.want {
			t.Errorf("highlight(%q, %v) = %q, want %q", tt.s, tt.offsets, got, tt.want)
		}
	}
}

func TestFilterTodosRanking(t *testing.T) {
	todos := []Todo{{ID: "a", Title: "write tests"}, {ID: "b", Title: "test"}, {ID: "c", Title: "deploy"}}
	got := filterTodos(todos, "test")
	if len(got) != 2 {
		t.Fatalf("matches = %d", len(got))
	}
	if got[0].ID != "b" {
		t.Errorf("best match = %s, want b", got[0].ID)
	}
}
