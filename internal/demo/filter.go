package demo

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/kyu49/euonymus/pkg/template"
)

// todoSource adapts a todo list to fuzzy.Source.
type todoSource []Todo

func (s todoSource) Len() int            { return len(s) }
func (s todoSource) String(i int) string { return s[i].Title }

// listed is a todo as shown in the list: its title as escaped markup with
// the characters matching the filter wrapped in <mark>.
type listed struct {
	Todo
	Markup string
}

// filterTodos returns the todos matching pattern, best match first. An
// empty pattern keeps every todo in order.
func filterTodos(todos []Todo, pattern string) []listed {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		out := make([]listed, len(todos))
		for i, t := range todos {
			out[i] = listed{Todo: t, Markup: template.EscapeHTML(t.Title)}
		}
		return out
	}

	matches := fuzzy.FindFrom(pattern, todoSource(todos))
	out := make([]listed, len(matches))
	for i, m := range matches {
		out[i] = listed{Todo: todos[m.Index], Markup: highlight(m.Str, m.MatchedIndexes)}
	}
	return out
}

// highlight escapes s and marks the runes starting at the given byte
// offsets. Adjacent marked runes share one <mark>.
func highlight(s string, offsets []int) string {
	marked := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		marked[o] = true
	}

	var b strings.Builder
	open := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case marked[i] && !open:
			b.WriteString("<mark>")
			open = true
		case !marked[i] && open:
			b.WriteString("</mark>")
			open = false
		}
		b.WriteString(template.EscapeHTML(string(r)))
		i += size
	}
	if open {
		b.WriteString("</mark>")
	}
	return b.String()
}
