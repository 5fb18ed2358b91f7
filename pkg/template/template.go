package template

import "strings"

// Resolver looks up view-model values by name.
type Resolver interface {
	Resolve(key string) (any, bool)
}

// Map is a plain Resolver.
type Map map[string]any

// Resolve implements Resolver.
func (m Map) Resolve(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Interpolate expands every placeholder in tmpl with the raw string form of
// the matching view-model value. It never panics; a nil vm resolves nothing.
func Interpolate(tmpl string, vm Resolver) string {
	return expand(tmpl, vm, nil)
}

// InterpolateEscaped is Interpolate with each substituted value HTML-escaped.
// Literal template text is left untouched.
func InterpolateEscaped(tmpl string, vm Resolver) string {
	return expand(tmpl, vm, EscapeHTML)
}

// Keys returns the trimmed placeholder names of tmpl in order of appearance,
// skipping escaped sequences.
func Keys(tmpl string) []string {
	var keys []string
	scan(tmpl, func(lit string) {}, func(key string) { keys = append(keys, key) })
	return keys
}

func expand(tmpl string, vm Resolver, escape func(string) string) string {
	if !strings.Contains(tmpl, "${") {
		return tmpl
	}
	var b strings.Builder
	b.Grow(len(tmpl))
	scan(tmpl,
		func(lit string) { b.WriteString(lit) },
		func(key string) {
			s := lookup(vm, key)
			if escape != nil {
				s = escape(s)
			}
			b.WriteString(s)
		})
	return b.String()
}

// scan walks tmpl left to right, reporting literal runs and placeholder keys.
//
// "$${" is the escape for a literal "${" and consumes both dollars. A "${"
// with no closing brace on the same line is literal text.
func scan(tmpl string, literal func(string), placeholder func(string)) {
	start := 0
	i := 0
	for i < len(tmpl) {
		if strings.HasPrefix(tmpl[i:], "$${") {
			literal(tmpl[start:i])
			literal("${")
			i += 3
			start = i
			continue
		}
		if strings.HasPrefix(tmpl[i:], "${") {
			end := strings.IndexByte(tmpl[i+2:], '}')
			if end < 0 {
				break
			}
			if strings.IndexByte(tmpl[i+2:i+2+end], '\n') >= 0 {
				i++
				continue
			}
			literal(tmpl[start:i])
			placeholder(strings.TrimSpace(tmpl[i+2 : i+2+end]))
			i += 2 + end + 1
			start = i
			continue
		}
		i++
	}
	if start < len(tmpl) {
		literal(tmpl[start:])
	}
}

func lookup(vm Resolver, key string) string {
	if vm == nil {
		return ""
	}
	v, ok := vm.Resolve(key)
	if !ok || !Truthy(v) {
		return ""
	}
	return Stringify(v)
}
