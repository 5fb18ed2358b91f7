package template

import (
	"math"
	"testing"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		vm   Map
		want string
	}{
		{"simple", "Hello ${name}", Map{"name": "Kyu"}, "Hello Kyu"},
		{"trimmed key", "Hello ${  name }!", Map{"name": "Kyu"}, "Hello Kyu!"},
		{"escaped", "$${literal}", Map{}, "${literal}"},
		{"escaped keeps rest literal", "a $${x} b ${x}", Map{"x": "1"}, "a ${x} b 1"},
		{"triple dollar", "$$${x}", Map{"x": "1"}, "$${x}"},
		{"missing", "${missing}", Map{}, ""},
		{"nil vm", "a${x}b", nil, "ab"},
		{"zero renders empty", "n=${n}", Map{"n": 0}, "n="},
		{"false renders empty", "${b}", Map{"b": false}, ""},
		{"true", "${b}", Map{"b": true}, "true"},
		{"number", "${n}px", Map{"n": 12}, "12px"},
		{"float", "${f}", Map{"f": 1.5}, "1.5"},
		{"unclosed", "a ${b", Map{"b": "x"}, "a ${b"},
		{"newline in key", "${a\nb}", Map{"a\nb": "x", "a": "y"}, "${a\nb}"},
		{"newline then placeholder", "${a\n} ${c}", Map{"c": "z"}, "${a\n} z"},
		{"empty braces", "a${}b", Map{"": "x"}, "axb"},
		{"no placeholders", "plain text", nil, "plain text"},
		{"lone dollar", "$5 ${p}", Map{"p": "x"}, "$5 x"},
		{"adjacent", "${a}${b}", Map{"a": "1", "b": "2"}, "12"},
		{"markup is raw", "<b>${v}</b>", Map{"v": "<i>x</i>"}, "<b><i>x</i></b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vm Resolver
			if tt.vm != nil {
				vm = tt.vm
			}
			if got := Interpolate(tt.tmpl, vm); got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestInterpolateEscaped(t *testing.T) {
	got := InterpolateEscaped("<b>${v}</b>", Map{"v": `<script>alert("x")</script>`})
	want := "<b>&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;</b>"
	if got != want {
		t.Errorf("InterpolateEscaped = %q, want %q", got, want)
	}
}

func TestKeys(t *testing.T) {
	got := Keys("${ a } $${b} ${c}")
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Keys = %v, want [a c]", got)
	}
}

type myInt int

func TestTruthy(t *testing.T) {
	var nilPtr *int
	var nilSlice []int
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero int", 0, false},
		{"int", 3, true},
		{"zero uint8", uint8(0), false},
		{"custom zero", myInt(0), false},
		{"custom", myInt(2), true},
		{"zero float", 0.0, false},
		{"negative zero", math.Copysign(0, -1), false},
		{"NaN", math.NaN(), false},
		{"float32", float32(0.5), true},
		{"empty string", "", false},
		{"string", "0", true},
		{"nil pointer", nilPtr, false},
		{"nil slice", nilSlice, false},
		{"empty slice", []int{}, true},
		{"struct", struct{}{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Hello, World!", "Hello, World!"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"it's", "it&#39;s"},
		{"Hello 世界", "Hello 世界"},
	}
	for _, tt := range tests {
		if got := EscapeHTML(tt.input); got != tt.expected {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	if got := EscapeAttr("a\"b\nc"); got != "a&quot;b&#10;c" {
		t.Errorf("EscapeAttr = %q", got)
	}
}
