package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kyu49/euonymus/pkg/binding"
	"github.com/kyu49/euonymus/pkg/component"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"binding error", "E002", "Re-entrant update limit exceeded", CategoryBinding},
		{"component error", "E010", "Component already has a parent", CategoryComponent},
		{"config error", "E023", "Unsupported config format", CategoryConfig},
		{"unknown code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	if got := New("E020").Error(); got != "E020: Config file not readable" {
		t.Errorf("Error() = %q", got)
	}
	cause := stderrors.New("no such file")
	if got := New("E020").Wrap(cause).Error(); got != "E020: Config file not readable: no such file" {
		t.Errorf("Error() = %q", got)
	}
	if got := Newf(CategoryCLI, "port %d in use", 80).Error(); got != "port 80 in use" {
		t.Errorf("Error() = %q", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("set: %w", binding.ErrReentrantOverflow), "E002"},
		{&binding.CallbackError{Phase: binding.PhaseProject, Err: stderrors.New("x")}, "E001"},
		{fmt.Errorf("compose <p>: %w", component.ErrTagMismatch), "E011"},
		{component.ErrAlreadyRooted, "E010"},
		{stderrors.New("plain"), ""},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("nil error should stay nil")
	}

	coded := New("E031")
	if got := FromError(fmt.Errorf("publish: %w", coded), "E030"); got != coded {
		t.Error("an *Error in the chain should be returned as is")
	}

	plain := stderrors.New("disk full")
	e := FromError(plain, "E051")
	if e.Code != "E051" || !stderrors.Is(e, plain) {
		t.Errorf("got %v", e)
	}

	e = FromError(fmt.Errorf("compose: %w", component.ErrUnsupportedContent), "E050")
	if e.Code != "E012" {
		t.Errorf("Code = %q, want sentinel code E012", e.Code)
	}
}

func TestFromBinding(t *testing.T) {
	err := &binding.CallbackError{
		Phase: binding.PhaseExtract,
		Kind:  binding.KindCheckbox,
		Event: "change",
		Err:   stderrors.New("bad"),
	}
	e := FromBinding(fmt.Errorf("set: %w", err))
	if e.Code != "E001" {
		t.Errorf("Code = %q", e.Code)
	}
	if e.Suggestion != "check the extract callback of the checkbox observer" {
		t.Errorf("Suggestion = %q", e.Suggestion)
	}
	if !stderrors.Is(e, binding.ErrCallbackFailed) {
		t.Error("wrapped chain lost")
	}
}

func TestWithLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "euonymus.toml")
	content := "name = \"demo\"\n\n[server]\nport = 0\nhost = \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New("E022").WithLocation(path, 4)
	if e.Location.String() != path+":4" {
		t.Errorf("Location = %q", e.Location.String())
	}
	want := []string{"[server]", "port = 0", "host = \"\""}
	if strings.Join(e.Context, "|") != strings.Join(want, "|") {
		t.Errorf("Context = %q, want %q", e.Context, want)
	}

	missing := New("E022").WithLocation(filepath.Join(dir, "nope.toml"), 3)
	if missing.Context != nil {
		t.Error("missing file should yield no context")
	}
}

func TestLocationString(t *testing.T) {
	var nilLoc *Location
	if nilLoc.String() != "" {
		t.Error("nil location should be empty")
	}
	if (&Location{File: "a.yaml"}).String() != "a.yaml" {
		t.Error("location without a line should be the file")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	e := New("E011").
		WithSuggestion("create a new component").
		Wrap(stderrors.New("<p> to <div>"))
	out := e.Format()

	for _, want := range []string{
		"ERROR E011: Component tag cannot change",
		"A component was updated",
		"Cause: <p> to <div>",
		"Hint: create a new component",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors should be disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	e := New("E021")
	e.Location = &Location{File: "cfg.yaml", Line: 7}
	if got := e.FormatCompact(); got != "cfg.yaml:7: E021: Config file could not be parsed" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	e := New("E041").Wrap(stderrors.New(`id "e9"`))
	var got map[string]any
	if err := json.Unmarshal([]byte(e.FormatJSON()), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["code"] != "E041" || got["category"] != "protocol" || got["cause"] != `id "e9"` {
		t.Errorf("got %v", got)
	}
	if _, ok := got["file"]; ok {
		t.Error("file should be omitted without a location")
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template", code)
		}
	}

	Register("E099", ErrorTemplate{Category: CategoryCLI, Message: "Custom"})
	defer delete(registry, "E099")
	if New("E099").Message != "Custom" {
		t.Error("registered template not used")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 9)
	want := []string{"one two", "three", "four five", "six"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("wrapText = %q, want %q", lines, want)
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
}

func TestFprintPlainError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	Fprint(&b, stderrors.New("boom"))
	if !strings.Contains(b.String(), "ERROR: boom") {
		t.Errorf("got %q", b.String())
	}
}
