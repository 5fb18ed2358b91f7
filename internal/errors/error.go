package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/kyu49/euonymus/pkg/binding"
	"github.com/kyu49/euonymus/pkg/component"
)

// Category groups related error codes.
type Category string

const (
	CategoryBinding   Category = "binding"
	CategoryComponent Category = "component"
	CategoryConfig    Category = "config"
	CategoryPublish   Category = "publish"
	CategoryProtocol  Category = "protocol"
	CategoryCLI       Category = "cli"
)

// Location points at a line of an input file, typically a config file.
type Location struct {
	File string
	Line int
}

// String returns "file:line", or just the file when the line is unknown.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// Error is a structured error with a stable code.
type Error struct {
	// Code is a unique identifier such as "E001".
	Code     string
	Category Category
	// Message is a short description.
	Message string
	// Detail is a longer explanation.
	Detail string
	// Location is the input position the error refers to, if any.
	Location *Location
	// Context holds the lines surrounding Location.
	Context    []string
	Suggestion string
	Wrapped    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithLocation records the file position and reads the lines around it.
func (e *Error) WithLocation(file string, line int) *Error {
	e.Location = &Location{File: file, Line: line}
	if line > 0 {
		e.Context = readContextLines(file, line, 3)
	}
	return e
}

// WithSuggestion adds a fix hint.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap records the underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// readContextLines returns up to size lines centred on target.
func readContextLines(filename string, target, size int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	start := target - size/2
	end := target + size/2
	var lines []string
	scanner := bufio.NewScanner(file)
	for n := 1; scanner.Scan(); n++ {
		if n > end {
			break
		}
		if n >= start {
			lines = append(lines, scanner.Text())
		}
	}
	return lines
}

// New creates an Error from a registered code.
func New(code string) *Error {
	t, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{
		Code:     code,
		Category: t.Category,
		Message:  t.Message,
		Detail:   t.Detail,
	}
}

// Newf creates an uncoded Error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError converts err into an *Error. An *Error anywhere in the chain is
// returned as is; otherwise the code is chosen from the library sentinels
// err wraps, falling back to code.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	if c := Classify(err); c != "" {
		code = c
	}
	return New(code).Wrap(err)
}

// Classify returns the registered code for a library sentinel wrapped by
// err, or "" when none matches.
func Classify(err error) string {
	switch {
	case stderrors.Is(err, binding.ErrReentrantOverflow):
		return "E002"
	case stderrors.Is(err, binding.ErrTypeMismatch):
		return "E003"
	case stderrors.Is(err, binding.ErrCallbackFailed):
		return "E001"
	case stderrors.Is(err, component.ErrAlreadyRooted):
		return "E010"
	case stderrors.Is(err, component.ErrTagMismatch):
		return "E011"
	case stderrors.Is(err, component.ErrUnsupportedContent):
		return "E012"
	}
	return ""
}

// FromBinding describes a reactive failure, including which observer
// variant and phase failed.
func FromBinding(err error) *Error {
	e := FromError(err, "E001")
	var cb *binding.CallbackError
	if e != nil && stderrors.As(err, &cb) {
		e.Suggestion = fmt.Sprintf("check the %s callback of the %s observer", cb.Phase, cb.Kind)
	}
	return e
}
