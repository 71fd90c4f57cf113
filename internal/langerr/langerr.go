// Package langerr defines the error taxonomy shared by the parser and the evaluator.
//
// Every error renders as "<category>: <message>", prefixed by "पंक्ति L, स्तम्भ C: "
// when its source position is known.
package langerr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	Syntax Kind = iota
	Runtime
	Type
	Name
	Attribute
	Index
	Key
	Value
	ZeroDivision
	Import
)

var categories = [...]string{
	Syntax:       "व्याकरण त्रुटि",
	Runtime:      "रनटाइम त्रुटि",
	Type:         "प्रकार त्रुटि",
	Name:         "नाम त्रुटि",
	Attribute:    "गुण त्रुटि",
	Index:        "सूचकांक त्रुटि",
	Key:          "कुंजी त्रुटि",
	Value:        "मान त्रुटि",
	ZeroDivision: "गणित त्रुटि",
	Import:       "आयात त्रुटि",
}

// Category returns the user-facing category label of k.
func (k Kind) Category() string {
	if int(k) < 0 || int(k) >= len(categories) {
		return "अज्ञात त्रुटि"
	}
	return categories[k]
}

// Error is a language-level error. Line and Col are 1-based; zero means unknown.
type Error struct {
	Kind Kind
	Msg  string
	Line int
	Col  int
}

func (e *Error) Error() string {
	s := e.Kind.Category() + ": " + e.Msg
	if e.Line > 0 {
		return fmt.Sprintf("पंक्ति %d, स्तम्भ %d: %s", e.Line, e.Col, s)
	}
	return s
}

// HasPos reports whether the error carries a source position.
func (e *Error) HasPos() bool { return e.Line > 0 }

// At sets the position if none is recorded yet and returns e.
func (e *Error) At(line, col int) *Error {
	if e.Line == 0 {
		e.Line, e.Col = line, col
	}
	return e
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NewSyntax(line, col int, format string, args ...any) *Error {
	return &Error{Kind: Syntax, Msg: fmt.Sprintf(format, args...), Line: line, Col: col}
}

func NewRuntime(format string, args ...any) *Error { return New(Runtime, format, args...) }

func NewType(format string, args ...any) *Error { return New(Type, format, args...) }

func NewValue(format string, args ...any) *Error { return New(Value, format, args...) }

func NewName(name string) *Error {
	return &Error{Kind: Name, Msg: fmt.Sprintf("'%s' परिभाषित नहीं है", name)}
}

func NewAttribute(typeName, attr string) *Error {
	return &Error{Kind: Attribute, Msg: fmt.Sprintf("'%s' में '%s' गुण नहीं है", typeName, attr)}
}

func NewIndex(index, size int) *Error {
	return &Error{Kind: Index, Msg: fmt.Sprintf("सूचकांक %d सीमा से बाहर (आकार: %d)", index, size)}
}

func NewKey(key string) *Error {
	return &Error{Kind: Key, Msg: fmt.Sprintf("कुंजी '%s' नहीं मिली", key)}
}

func NewZeroDivision() *Error {
	return &Error{Kind: ZeroDivision, Msg: "शून्य से भाग संभव नहीं"}
}

func NewImport(module string) *Error {
	return &Error{Kind: Import, Msg: fmt.Sprintf("मॉड्यूल '%s' नहीं मिला", module)}
}

// KindOf reports the Kind of err if it wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return 0, false
}

// Snippet renders err followed by a numbered excerpt of src with a caret under
// the offending column. Errors without a position render as err.Error() alone.
func Snippet(src string, err error) string {
	var le *Error
	if !errors.As(err, &le) || !le.HasPos() {
		return err.Error()
	}
	lines := strings.Split(src, "\n")
	line := min(max(le.Line, 1), len(lines))
	col := max(le.Col, 1)

	var b strings.Builder
	b.WriteString(le.Error())
	b.WriteString("\n\n")
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
