package evaluator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"sanskrit-lang/impl/internal/langerr"
	"sanskrit-lang/impl/internal/parser"
)

func newBuiltin(name string, fn func(ev *Evaluator, args []Value) (Value, error)) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

// want checks a built-in's argument count.
func want(name string, args []Value, n int) error {
	if len(args) != n {
		return langerr.NewRuntime("'%s' को %d तर्क चाहिए, %d मिले", name, n, len(args))
	}
	return nil
}

// wantRange accepts between lo and hi arguments inclusive.
func wantRange(name string, args []Value, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return langerr.NewRuntime("'%s' को %d से %d तर्क चाहिए, %d मिले", name, lo, hi, len(args))
	}
	return nil
}

func argType(name string, i int, expected string, got Value) error {
	return langerr.NewType("'%s' का तर्क %d %s होना चाहिए, %s मिला", name, i+1, expected, TypeName(got))
}

func (ev *Evaluator) printLine(args []Value) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Display(a)
	}
	fmt.Fprintln(ev.out, strings.Join(parts, " "))
}

func (ev *Evaluator) defineBuiltins() {
	env := ev.globals
	env.Define("मुद्रण", newBuiltin("मुद्रण", func(ev *Evaluator, args []Value) (Value, error) {
		ev.printLine(args)
		return Null{}, nil
	}))
	env.Define("प्रकार", newBuiltin("प्रकार", func(ev *Evaluator, args []Value) (Value, error) {
		if err := want("प्रकार", args, 1); err != nil {
			return nil, err
		}
		return Str{V: TypeName(args[0])}, nil
	}))
	env.Define("लम्बाई", newBuiltin("लम्बाई", length))
	env.Define("सुन्दर", newBuiltin("सुन्दर", func(ev *Evaluator, args []Value) (Value, error) {
		if err := want("सुन्दर", args, 1); err != nil {
			return nil, err
		}
		return Str{V: Display(args[0])}, nil
	}))
	env.Define("संख्या", newBuiltin("संख्या", func(ev *Evaluator, args []Value) (Value, error) {
		if err := want("संख्या", args, 1); err != nil {
			return nil, err
		}
		return toNumber(args[0])
	}))
}

func length(ev *Evaluator, args []Value) (Value, error) {
	if err := want("लम्बाई", args, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case Str:
		return Int{V: int64(utf8.RuneCountInString(x.V))}, nil
	case *List:
		return Int{V: int64(len(x.Items))}, nil
	}
	return nil, langerr.NewType("'%s' की लम्बाई नहीं होती", TypeName(args[0]))
}

func toNumber(v Value) (Value, error) {
	switch x := v.(type) {
	case Int:
		return Float{V: float64(x.V)}, nil
	case Float:
		return x, nil
	case Bool:
		if x.V {
			return Float{V: 1}, nil
		}
		return Float{V: 0}, nil
	case Str:
		n, ok := parser.ParseNumber(x.V)
		if !ok {
			return nil, langerr.NewValue("'%s' को संख्या में नहीं बदल सकते", x.V)
		}
		if i, ok := n.(int64); ok {
			return Int{V: i}, nil
		}
		return Float{V: n.(float64)}, nil
	}
	return nil, langerr.NewValue("%s को संख्या में नहीं बदल सकते", TypeName(v))
}
