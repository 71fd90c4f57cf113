package evaluator

import (
	"sanskrit-lang/impl/internal/langerr"
)

// stdlib maps importable module names to their constructors. Every import
// builds a fresh module value.
var stdlib = map[string]func(ev *Evaluator) *Module{
	"गणित":   ganitaModule,
	"शब्द":   shabdaModule,
	"प्रवेश": praveshModule,
}

func (ev *Evaluator) importModule(name string) (*Module, error) {
	build, ok := stdlib[name]
	if !ok {
		return nil, langerr.NewImport(name)
	}
	ev.log.Debug("import", "module", name)
	return build(ev), nil
}

// Argument accessors shared by the library modules.

func numArg(fn string, args []Value, i int) (float64, error) {
	f, ok := toFloat(args[i])
	if !ok {
		return 0, argType(fn, i, "संख्या", args[i])
	}
	return f, nil
}

func intArg(fn string, args []Value, i int) (int64, error) {
	n, ok := args[i].(Int)
	if !ok {
		return 0, argType(fn, i, "पूर्ण संख्या", args[i])
	}
	return n.V, nil
}

func strArg(fn string, args []Value, i int) (string, error) {
	s, ok := args[i].(Str)
	if !ok {
		return "", argType(fn, i, "शब्द", args[i])
	}
	return s.V, nil
}
