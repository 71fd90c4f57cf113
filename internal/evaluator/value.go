package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"sanskrit-lang/impl/internal/parser"
	"sanskrit-lang/impl/internal/varna"
)

// Value system
type Value interface{ repr() string }

type (
	Int   struct{ V int64 }
	Float struct{ V float64 }
	Str   struct{ V string }
	Bool  struct{ V bool }
	Null  struct{}
)

// List is a mutable ordered sequence shared by reference.
type List struct{ Items []Value }

// Function is a user-defined closure over the environment it was defined in.
type Function struct {
	Name    string
	Params  []string
	Body    parser.Block
	Closure *Env
}

// Builtin is a host-implemented callable. It validates its own arguments.
type Builtin struct {
	Name string
	Fn   func(ev *Evaluator, args []Value) (Value, error)
}

type Class struct {
	Name    string
	Super   *Class
	Methods map[string]*Function
}

// Instance fields keep insertion order so instances print deterministically.
type Instance struct {
	Class  *Class
	Fields *linkedhashmap.Map
}

// BoundMethod is a method looked up through an instance; calling it binds
// the instance as स्व.
type BoundMethod struct {
	Self *Instance
	Fn   *Function
}

type Module struct {
	Name    string
	Members *linkedhashmap.Map
}

func (v Int) repr() string   { return strconv.FormatInt(v.V, 10) }
func (v Float) repr() string { return formatFloat(v.V) }
func (v Str) repr() string   { return strconv.Quote(v.V) }
func (v Bool) repr() string {
	if v.V {
		return "सत्य"
	}
	return "असत्य"
}
func (Null) repr() string { return "शून्य" }
func (l *List) repr() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, it := range l.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(it.repr())
	}
	b.WriteByte(']')
	return b.String()
}
func (f *Function) repr() string    { return "<कार्य " + f.Name + ">" }
func (b *Builtin) repr() string     { return "<अंतर्निहित कार्य " + b.Name + ">" }
func (c *Class) repr() string       { return "<वर्ग " + c.Name + ">" }
func (m *BoundMethod) repr() string { return "<कार्य " + m.Self.Class.Name + "." + m.Fn.Name + ">" }
func (m *Module) repr() string      { return "<मॉड्यूल " + m.Name + ">" }
func (o *Instance) repr() string {
	var b strings.Builder
	b.WriteString(o.Class.Name)
	b.WriteByte('(')
	it := o.Fields.Iterator()
	first := true
	for it.Next() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v=%s", it.Key(), it.Value().(Value).repr())
	}
	b.WriteByte(')')
	return b.String()
}

// formatFloat renders floats so that integral values keep a trailing ".0".
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "अनंत"
	case math.IsInf(f, -1):
		return "-अनंत"
	case math.IsNaN(f):
		return "अपरिभाषित"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Format produces the canonical printed representation for a value
func Format(v Value) string { return v.repr() }

// Display produces the textual form used by printing and string
// concatenation: strings appear without quotes.
func Display(v Value) string {
	if s, ok := v.(Str); ok {
		return s.V
	}
	return v.repr()
}

// TypeName is the runtime type name reported by प्रकार.
func TypeName(v Value) string {
	switch v.(type) {
	case Int:
		return "पूर्ण_संख्या"
	case Float:
		return "दशमलव_संख्या"
	case Str:
		return "शब्द"
	case Bool:
		return "सत्य_असत्य"
	case Null:
		return "शून्य"
	case *List:
		return "सूची"
	case *Function, *Builtin, *BoundMethod:
		return "कार्य"
	case *Class:
		return "वर्ग"
	case *Instance:
		return "वस्तु"
	case *Module:
		return "मॉड्यूल"
	}
	return "अज्ञात"
}

// VarnaOf classifies a value for the type-advisory module.
func VarnaOf(v Value) varna.Varna {
	switch v.(type) {
	case Int, Float:
		return varna.Sankhya
	case Str:
		return varna.Shabda
	case Bool:
		return varna.SatyaAsatya
	case *List:
		return varna.Samuha
	case *Function, *Builtin, *BoundMethod:
		return varna.Kaarya
	case *Class, *Instance, *Module:
		return varna.Varga
	}
	return varna.Shunya
}

// isTruthy: null is false, a boolean is itself, everything else is true.
func isTruthy(v Value) bool {
	switch x := v.(type) {
	case Null:
		return false
	case Bool:
		return x.V
	}
	return true
}

func toFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x.V), true
	case Float:
		return x.V, true
	}
	return 0, false
}

func equal(a, b Value) bool {
	if x, ok := a.(Int); ok {
		if y, ok := b.(Int); ok {
			return x.V == y.V
		}
	}
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	if x, ok := a.(*List); ok {
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

// compare orders numbers and strings; any other pairing is a type error.
func compare(op string, a, b Value) (int, error) {
	if x, ok := a.(Int); ok {
		if y, ok := b.(Int); ok {
			return cmpOrdered(x.V, y.V), nil
		}
	}
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmpOrdered(x, y), nil
		}
	}
	if x, ok := a.(Str); ok {
		if y, ok := b.(Str); ok {
			return strings.Compare(x.V, y.V), nil
		}
	}
	return 0, unsupported(op, a, b)
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func newInstance(c *Class) *Instance {
	return &Instance{Class: c, Fields: linkedhashmap.New()}
}

// findMethod walks the superclass chain.
func (c *Class) findMethod(name string) *Function {
	for k := c; k != nil; k = k.Super {
		if m, ok := k.Methods[name]; ok {
			return m
		}
	}
	return nil
}

func newModule(name string, members ...*Builtin) *Module {
	m := &Module{Name: name, Members: linkedhashmap.New()}
	for _, b := range members {
		m.Members.Put(b.Name, b)
	}
	return m
}

func (m *Module) set(name string, v Value) { m.Members.Put(name, v) }
