package evaluator

import (
	"math"
	"strings"

	"sanskrit-lang/impl/internal/langerr"
)

func unsupported(op string, a, b Value) *langerr.Error {
	return langerr.NewType("'%s' के लिए असमर्थित प्रकार: %s और %s", op, TypeName(a), TypeName(b))
}

// Operations
func (ev *Evaluator) add(a, b Value) (Value, error) {
	_, as := a.(Str)
	_, bs := b.(Str)
	if as || bs {
		return Str{V: Display(a) + Display(b)}, nil
	}
	if x, ok := a.(*List); ok {
		if y, ok := b.(*List); ok {
			out := make([]Value, 0, len(x.Items)+len(y.Items))
			out = append(out, x.Items...)
			out = append(out, y.Items...)
			return &List{Items: out}, nil
		}
		return nil, unsupported("+", a, b)
	}
	return arith("+", a, b, addInt,
		func(x, y float64) float64 { return x + y })
}

func (ev *Evaluator) sub(a, b Value) (Value, error) {
	return arith("-", a, b, subInt,
		func(x, y float64) float64 { return x - y })
}

func (ev *Evaluator) mul(a, b Value) (Value, error) {
	if s, ok := a.(Str); ok {
		if n, ok := b.(Int); ok {
			return repeat(s.V, n.V)
		}
	}
	if n, ok := a.(Int); ok {
		if s, ok := b.(Str); ok {
			return repeat(s.V, n.V)
		}
	}
	return arith("*", a, b, mulInt,
		func(x, y float64) float64 { return x * y })
}

// maxRepeat bounds the byte length of a string built by repetition.
const maxRepeat = 1 << 28

func repeat(s string, n int64) (Value, error) {
	if n <= 0 || s == "" {
		return Str{}, nil
	}
	if n > maxRepeat/int64(len(s)) {
		return nil, langerr.NewValue("शब्द पुनरावृत्ति बहुत बड़ी है (%d × %d बाइट)", n, len(s))
	}
	return Str{V: strings.Repeat(s, int(n))}, nil
}

func errOverflow() *langerr.Error {
	return langerr.NewValue("पूर्ण संख्या सीमा से बाहर है")
}

// addInt, subInt and mulInt report false when the int64 result would wrap.
func addInt(x, y int64) (int64, bool) {
	r := x + y
	return r, (r > x) == (y > 0)
}

func subInt(x, y int64) (int64, bool) {
	r := x - y
	return r, (r < x) == (y > 0)
}

func mulInt(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	r := x * y
	return r, r/y == x
}

// powInt raises b to a non-negative e by squaring.
func powInt(b, e int64) (int64, bool) {
	r := int64(1)
	for {
		if e&1 == 1 {
			var ok bool
			if r, ok = mulInt(r, b); !ok {
				return 0, false
			}
		}
		e >>= 1
		if e == 0 {
			return r, true
		}
		var ok bool
		if b, ok = mulInt(b, b); !ok {
			return 0, false
		}
	}
}

// div always yields a float.
func (ev *Evaluator) div(a, b Value) (Value, error) {
	x, ok1 := toFloat(a)
	y, ok2 := toFloat(b)
	if !ok1 || !ok2 {
		return nil, unsupported("/", a, b)
	}
	if y == 0 {
		return nil, langerr.NewZeroDivision()
	}
	return Float{V: x / y}, nil
}

// mod is floor modulo: the result takes the sign of the divisor.
func (ev *Evaluator) mod(a, b Value) (Value, error) {
	if x, ok := a.(Int); ok {
		if y, ok := b.(Int); ok {
			if y.V == 0 {
				return nil, langerr.NewZeroDivision()
			}
			r := x.V % y.V
			if r != 0 && (r < 0) != (y.V < 0) {
				r += y.V
			}
			return Int{V: r}, nil
		}
	}
	x, ok1 := toFloat(a)
	y, ok2 := toFloat(b)
	if !ok1 || !ok2 {
		return nil, unsupported("%", a, b)
	}
	if y == 0 {
		return nil, langerr.NewZeroDivision()
	}
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return Float{V: r}, nil
}

func arith(op string, a, b Value, fi func(int64, int64) (int64, bool), ff func(float64, float64) float64) (Value, error) {
	if x, ok := a.(Int); ok {
		if y, ok := b.(Int); ok {
			r, ok := fi(x.V, y.V)
			if !ok {
				return nil, errOverflow()
			}
			return Int{V: r}, nil
		}
	}
	x, ok1 := toFloat(a)
	y, ok2 := toFloat(b)
	if !ok1 || !ok2 {
		return nil, unsupported(op, a, b)
	}
	return Float{V: ff(x, y)}, nil
}

func (ev *Evaluator) negate(v Value) (Value, error) {
	switch x := v.(type) {
	case Int:
		if x.V == math.MinInt64 {
			return nil, errOverflow()
		}
		return Int{V: -x.V}, nil
	case Float:
		return Float{V: -x.V}, nil
	}
	return nil, langerr.NewType("ऋणात्मक '-' के लिए असमर्थित प्रकार: %s", TypeName(v))
}

func (ev *Evaluator) binary(op string, l, r Value) (Value, error) {
	switch op {
	case "+":
		return ev.add(l, r)
	case "-":
		return ev.sub(l, r)
	case "*":
		return ev.mul(l, r)
	case "/":
		return ev.div(l, r)
	case "%":
		return ev.mod(l, r)
	case "==":
		return Bool{V: equal(l, r)}, nil
	case "!=":
		return Bool{V: !equal(l, r)}, nil
	case "<", ">", "<=", ">=":
		c, err := compare(op, l, r)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return Bool{V: c < 0}, nil
		case ">":
			return Bool{V: c > 0}, nil
		case "<=":
			return Bool{V: c <= 0}, nil
		}
		return Bool{V: c >= 0}, nil
	case "च":
		return Bool{V: isTruthy(l) && isTruthy(r)}, nil
	case "वा":
		return Bool{V: isTruthy(l) || isTruthy(r)}, nil
	}
	return nil, langerr.NewRuntime("अज्ञात संकारक '%s'", op)
}
