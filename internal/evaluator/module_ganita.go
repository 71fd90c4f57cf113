package evaluator

import (
	"math"
	"math/rand/v2"

	"sanskrit-lang/impl/internal/langerr"
)

// unaryFloat wraps a float64 function as a one-argument module member.
func unaryFloat(name string, f func(float64) float64) *Builtin {
	return newBuiltin(name, func(ev *Evaluator, args []Value) (Value, error) {
		if err := want(name, args, 1); err != nil {
			return nil, err
		}
		x, err := numArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return Float{V: f(x)}, nil
	})
}

// rounding wraps a float64 rounding function; the result is always an integer.
func rounding(name string, f func(float64) float64) *Builtin {
	return newBuiltin(name, func(ev *Evaluator, args []Value) (Value, error) {
		if err := want(name, args, 1); err != nil {
			return nil, err
		}
		if n, ok := args[0].(Int); ok {
			return n, nil
		}
		x, err := numArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		// float64(math.MaxInt64) is 2^63, already out of range.
		r := f(x)
		if math.IsNaN(r) || r >= math.MaxInt64 || r < math.MinInt64 {
			return nil, langerr.NewValue("'%s' को पूर्ण संख्या में नहीं बदल सकते", formatFloat(x))
		}
		return Int{V: int64(r)}, nil
	})
}

// extreme picks the maximum or minimum of its arguments, or of a single list.
func extreme(name string, better func(c int) bool) *Builtin {
	return newBuiltin(name, func(ev *Evaluator, args []Value) (Value, error) {
		items := args
		if len(args) == 1 {
			if l, ok := args[0].(*List); ok {
				items = l.Items
			}
		}
		if len(items) == 0 {
			return nil, langerr.NewValue("'%s' को कम से कम एक मान चाहिए", name)
		}
		best := items[0]
		for _, it := range items[1:] {
			c, err := compare(name, it, best)
			if err != nil {
				return nil, err
			}
			if better(c) {
				best = it
			}
		}
		return best, nil
	})
}

func ganitaModule(ev *Evaluator) *Module {
	m := newModule("गणित",
		newBuiltin("वर्गित", func(ev *Evaluator, args []Value) (Value, error) {
			if err := want("वर्गित", args, 1); err != nil {
				return nil, err
			}
			if _, err := numArg("वर्गित", args, 0); err != nil {
				return nil, err
			}
			return ev.mul(args[0], args[0])
		}),
		newBuiltin("वर्गमूल", func(ev *Evaluator, args []Value) (Value, error) {
			if err := want("वर्गमूल", args, 1); err != nil {
				return nil, err
			}
			x, err := numArg("वर्गमूल", args, 0)
			if err != nil {
				return nil, err
			}
			if x < 0 {
				return nil, langerr.NewValue("ऋणात्मक संख्या का वर्गमूल संभव नहीं")
			}
			return Float{V: math.Sqrt(x)}, nil
		}),
		newBuiltin("घात", func(ev *Evaluator, args []Value) (Value, error) {
			if err := want("घात", args, 2); err != nil {
				return nil, err
			}
			b, err := numArg("घात", args, 0)
			if err != nil {
				return nil, err
			}
			e, err := numArg("घात", args, 1)
			if err != nil {
				return nil, err
			}
			bi, ok1 := args[0].(Int)
			ei, ok2 := args[1].(Int)
			if ok1 && ok2 && ei.V >= 0 {
				r, ok := powInt(bi.V, ei.V)
				if !ok {
					return nil, errOverflow()
				}
				return Int{V: r}, nil
			}
			if b == 0 && e < 0 {
				return nil, langerr.NewZeroDivision()
			}
			return Float{V: math.Pow(b, e)}, nil
		}),
		newBuiltin("निरपेक्ष", func(ev *Evaluator, args []Value) (Value, error) {
			if err := want("निरपेक्ष", args, 1); err != nil {
				return nil, err
			}
			switch x := args[0].(type) {
			case Int:
				if x.V < 0 {
					return ev.negate(x)
				}
				return x, nil
			case Float:
				return Float{V: math.Abs(x.V)}, nil
			}
			return nil, argType("निरपेक्ष", 0, "संख्या", args[0])
		}),
		rounding("अधःसीमा", math.Floor),
		rounding("ऊर्ध्वसीमा", math.Ceil),
		rounding("पूर्णांकन", math.RoundToEven),
		extreme("अधिकतम", func(c int) bool { return c > 0 }),
		extreme("न्यूनतम", func(c int) bool { return c < 0 }),
		unaryFloat("ज्या", math.Sin),
		unaryFloat("कोज्या", math.Cos),
		unaryFloat("स्पर्शज्या", math.Tan),
		unaryFloat("घातांक", math.Exp),
		newBuiltin("लघुगणक", func(ev *Evaluator, args []Value) (Value, error) {
			if err := wantRange("लघुगणक", args, 1, 2); err != nil {
				return nil, err
			}
			x, err := numArg("लघुगणक", args, 0)
			if err != nil {
				return nil, err
			}
			if x <= 0 {
				return nil, langerr.NewValue("धनात्मक संख्या की ही लघुगणक संभव है")
			}
			if len(args) == 1 {
				return Float{V: math.Log(x)}, nil
			}
			base, err := numArg("लघुगणक", args, 1)
			if err != nil {
				return nil, err
			}
			if base <= 0 || base == 1 {
				return nil, langerr.NewValue("लघुगणक का आधार अमान्य है")
			}
			return Float{V: math.Log(x) / math.Log(base)}, nil
		}),
		newBuiltin("क्रमगुणित", func(ev *Evaluator, args []Value) (Value, error) {
			if err := want("क्रमगुणित", args, 1); err != nil {
				return nil, err
			}
			n, err := intArg("क्रमगुणित", args, 0)
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, langerr.NewValue("ऋणात्मक संख्या का क्रमगुणित संभव नहीं")
			}
			if n > 20 {
				return nil, langerr.NewValue("%d का क्रमगुणित पूर्ण संख्या की सीमा से बाहर है", n)
			}
			r := int64(1)
			for i := int64(2); i <= n; i++ {
				r *= i
			}
			return Int{V: r}, nil
		}),
		newBuiltin("महत्तम_समापवर्तक", func(ev *Evaluator, args []Value) (Value, error) {
			if err := want("महत्तम_समापवर्तक", args, 2); err != nil {
				return nil, err
			}
			a, err := intArg("महत्तम_समापवर्तक", args, 0)
			if err != nil {
				return nil, err
			}
			b, err := intArg("महत्तम_समापवर्तक", args, 1)
			if err != nil {
				return nil, err
			}
			return Int{V: gcd(a, b)}, nil
		}),
		newBuiltin("अभाज्य", func(ev *Evaluator, args []Value) (Value, error) {
			if err := want("अभाज्य", args, 1); err != nil {
				return nil, err
			}
			n, err := intArg("अभाज्य", args, 0)
			if err != nil {
				return nil, err
			}
			return Bool{V: isPrime(n)}, nil
		}),
		newBuiltin("यादृच्छिक", func(ev *Evaluator, args []Value) (Value, error) {
			if len(args) == 0 {
				return Float{V: rand.Float64()}, nil
			}
			if err := want("यादृच्छिक", args, 2); err != nil {
				return nil, err
			}
			lo, err := intArg("यादृच्छिक", args, 0)
			if err != nil {
				return nil, err
			}
			hi, err := intArg("यादृच्छिक", args, 1)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, langerr.NewValue("खाली परास %d..%d", lo, hi)
			}
			// The span is computed unsigned; the full int64 range wraps to 0.
			span := uint64(hi-lo) + 1
			var off uint64
			if span == 0 {
				off = rand.Uint64()
			} else {
				off = rand.Uint64N(span)
			}
			return Int{V: lo + int64(off)}, nil
		}),
	)
	m.set("पाई", Float{V: math.Pi})
	m.set("ई", Float{V: math.E})
	return m
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for i := int64(2); i <= n/i; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
