package evaluator

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sanskrit-lang/impl/internal/langerr"
)

// mapString wraps a string transform as a one-argument module member.
func mapString(name string, f func(string) string) *Builtin {
	return newBuiltin(name, func(ev *Evaluator, args []Value) (Value, error) {
		if err := want(name, args, 1); err != nil {
			return nil, err
		}
		s, err := strArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return Str{V: f(s)}, nil
	})
}

// stringPair wraps a predicate-like function of two strings.
func stringPair(name string, f func(a, b string) Value) *Builtin {
	return newBuiltin(name, func(ev *Evaluator, args []Value) (Value, error) {
		if err := want(name, args, 2); err != nil {
			return nil, err
		}
		a, err := strArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		b, err := strArg(name, args, 1)
		if err != nil {
			return nil, err
		}
		return f(a, b), nil
	})
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + cases.Lower(language.Und).String(s[size:])
}

// clampSlice resolves slice bounds the way negative indices count from the end.
func clampSlice(i, n int64) int64 {
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n)
}

func shabdaModule(ev *Evaluator) *Module {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	return newModule("शब्द",
		newBuiltin("लम्बाई", func(ev *Evaluator, args []Value) (Value, error) {
			if err := want("लम्बाई", args, 1); err != nil {
				return nil, err
			}
			s, err := strArg("लम्बाई", args, 0)
			if err != nil {
				return nil, err
			}
			return Int{V: int64(utf8.RuneCountInString(s))}, nil
		}),
		mapString("उच्च", upper.String),
		mapString("लघु", lower.String),
		mapString("प्रथम_उच्च", capitalize),
		mapString("शीर्षक", title.String),
		mapString("सफाई", strings.TrimSpace),
		mapString("उलटा", func(s string) string {
			r := []rune(s)
			slices.Reverse(r)
			return string(r)
		}),
		newBuiltin("विभाजन", func(ev *Evaluator, args []Value) (Value, error) {
			if err := wantRange("विभाजन", args, 1, 2); err != nil {
				return nil, err
			}
			s, err := strArg("विभाजन", args, 0)
			if err != nil {
				return nil, err
			}
			sep := " "
			if len(args) == 2 {
				if sep, err = strArg("विभाजन", args, 1); err != nil {
					return nil, err
				}
				if sep == "" {
					return nil, langerr.NewValue("खाली विभाजक")
				}
			}
			parts := strings.Split(s, sep)
			out := make([]Value, len(parts))
			for i, p := range parts {
				out[i] = Str{V: p}
			}
			return &List{Items: out}, nil
		}),
		newBuiltin("संधारण", func(ev *Evaluator, args []Value) (Value, error) {
			if err := wantRange("संधारण", args, 1, 2); err != nil {
				return nil, err
			}
			l, ok := args[0].(*List)
			if !ok {
				return nil, argType("संधारण", 0, "सूची", args[0])
			}
			sep := ""
			if len(args) == 2 {
				var err error
				if sep, err = strArg("संधारण", args, 1); err != nil {
					return nil, err
				}
			}
			parts := make([]string, len(l.Items))
			for i, it := range l.Items {
				parts[i] = Display(it)
			}
			return Str{V: strings.Join(parts, sep)}, nil
		}),
		newBuiltin("स्थान_बदल", func(ev *Evaluator, args []Value) (Value, error) {
			if err := wantRange("स्थान_बदल", args, 3, 4); err != nil {
				return nil, err
			}
			var s [3]string
			for i := range s {
				v, err := strArg("स्थान_बदल", args, i)
				if err != nil {
					return nil, err
				}
				s[i] = v
			}
			count := int64(-1)
			if len(args) == 4 {
				n, err := intArg("स्थान_बदल", args, 3)
				if err != nil {
					return nil, err
				}
				count = n
			}
			return Str{V: strings.Replace(s[0], s[1], s[2], int(count))}, nil
		}),
		stringPair("खोज", func(s, sub string) Value {
			i := strings.Index(s, sub)
			if i < 0 {
				return Int{V: -1}
			}
			return Int{V: int64(utf8.RuneCountInString(s[:i]))}
		}),
		stringPair("आरम्भ_जाँच", func(s, p string) Value { return Bool{V: strings.HasPrefix(s, p)} }),
		stringPair("अन्त_जाँच", func(s, p string) Value { return Bool{V: strings.HasSuffix(s, p)} }),
		newBuiltin("खण्ड", func(ev *Evaluator, args []Value) (Value, error) {
			if err := wantRange("खण्ड", args, 2, 3); err != nil {
				return nil, err
			}
			s, err := strArg("खण्ड", args, 0)
			if err != nil {
				return nil, err
			}
			r := []rune(s)
			n := int64(len(r))
			start, err := intArg("खण्ड", args, 1)
			if err != nil {
				return nil, err
			}
			end := n
			if len(args) == 3 {
				if end, err = intArg("खण्ड", args, 2); err != nil {
					return nil, err
				}
			}
			start, end = clampSlice(start, n), clampSlice(end, n)
			if start >= end {
				return Str{V: ""}, nil
			}
			return Str{V: string(r[start:end])}, nil
		}),
	)
}
