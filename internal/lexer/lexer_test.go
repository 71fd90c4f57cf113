package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexDeclaration(t *testing.T) {
	toks := Lex("धारणा x = १०")
	want := []Token{
		{Type: VAR, Lit: "धारणा", Line: 1, Col: 1},
		{Type: IDENT, Lit: "x", Line: 1, Col: 7},
		{Type: "=", Lit: "=", Line: 1, Col: 9},
		{Type: NUMBER, Lit: "१०", Line: 1, Col: 11},
		{Type: EOF, Lit: "", Line: 1, Col: 13},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLexKinds(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"two-char operators", "a <= b >= c == d != e", []string{IDENT, "<=", IDENT, ">=", IDENT, "==", IDENT, "!=", IDENT, EOF}},
		{"one-char operators", "a < b > c = d % e", []string{IDENT, "<", IDENT, ">", IDENT, "=", IDENT, "%", IDENT, EOF}},
		{"newlines are tokens", "a\nb", []string{IDENT, NEWLINE, IDENT, EOF}},
		{"comments dropped", "a # टिप्पणी\nb", []string{IDENT, NEWLINE, IDENT, EOF}},
		{"unknown characters skipped", "a @ $ ! b", []string{IDENT, IDENT, EOF}},
		{"keywords", "यदि अथवा यावत् प्रति में कार्य वापसी वर्ग स्थिर आयात च वा न", []string{IF, ELSE, WHILE, FOR, IN, FUNC, RETURN, CLASS, CONST, IMPORT, AND, OR, NOT, EOF}},
		{"literals", "सत्य असत्य शून्य", []string{TRUE, FALSE, NULL, EOF}},
		{"loop control", "विराम अनुवर्तन", []string{BREAK, CONTINUE, EOF}},
		{"punctuation", "( ) [ ] { } . , ; :", []string{"(", ")", "[", "]", "{", "}", ".", ",", ";", ":", EOF}},
		{"attribute access", "गणित.वर्ग(२)", []string{IDENT, ".", IDENT, "(", NUMBER, ")", EOF}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if diff := cmp.Diff(c.want, kinds(Lex(c.src))); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexNumbers(t *testing.T) {
	cases := map[string]string{
		"42":    "42",
		"3.14":  "3.14",
		"३.१४":  "३.१४",
		"१२३४":  "१२३४",
		"7.":    "7",
		"१.5":   "१.5",
	}
	for src, want := range cases {
		toks := Lex(src)
		if toks[0].Type != NUMBER || toks[0].Lit != want {
			t.Errorf("Lex(%q)[0] = %+v, want NUMBER %q", src, toks[0], want)
		}
	}
}

func TestLexStrings(t *testing.T) {
	cases := map[string]string{
		`"नमस्ते"`:     "नमस्ते",
		`'single'`:     "single",
		`"a\nb"`:       "a\nb",
		`"tab\there"`:  "tab\there",
		`"q\"q"`:       `q"q`,
		`'it\'s'`:      "it's",
		`"back\\"`:     `back\`,
		`"\q"`:         "q",
		`"unterminated`: "unterminated",
	}
	for src, want := range cases {
		toks := Lex(src)
		if toks[0].Type != STRING || toks[0].Lit != want {
			t.Errorf("Lex(%s)[0] = %+v, want STRING %q", src, toks[0], want)
		}
	}
}

func TestLexKeepsStringRunes(t *testing.T) {
	// U+095B is a composition exclusion: NFC would split it into two runes.
	precomposed := "\u095b"
	decomposed := "\u091c\u093c"
	for _, lit := range []string{precomposed, decomposed, "फ़ाइल \u095e"} {
		toks := Lex("'" + lit + "' x")
		if toks[0].Type != STRING || toks[0].Lit != lit {
			t.Errorf("Lex(%q)[0] = %+q, want the literal unchanged", lit, toks[0].Lit)
		}
		if toks[1].Col != len([]rune(lit))+4 {
			t.Errorf("column after %q = %d, want %d", lit, toks[1].Col, len([]rune(lit))+4)
		}
	}
}

func TestLexNormalisesIdentifiers(t *testing.T) {
	toks := Lex("\u095b = \u091c\u093c")
	if toks[0].Type != IDENT || toks[0].Lit != toks[2].Lit {
		t.Errorf("identifier spellings differ after lexing: %+q vs %+q", toks[0].Lit, toks[2].Lit)
	}
}

func TestLexPositions(t *testing.T) {
	toks := Lex("क = 1\n  ख = 2")
	var got [][2]int
	for _, tk := range toks {
		got = append(got, [2]int{tk.Line, tk.Col})
	}
	want := [][2]int{{1, 1}, {1, 3}, {1, 5}, {1, 6}, {2, 3}, {2, 5}, {2, 7}, {2, 8}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeDigits(t *testing.T) {
	if got := NormalizeDigits("१२.३४५"); got != "12.345" {
		t.Fatalf("NormalizeDigits = %q", got)
	}
	for r := '०'; r <= '९'; r++ {
		if !IsDigit(r) {
			t.Fatalf("IsDigit(%q) = false", r)
		}
	}
}
