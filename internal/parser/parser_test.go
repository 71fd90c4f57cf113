package parser

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sanskrit-lang/impl/internal/langerr"
	"sanskrit-lang/impl/internal/lexer"
)

func parse(t *testing.T, src string) (Program, []*langerr.Error) {
	t.Helper()
	p := New(lexer.Lex(src))
	return p.ParseProgram(), p.Diagnostics()
}

func mustParse(t *testing.T, src string) Program {
	t.Helper()
	prog, diags := parse(t, src)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", src, diags)
	}
	return prog
}

func exprOf(t *testing.T, src string) Expr {
	t.Helper()
	prog := mustParse(t, src)
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	es, ok := prog.Statements[0].(ExpressionStmt)
	if !ok {
		t.Fatalf("want ExpressionStmt, got %T", prog.Statements[0])
	}
	return es.Value
}

// shape renders an expression as a fully parenthesised string.
func shape(e Expr) string {
	switch x := e.(type) {
	case Literal:
		switch v := x.Value.(type) {
		case nil:
			return "null"
		case string:
			return `"` + v + `"`
		default:
			return fmt.Sprint(v)
		}
	case Identifier:
		return x.Name
	case BinaryOp:
		return "(" + shape(x.Left) + " " + x.Operator + " " + shape(x.Right) + ")"
	case UnaryOp:
		return "(" + x.Operator + " " + shape(x.Operand) + ")"
	case Assignment:
		return "(" + x.Name.Name + " = " + shape(x.Value) + ")"
	case CallExpr:
		s := shape(x.Function) + "("
		for i, a := range x.Arguments {
			if i > 0 {
				s += ", "
			}
			s += shape(a)
		}
		return s + ")"
	case AttributeExpr:
		return shape(x.Object) + "." + x.Name
	case SetAttribute:
		return "(" + shape(x.Object) + "." + x.Name + " = " + shape(x.Value) + ")"
	case IndexExpr:
		return shape(x.Left) + "[" + shape(x.Index) + "]"
	case SetIndex:
		return "(" + shape(x.Left) + "[" + shape(x.Index) + "] = " + shape(x.Value) + ")"
	case ListLit:
		s := "["
		for i, a := range x.Items {
			if i > 0 {
				s += ", "
			}
			s += shape(a)
		}
		return s + "]"
	}
	return "?"
}

func TestPrecedence(t *testing.T) {
	cases := map[string]string{
		"2 + 3 * 4":           "(2 + (3 * 4))",
		"(2 + 3) * 4":         "((2 + 3) * 4)",
		"10 - 4 - 3":          "((10 - 4) - 3)",
		"8 / 2 % 3":           "((8 / 2) % 3)",
		"a < b == c > d":      "((a < b) == (c > d))",
		"a च b वा c":          "((a च b) वा c)",
		"a वा b च c":          "(a वा (b च c))",
		"न a == b":            "((न a) == b)",
		"- - 5":               "(- (- 5))",
		"-2 * 3":              "((- 2) * 3)",
		"a = b = 3":           "(a = (b = 3))",
		"f(1, 2)(3)":          "f(1, 2)(3)",
		"वस्तु.गुण":            "वस्तु.गुण",
		"गणित.वर्गित(१२)":      "गणित.वर्गित(12)",
		"सूची[1 + 1]":         "सूची[(1 + 1)]",
		"[1, 'क', शून्य]":      `[1, "क", null]`,
		"स्व.नाम = 'राम'":     `(स्व.नाम = "राम")`,
		"l[0] = 9":            "(l[0] = 9)",
		"a <= b != c >= d":    "((a <= b) != (c >= d))",
	}
	for src, want := range cases {
		if got := shape(exprOf(t, src)); got != want {
			t.Errorf("%s: got %s, want %s", src, got, want)
		}
	}
}

func TestNumeralAlphabet(t *testing.T) {
	cases := []struct {
		devanagari, ascii string
	}{
		{"१०", "10"},
		{"०", "0"},
		{"९८७६५४३२१०", "9876543210"},
		{"३.१४", "3.14"},
		{"१२.०५", "12.05"},
	}
	for _, c := range cases {
		d := exprOf(t, c.devanagari).(Literal)
		a := exprOf(t, c.ascii).(Literal)
		if d.Kind != a.Kind || d.Value != a.Value {
			t.Errorf("%s parsed as %v (%v), %s as %v (%v)", c.devanagari, d.Value, d.Kind, c.ascii, a.Value, a.Kind)
		}
	}
	if lit := exprOf(t, "४२").(Literal); lit.Kind != IntLit || lit.Value != int64(42) {
		t.Errorf("४२ = %#v", lit)
	}
	if lit := exprOf(t, "२.५").(Literal); lit.Kind != FloatLit || lit.Value != 2.5 {
		t.Errorf("२.५ = %#v", lit)
	}
}

func TestStatements(t *testing.T) {
	src := `धारणा x = १०
स्थिर y = 'क'
यदि x > 5 {
	मुद्रण(x)
}
अथवा {
	मुद्रण(y)
}
यावत् x > 0 { x = x - 1 }
प्रति i में [1, 2] { मुद्रण(i) }
कार्य योग(a, b) {
	वापसी a + b
}
वर्ग पशु {
	कार्य बोलो() { वापसी 'ध्वनि' }
	धारणा ignored = 1
}
वर्ग कुत्ता(पशु) { }
आयात गणित
{ विराम
अनुवर्तन }
`
	prog := mustParse(t, src)
	var got []string
	for _, st := range prog.Statements {
		switch s := st.(type) {
		case Declaration:
			got = append(got, s.Type)
		default:
			got = append(got, typeOf(s))
		}
	}
	want := []string{"Declaration", "Declaration", "If", "While", "For", "FunctionDef", "ClassDef", "ClassDef", "Import", "Block"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("statement kinds (-want +got):\n%s", diff)
	}

	if d := prog.Statements[1].(Declaration); !d.Const || d.Name.Name != "y" {
		t.Errorf("const declaration = %#v", d)
	}
	if st := prog.Statements[2].(IfStmt); st.Alternative == nil {
		t.Error("else branch on the next line was not attached")
	}
	if fn := prog.Statements[5].(FunctionDef); len(fn.Parameters) != 2 || fn.Name.Name != "योग" {
		t.Errorf("function = %#v", fn)
	}
	animal := prog.Statements[6].(ClassDef)
	if len(animal.Methods) != 1 || animal.Methods[0].Name.Name != "बोलो" || animal.Superclass != nil {
		t.Errorf("class = %#v", animal)
	}
	if dog := prog.Statements[7].(ClassDef); dog.Superclass == nil || dog.Superclass.Name != "पशु" {
		t.Errorf("superclass not parsed: %#v", dog)
	}
	imp := prog.Statements[8].(ImportStmt)
	if imp.Module != "गणित" || imp.Alias != nil || imp.Names != nil {
		t.Errorf("import = %#v", imp)
	}
	blk := prog.Statements[9].(Block)
	if len(blk.Statements) != 2 {
		t.Fatalf("block statements = %d", len(blk.Statements))
	}
	if _, ok := blk.Statements[0].(BreakStmt); !ok {
		t.Errorf("want BreakStmt, got %T", blk.Statements[0])
	}
}

func typeOf(st Statement) string {
	switch s := st.(type) {
	case IfStmt:
		return s.Type
	case WhileStmt:
		return s.Type
	case ForStmt:
		return s.Type
	case FunctionDef:
		return s.Type
	case ClassDef:
		return s.Type
	case ImportStmt:
		return s.Type
	case Block:
		return s.Type
	case ReturnStmt:
		return s.Type
	case ExpressionStmt:
		return s.Type
	}
	return "?"
}

func TestReturnForms(t *testing.T) {
	prog := mustParse(t, "कार्य f() {\nवापसी\n}\nकार्य g() { वापसी }\nकार्य h() { वापसी 1 + 2 }")
	for i, wantNil := range []bool{true, true, false} {
		fn := prog.Statements[i].(FunctionDef)
		ret := fn.Body.Statements[0].(ReturnStmt)
		if (ret.Value == nil) != wantNil {
			t.Errorf("function %d: return value = %#v", i, ret.Value)
		}
	}
}

func TestRecoveryDropsMalformedStatement(t *testing.T) {
	prog, diags := parse(t, "धारणा a = 1\nधारणा = 2\nमुद्रण(a)")
	if len(prog.Statements) != 2 {
		t.Fatalf("want 2 surviving statements, got %d", len(prog.Statements))
	}
	if len(diags) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", diags)
	}
	if diags[0].Kind != langerr.Syntax || diags[0].Line != 2 {
		t.Errorf("diagnostic = %v", diags[0])
	}
}

func TestRecoveryStopsAtStatementKeyword(t *testing.T) {
	prog, diags := parse(t, "1 + ) यदि सत्य { 2 }")
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v", diags)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(IfStmt); !ok {
		t.Errorf("want IfStmt after recovery, got %T", prog.Statements[0])
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	prog, diags := parse(t, "1 + 2 = 3\nx = 4")
	if len(diags) != 1 || diags[0].Kind != langerr.Syntax {
		t.Fatalf("diagnostics = %v", diags)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d", len(prog.Statements))
	}
}

func TestForRequiresMembershipKeyword(t *testing.T) {
	_, diags := parse(t, "प्रति i [1] { }")
	if len(diags) == 0 {
		t.Fatal("missing में was accepted")
	}
}

func TestClassBodySkipsNonMethods(t *testing.T) {
	cd := mustParse(t, "वर्ग क { 1 2 x कार्य m() { } + }").Statements[0].(ClassDef)
	if len(cd.Methods) != 1 {
		t.Fatalf("methods = %d", len(cd.Methods))
	}
}

func TestPositions(t *testing.T) {
	prog := mustParse(t, "\n  x = 1 + 2")
	es := prog.Statements[0].(ExpressionStmt)
	if es.Pos != (Pos{Line: 2, Col: 3}) {
		t.Errorf("statement pos = %+v", es.Pos)
	}
	bin := es.Value.(Assignment).Value.(BinaryOp)
	if bin.Pos != (Pos{Line: 2, Col: 9}) {
		t.Errorf("operator pos = %+v", bin.Pos)
	}
}

func TestParseNumber(t *testing.T) {
	if v, ok := ParseNumber(" ४२ "); !ok || v != int64(42) {
		t.Errorf("ParseNumber(४२) = %v, %v", v, ok)
	}
	if v, ok := ParseNumber("1.5"); !ok || v != 1.5 {
		t.Errorf("ParseNumber(1.5) = %v, %v", v, ok)
	}
	if _, ok := ParseNumber("abc"); ok {
		t.Error("ParseNumber(abc) succeeded")
	}
}
