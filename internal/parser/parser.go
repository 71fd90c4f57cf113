package parser

import (
	"strconv"
	"strings"

	"sanskrit-lang/impl/internal/langerr"
	"sanskrit-lang/impl/internal/lexer"
)

type Parser struct {
	toks  []lexer.Token
	i     int
	diags []*langerr.Error
}

func New(toks []lexer.Token) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Type != lexer.EOF {
		toks = append(toks, lexer.Token{Type: lexer.EOF})
	}
	return &Parser{toks: toks}
}

// Diagnostics returns the syntax errors of every statement dropped during
// recovery, in source order.
func (p *Parser) Diagnostics() []*langerr.Error { return p.diags }

func (p *Parser) cur() lexer.Token { return p.toks[p.i] }

func (p *Parser) prev() lexer.Token {
	if p.i == 0 {
		return p.toks[0]
	}
	return p.toks[p.i-1]
}

func (p *Parser) atEnd() bool { return p.cur().Type == lexer.EOF }

func (p *Parser) next() lexer.Token {
	t := p.cur()
	if !p.atEnd() {
		p.i++
	}
	return t
}

func (p *Parser) check(typ string) bool { return p.cur().Type == typ }

func (p *Parser) match(types ...string) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.next()
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or aborts the current statement.
func (p *Parser) expect(typ, msg string) lexer.Token {
	if p.check(typ) {
		return p.next()
	}
	t := p.cur()
	panic(langerr.NewSyntax(t.Line, t.Col, "%s", msg))
}

func posOf(t lexer.Token) Pos { return Pos{Line: t.Line, Col: t.Col} }

func (p *Parser) ParseProgram() Program {
	stmts := make([]Statement, 0)
	for !p.atEnd() {
		if p.match(lexer.NEWLINE, ";") {
			continue
		}
		if st := p.statement(); st != nil {
			stmts = append(stmts, st)
		}
	}
	return Program{Statements: stmts, Type: "Program"}
}

// statement parses one statement; on a syntax error it records the
// diagnostic, resynchronises and returns nil.
func (p *Parser) statement() (st Statement) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*langerr.Error)
			if !ok {
				panic(r)
			}
			p.diags = append(p.diags, e)
			p.synchronize()
			st = nil
		}
	}()

	switch p.cur().Type {
	case lexer.IF:
		return p.ifStatement()
	case lexer.WHILE:
		return p.whileStatement()
	case lexer.FOR:
		return p.forStatement()
	case lexer.FUNC:
		return p.functionDef()
	case lexer.CLASS:
		return p.classDef()
	case lexer.RETURN:
		return p.returnStatement()
	case lexer.BREAK:
		return BreakStmt{Pos: posOf(p.next()), Type: "Break"}
	case lexer.CONTINUE:
		return ContinueStmt{Pos: posOf(p.next()), Type: "Continue"}
	case lexer.IMPORT:
		return p.importStatement()
	case lexer.VAR, lexer.CONST:
		return p.declaration()
	case "{":
		return p.block()
	}
	start := p.cur()
	expr := p.expression()
	return ExpressionStmt{Pos: posOf(start), Type: "Expression", Value: expr}
}

var syncKeywords = map[string]bool{
	lexer.CLASS: true, lexer.FUNC: true, lexer.VAR: true, lexer.FOR: true,
	lexer.IF: true, lexer.WHILE: true, lexer.RETURN: true,
}

func (p *Parser) synchronize() {
	p.next()
	for !p.atEnd() {
		if p.prev().Type == lexer.NEWLINE {
			return
		}
		if syncKeywords[p.cur().Type] {
			return
		}
		p.next()
	}
}

func (p *Parser) ifStatement() IfStmt {
	kw := p.next()
	cond := p.expression()
	cons := p.block()
	st := IfStmt{Pos: posOf(kw), Condition: cond, Consequence: cons, Type: "If"}
	// The else branch may start on the line after the closing brace.
	j := p.i
	for p.toks[j].Type == lexer.NEWLINE {
		j++
	}
	if p.toks[j].Type == lexer.ELSE {
		p.i = j + 1
		alt := p.block()
		st.Alternative = &alt
	}
	return st
}

func (p *Parser) whileStatement() WhileStmt {
	kw := p.next()
	cond := p.expression()
	body := p.block()
	return WhileStmt{Pos: posOf(kw), Body: body, Condition: cond, Type: "While"}
}

func (p *Parser) forStatement() ForStmt {
	kw := p.next()
	v := p.expect(lexer.IDENT, "चर नाम की अपेक्षा")
	p.expect(lexer.IN, "'में' की अपेक्षा")
	iter := p.expression()
	body := p.block()
	return ForStmt{
		Pos:      posOf(kw),
		Body:     body,
		Iterable: iter,
		Type:     "For",
		Variable: Identifier{Pos: posOf(v), Name: v.Lit, Type: "Identifier"},
	}
}

func (p *Parser) functionDef() FunctionDef {
	kw := p.next()
	nameTok := p.expect(lexer.IDENT, "फ़ंक्शन नाम की अपेक्षा")
	p.expect("(", "'(' की अपेक्षा")
	params := make([]Identifier, 0)
	if !p.check(")") {
		for {
			t := p.expect(lexer.IDENT, "पैरामीटर नाम की अपेक्षा")
			params = append(params, Identifier{Pos: posOf(t), Name: t.Lit, Type: "Identifier"})
			if !p.match(",") {
				break
			}
		}
	}
	p.expect(")", "')' की अपेक्षा")
	body := p.block()
	return FunctionDef{
		Pos:        posOf(kw),
		Body:       body,
		Name:       Identifier{Pos: posOf(nameTok), Name: nameTok.Lit, Type: "Identifier"},
		Parameters: params,
		Type:       "FunctionDef",
	}
}

func (p *Parser) classDef() ClassDef {
	kw := p.next()
	nameTok := p.expect(lexer.IDENT, "वर्ग नाम की अपेक्षा")
	cd := ClassDef{
		Pos:     posOf(kw),
		Methods: make([]FunctionDef, 0),
		Name:    Identifier{Pos: posOf(nameTok), Name: nameTok.Lit, Type: "Identifier"},
		Type:    "ClassDef",
	}
	if p.match("(") {
		sup := p.expect(lexer.IDENT, "मूल वर्ग नाम की अपेक्षा")
		cd.Superclass = &Identifier{Pos: posOf(sup), Name: sup.Lit, Type: "Identifier"}
		p.expect(")", "')' की अपेक्षा")
	}
	p.expect("{", "'{' की अपेक्षा")
	for !p.check("}") && !p.atEnd() {
		if p.check(lexer.FUNC) {
			cd.Methods = append(cd.Methods, p.functionDef())
			continue
		}
		p.next()
	}
	p.expect("}", "'}' की अपेक्षा")
	return cd
}

func (p *Parser) returnStatement() ReturnStmt {
	kw := p.next()
	st := ReturnStmt{Pos: posOf(kw), Type: "Return"}
	switch p.cur().Type {
	case lexer.NEWLINE, lexer.EOF, "}", ";":
	default:
		st.Value = p.expression()
	}
	return st
}

func (p *Parser) importStatement() ImportStmt {
	kw := p.next()
	mod := p.expect(lexer.IDENT, "मॉड्यूल नाम की अपेक्षा")
	return ImportStmt{Pos: posOf(kw), Module: mod.Lit, Type: "Import"}
}

func (p *Parser) declaration() Declaration {
	kw := p.next()
	nameTok := p.expect(lexer.IDENT, "चर नाम की अपेक्षा")
	p.expect("=", "'=' की अपेक्षा")
	val := p.expression()
	return Declaration{
		Pos:   posOf(kw),
		Name:  Identifier{Pos: posOf(nameTok), Name: nameTok.Lit, Type: "Identifier"},
		Const: kw.Type == lexer.CONST,
		Type:  "Declaration",
		Value: val,
	}
}

// block parses "{ statements }". Statements inside recover individually.
func (p *Parser) block() Block {
	open := p.expect("{", "'{' की अपेक्षा")
	stmts := make([]Statement, 0)
	for !p.check("}") && !p.atEnd() {
		if p.match(lexer.NEWLINE, ";") {
			continue
		}
		if st := p.statement(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.expect("}", "'}' की अपेक्षा")
	return Block{Pos: posOf(open), Statements: stmts, Type: "Block"}
}

func (p *Parser) expression() Expr { return p.assignment() }

func (p *Parser) assignment() Expr {
	left := p.logicalOr()
	if !p.check("=") {
		return left
	}
	eq := p.next()
	value := p.assignment()
	switch target := left.(type) {
	case Identifier:
		return Assignment{Pos: target.Pos, Name: target, Type: "Assignment", Value: value}
	case AttributeExpr:
		return SetAttribute{Pos: target.Pos, Name: target.Name, Object: target.Object, Type: "SetAttribute", Value: value}
	case IndexExpr:
		return SetIndex{Pos: target.Pos, Index: target.Index, Left: target.Left, Type: "SetIndex", Value: value}
	}
	panic(langerr.NewSyntax(eq.Line, eq.Col, "अवैध असाइनमेंट लक्ष्य"))
}

// binary parses a left-associative level whose operators are the given token kinds.
func (p *Parser) binary(operand func() Expr, ops ...string) Expr {
	left := operand()
	for {
		t := p.cur()
		found := false
		for _, op := range ops {
			if t.Type == op {
				found = true
				break
			}
		}
		if !found {
			return left
		}
		p.next()
		right := operand()
		left = BinaryOp{Pos: posOf(t), Left: left, Operator: t.Lit, Right: right, Type: "Binary"}
	}
}

func (p *Parser) logicalOr() Expr  { return p.binary(p.logicalAnd, lexer.OR) }
func (p *Parser) logicalAnd() Expr { return p.binary(p.equality, lexer.AND) }
func (p *Parser) equality() Expr   { return p.binary(p.comparison, "==", "!=") }
func (p *Parser) comparison() Expr { return p.binary(p.term, "<", ">", "<=", ">=") }
func (p *Parser) term() Expr       { return p.binary(p.factor, "+", "-") }
func (p *Parser) factor() Expr     { return p.binary(p.unary, "*", "/", "%") }

func (p *Parser) unary() Expr {
	if p.check("-") || p.check(lexer.NOT) {
		op := p.next()
		operand := p.unary()
		return UnaryOp{Pos: posOf(op), Operand: operand, Operator: op.Lit, Type: "Unary"}
	}
	return p.call()
}

// call parses the postfix chain: calls, attribute access and indexing.
func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		t := p.cur()
		switch t.Type {
		case "(":
			p.next()
			args := make([]Expr, 0)
			if !p.check(")") {
				for {
					args = append(args, p.expression())
					if !p.match(",") {
						break
					}
				}
			}
			p.expect(")", "')' की अपेक्षा")
			expr = CallExpr{Pos: posOf(t), Arguments: args, Function: expr, Type: "Call"}
		case ".":
			p.next()
			name := p.expect(lexer.IDENT, "गुण नाम की अपेक्षा")
			expr = AttributeExpr{Pos: posOf(name), Name: name.Lit, Object: expr, Type: "Attribute"}
		case "[":
			p.next()
			idx := p.expression()
			p.expect("]", "']' की अपेक्षा")
			expr = IndexExpr{Pos: posOf(t), Index: idx, Left: expr, Type: "Index"}
		default:
			return expr
		}
	}
}

func (p *Parser) primary() Expr {
	t := p.cur()
	pos := posOf(t)
	switch t.Type {
	case lexer.TRUE:
		p.next()
		return Literal{Pos: pos, Kind: BoolLit, Type: "Literal", Value: true}
	case lexer.FALSE:
		p.next()
		return Literal{Pos: pos, Kind: BoolLit, Type: "Literal", Value: false}
	case lexer.NULL:
		p.next()
		return Literal{Pos: pos, Kind: NullLit, Type: "Literal", Value: nil}
	case lexer.NUMBER:
		p.next()
		return numberLiteral(t)
	case lexer.STRING:
		p.next()
		return Literal{Pos: pos, Kind: StringLit, Type: "Literal", Value: t.Lit}
	case lexer.IDENT:
		p.next()
		return Identifier{Pos: pos, Name: t.Lit, Type: "Identifier"}
	case "(":
		p.next()
		expr := p.expression()
		p.expect(")", "')' की अपेक्षा")
		return expr
	case "[":
		p.next()
		items := make([]Expr, 0)
		if !p.check("]") {
			for {
				items = append(items, p.expression())
				if !p.match(",") {
					break
				}
			}
		}
		p.expect("]", "']' की अपेक्षा")
		return ListLit{Pos: pos, Items: items, Type: "List"}
	case lexer.EOF:
		panic(langerr.NewSyntax(t.Line, t.Col, "अप्रत्याशित अंत"))
	}
	panic(langerr.NewSyntax(t.Line, t.Col, "अप्रत्याशित टोकन '%s'", strings.TrimSpace(t.Lit)))
}

// numberLiteral converts a NUMBER token, mapping the Devanagari numeral
// alphabet to ASCII first. A decimal point selects a float.
func numberLiteral(t lexer.Token) Literal {
	text := lexer.NormalizeDigits(t.Lit)
	pos := posOf(t)
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			panic(langerr.NewSyntax(t.Line, t.Col, "अवैध संख्या '%s'", t.Lit))
		}
		return Literal{Pos: pos, Kind: FloatLit, Type: "Literal", Value: f}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		panic(langerr.NewSyntax(t.Line, t.Col, "अवैध संख्या '%s'", t.Lit))
	}
	return Literal{Pos: pos, Kind: IntLit, Type: "Literal", Value: n}
}

// ParseNumber converts numeric text in either numeral alphabet the same way
// literals are converted.
func ParseNumber(text string) (any, bool) {
	text = lexer.NormalizeDigits(strings.TrimSpace(text))
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		return f, err == nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	return n, err == nil
}
