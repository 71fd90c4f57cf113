package parser

// Ordered JSON fields are ensured by struct field order.

// Pos is a 1-based source position.
type Pos struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

func (p Pos) Position() Pos { return p }

// Node is implemented by every AST node.
type Node interface{ Position() Pos }

// Program is the root AST node.
type Program struct {
	Statements []Statement `json:"statements"`
	Type       string      `json:"type"`
}

// Statement is a marker interface.
type Statement interface {
	Node
	isStatement()
}

// Expr is a marker interface for expressions.
type Expr interface {
	Node
	isExpr()
}

// Statements

// Declaration covers both declaration keywords; Const is informational only.
type Declaration struct {
	Pos
	Name  Identifier `json:"name"`
	Const bool       `json:"const"`
	Type  string     `json:"type"`
	Value Expr       `json:"value"`
}

func (Declaration) isStatement() {}

type ExpressionStmt struct {
	Pos
	Type  string `json:"type"`
	Value Expr   `json:"value"`
}

func (ExpressionStmt) isStatement() {}

type Block struct {
	Pos
	Statements []Statement `json:"statements"`
	Type       string      `json:"type"`
}

func (Block) isStatement() {}

type IfStmt struct {
	Pos
	Alternative *Block `json:"alternative"`
	Condition   Expr   `json:"condition"`
	Consequence Block  `json:"consequence"`
	Type        string `json:"type"`
}

func (IfStmt) isStatement() {}

type WhileStmt struct {
	Pos
	Body      Block  `json:"body"`
	Condition Expr   `json:"condition"`
	Type      string `json:"type"`
}

func (WhileStmt) isStatement() {}

type ForStmt struct {
	Pos
	Body     Block      `json:"body"`
	Iterable Expr       `json:"iterable"`
	Type     string     `json:"type"`
	Variable Identifier `json:"variable"`
}

func (ForStmt) isStatement() {}

type FunctionDef struct {
	Pos
	Body       Block        `json:"body"`
	Name       Identifier   `json:"name"`
	Parameters []Identifier `json:"parameters"`
	Type       string       `json:"type"`
}

func (FunctionDef) isStatement() {}

type ReturnStmt struct {
	Pos
	Type  string `json:"type"`
	Value Expr   `json:"value"`
}

func (ReturnStmt) isStatement() {}

type BreakStmt struct {
	Pos
	Type string `json:"type"`
}

func (BreakStmt) isStatement() {}

type ContinueStmt struct {
	Pos
	Type string `json:"type"`
}

func (ContinueStmt) isStatement() {}

type ClassDef struct {
	Pos
	Methods    []FunctionDef `json:"methods"`
	Name       Identifier    `json:"name"`
	Superclass *Identifier   `json:"superclass"`
	Type       string        `json:"type"`
}

func (ClassDef) isStatement() {}

// ImportStmt keeps Alias and Names for the reserved "से" form; the parser
// leaves both nil.
type ImportStmt struct {
	Pos
	Alias  *string  `json:"alias"`
	Module string   `json:"module"`
	Names  []string `json:"names"`
	Type   string   `json:"type"`
}

func (ImportStmt) isStatement() {}

// Expressions

type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	NullLit
)

// Literal holds int64, float64, string, bool or nil according to Kind.
type Literal struct {
	Pos
	Kind  LiteralKind `json:"kind"`
	Type  string      `json:"type"`
	Value any         `json:"value"`
}

func (Literal) isExpr() {}

type Identifier struct {
	Pos
	Name string `json:"name"`
	Type string `json:"type"`
}

func (Identifier) isExpr() {}

type BinaryOp struct {
	Pos
	Left     Expr   `json:"left"`
	Operator string `json:"operator"`
	Right    Expr   `json:"right"`
	Type     string `json:"type"`
}

func (BinaryOp) isExpr() {}

// UnaryOp operators are "-" and "न".
type UnaryOp struct {
	Pos
	Operand  Expr   `json:"operand"`
	Operator string `json:"operator"`
	Type     string `json:"type"`
}

func (UnaryOp) isExpr() {}

type Assignment struct {
	Pos
	Name  Identifier `json:"name"`
	Type  string     `json:"type"`
	Value Expr       `json:"value"`
}

func (Assignment) isExpr() {}

type CallExpr struct {
	Pos
	Arguments []Expr `json:"arguments"`
	Function  Expr   `json:"function"`
	Type      string `json:"type"`
}

func (CallExpr) isExpr() {}

type ListLit struct {
	Pos
	Items []Expr `json:"items"`
	Type  string `json:"type"`
}

func (ListLit) isExpr() {}

type IndexExpr struct {
	Pos
	Index Expr   `json:"index"`
	Left  Expr   `json:"left"`
	Type  string `json:"type"`
}

func (IndexExpr) isExpr() {}

type AttributeExpr struct {
	Pos
	Name   string `json:"name"`
	Object Expr   `json:"object"`
	Type   string `json:"type"`
}

func (AttributeExpr) isExpr() {}

type SetAttribute struct {
	Pos
	Name   string `json:"name"`
	Object Expr   `json:"object"`
	Type   string `json:"type"`
	Value  Expr   `json:"value"`
}

func (SetAttribute) isExpr() {}

type SetIndex struct {
	Pos
	Index Expr   `json:"index"`
	Left  Expr   `json:"left"`
	Type  string `json:"type"`
	Value Expr   `json:"value"`
}

func (SetIndex) isExpr() {}
