package evaluator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/golang/groupcache/lru"

	"sanskrit-lang/impl/internal/langerr"
	"sanskrit-lang/impl/internal/lexer"
	"sanskrit-lang/impl/internal/parser"
	"sanskrit-lang/impl/internal/varna"
)

const (
	selfName = "स्व"
	initName = "प्रारम्भ"
	maxDepth = 10000
)

type signalKind int

const (
	sigNormal signalKind = iota
	sigReturn
	sigBreak
	sigContinue
)

// signal is the control outcome of executing a statement.
type signal struct {
	kind  signalKind
	value Value
}

var normal = signal{}

// Evaluator runs programs against a single global environment, writing
// program output to out and uncaught errors to errOut.
type Evaluator struct {
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
	fs     billy.Filesystem
	log    *slog.Logger

	globals *Env
	env     *Env
	depth   int
	src     string

	typeAdvice  bool
	diagnostics bool
	lenient     bool
	snippets    bool
	cache       *lru.Cache
}

type Option func(*Evaluator)

// WithErrorWriter sets where rendered errors and diagnostics go. Defaults to stderr.
func WithErrorWriter(w io.Writer) Option { return func(ev *Evaluator) { ev.errOut = w } }

// WithInput sets the reader behind प्रवेश.पाठ. Defaults to stdin.
func WithInput(r io.Reader) Option { return func(ev *Evaluator) { ev.in = bufio.NewReader(r) } }

// WithFS sets the filesystem used by the प्रवेश file functions.
func WithFS(fs billy.Filesystem) Option { return func(ev *Evaluator) { ev.fs = fs } }

func WithLogger(l *slog.Logger) Option { return func(ev *Evaluator) { ev.log = l } }

// WithTypeAdvice logs a warning for binary operations the varna table rejects.
// Evaluation is never blocked.
func WithTypeAdvice() Option { return func(ev *Evaluator) { ev.typeAdvice = true } }

// WithDiagnostics prints parser diagnostics for discarded statements.
func WithDiagnostics() Option { return func(ev *Evaluator) { ev.diagnostics = true } }

// WithLenientArity pads missing arguments with शून्य and ignores extras.
func WithLenientArity() Option { return func(ev *Evaluator) { ev.lenient = true } }

// WithParseCache keeps up to n parsed programs keyed by source text.
func WithParseCache(n int) Option {
	return func(ev *Evaluator) {
		if n > 0 {
			ev.cache = lru.New(n)
		}
	}
}

func WithSourceSnippets() Option { return func(ev *Evaluator) { ev.snippets = true } }

func New(w io.Writer, opts ...Option) *Evaluator {
	ev := &Evaluator{out: w, errOut: os.Stderr}
	for _, o := range opts {
		o(ev)
	}
	if ev.in == nil {
		ev.in = bufio.NewReader(os.Stdin)
	}
	if ev.fs == nil {
		ev.fs = osfs.New("/")
	}
	if ev.log == nil {
		ev.log = slog.New(slog.DiscardHandler)
	}
	ev.globals = NewEnv(nil)
	ev.env = ev.globals
	ev.defineBuiltins()
	return ev
}

// Lookup resolves a global binding.
func (ev *Evaluator) Lookup(name string) (Value, error) { return ev.globals.Get(name) }

type parsed struct {
	prog  parser.Program
	diags []*langerr.Error
}

func (ev *Evaluator) parse(src string) parsed {
	if ev.cache != nil {
		if v, ok := ev.cache.Get(src); ok {
			ev.log.Debug("parse cache hit", "bytes", len(src))
			return v.(parsed)
		}
	}
	p := parser.New(lexer.Lex(src))
	res := parsed{prog: p.ParseProgram(), diags: p.Diagnostics()}
	if ev.cache != nil {
		ev.cache.Add(src, res)
	}
	return res
}

// Execute lexes, parses and interprets src against the evaluator's global
// environment.
func (ev *Evaluator) Execute(src string) error {
	res := ev.parse(src)
	for _, d := range res.diags {
		ev.log.Debug("statement discarded", "line", d.Line, "col", d.Col, "reason", d.Msg)
		if ev.diagnostics {
			ev.report(d, src)
		}
	}
	ev.src = src
	defer func() { ev.src = "" }()
	return ev.Interpret(res.prog)
}

// Interpret runs the program's statements in order. The first error stops
// execution; it is written to the error writer and returned.
func (ev *Evaluator) Interpret(prog parser.Program) error {
	ev.log.Debug("execute", "statements", len(prog.Statements))
	for _, st := range prog.Statements {
		if _, err := ev.exec(st); err != nil {
			ev.report(err, ev.src)
			ev.env = ev.globals
			ev.depth = 0
			return err
		}
	}
	return nil
}

func (ev *Evaluator) report(err error, src string) {
	msg := err.Error()
	if ev.snippets && src != "" {
		msg = strings.TrimRight(langerr.Snippet(src, err), "\n")
	}
	fmt.Fprintln(ev.errOut, msg)
}

// locate stamps err with n's position unless a deeper node already did.
func locate(err error, n parser.Node) error {
	var le *langerr.Error
	if errors.As(err, &le) {
		p := n.Position()
		le.At(p.Line, p.Col)
	}
	return err
}

func (ev *Evaluator) exec(st parser.Statement) (sig signal, err error) {
	defer func() {
		if err != nil {
			err = locate(err, st)
		}
	}()
	switch s := st.(type) {
	case parser.ExpressionStmt:
		_, err := ev.eval(s.Value)
		return normal, err
	case parser.Declaration:
		v, err := ev.eval(s.Value)
		if err != nil {
			return normal, err
		}
		ev.env.Assign(s.Name.Name, v)
		return normal, nil
	case parser.Block:
		return ev.execBlock(s.Statements, NewEnv(ev.env))
	case parser.IfStmt:
		c, err := ev.eval(s.Condition)
		if err != nil {
			return normal, err
		}
		if isTruthy(c) {
			return ev.exec(s.Consequence)
		}
		if s.Alternative != nil {
			return ev.exec(*s.Alternative)
		}
		return normal, nil
	case parser.WhileStmt:
		for {
			c, err := ev.eval(s.Condition)
			if err != nil {
				return normal, err
			}
			if !isTruthy(c) {
				return normal, nil
			}
			sig, err := ev.exec(s.Body)
			if err != nil {
				return normal, err
			}
			switch sig.kind {
			case sigBreak:
				return normal, nil
			case sigReturn:
				return sig, nil
			}
		}
	case parser.ForStmt:
		it, err := ev.eval(s.Iterable)
		if err != nil {
			return normal, err
		}
		items, err := iterate(it)
		if err != nil {
			return normal, err
		}
		for _, item := range items {
			ev.env.Define(s.Variable.Name, item)
			sig, err := ev.exec(s.Body)
			if err != nil {
				return normal, err
			}
			switch sig.kind {
			case sigBreak:
				return normal, nil
			case sigReturn:
				return sig, nil
			}
		}
		return normal, nil
	case parser.FunctionDef:
		ev.env.Define(s.Name.Name, ev.function(s))
		return normal, nil
	case parser.ReturnStmt:
		var v Value = Null{}
		if s.Value != nil {
			if v, err = ev.eval(s.Value); err != nil {
				return normal, err
			}
		}
		return signal{kind: sigReturn, value: v}, nil
	case parser.BreakStmt:
		return signal{kind: sigBreak}, nil
	case parser.ContinueStmt:
		return signal{kind: sigContinue}, nil
	case parser.ClassDef:
		c := &Class{Name: s.Name.Name, Methods: map[string]*Function{}}
		if s.Superclass != nil {
			v, err := ev.env.Get(s.Superclass.Name)
			if err != nil {
				return normal, locate(err, s.Superclass)
			}
			super, ok := v.(*Class)
			if !ok {
				return normal, langerr.NewType("'%s' वर्ग नहीं है", s.Superclass.Name).At(s.Superclass.Line, s.Superclass.Col)
			}
			c.Super = super
		}
		for _, m := range s.Methods {
			c.Methods[m.Name.Name] = ev.function(m)
		}
		ev.env.Define(c.Name, c)
		return normal, nil
	case parser.ImportStmt:
		m, err := ev.importModule(s.Module)
		if err != nil {
			return normal, err
		}
		ev.env.Define(s.Module, m)
		return normal, nil
	}
	return normal, langerr.NewRuntime("अज्ञात कथन %T", st)
}

// execBlock runs stmts in env and restores the previous environment on every
// exit path.
func (ev *Evaluator) execBlock(stmts []parser.Statement, env *Env) (signal, error) {
	outer := ev.env
	ev.env = env
	defer func() { ev.env = outer }()
	for _, st := range stmts {
		sig, err := ev.exec(st)
		if err != nil || sig.kind != sigNormal {
			return sig, err
		}
	}
	return normal, nil
}

func (ev *Evaluator) function(def parser.FunctionDef) *Function {
	params := make([]string, len(def.Parameters))
	for i, p := range def.Parameters {
		params[i] = p.Name
	}
	return &Function{Name: def.Name.Name, Params: params, Body: def.Body, Closure: ev.env}
}

func iterate(v Value) ([]Value, error) {
	switch x := v.(type) {
	case *List:
		return append([]Value(nil), x.Items...), nil
	case Str:
		var out []Value
		for _, r := range x.V {
			out = append(out, Str{V: string(r)})
		}
		return out, nil
	}
	return nil, langerr.NewRuntime("'%s' पर पुनरावृत्ति संभव नहीं", TypeName(v))
}

func (ev *Evaluator) eval(e parser.Expr) (v Value, err error) {
	defer func() {
		if err != nil {
			err = locate(err, e)
		}
	}()
	switch x := e.(type) {
	case parser.Literal:
		switch x.Kind {
		case parser.IntLit:
			return Int{V: x.Value.(int64)}, nil
		case parser.FloatLit:
			return Float{V: x.Value.(float64)}, nil
		case parser.StringLit:
			return Str{V: x.Value.(string)}, nil
		case parser.BoolLit:
			return Bool{V: x.Value.(bool)}, nil
		}
		return Null{}, nil
	case parser.Identifier:
		return ev.env.Get(x.Name)
	case parser.BinaryOp:
		l, err := ev.eval(x.Left)
		if err != nil {
			return nil, err
		}
		r, err := ev.eval(x.Right)
		if err != nil {
			return nil, err
		}
		if ev.typeAdvice {
			ev.advise(x, l, r)
		}
		return ev.binary(x.Operator, l, r)
	case parser.UnaryOp:
		v, err := ev.eval(x.Operand)
		if err != nil {
			return nil, err
		}
		if x.Operator == "-" {
			return ev.negate(v)
		}
		return Bool{V: !isTruthy(v)}, nil
	case parser.Assignment:
		v, err := ev.eval(x.Value)
		if err != nil {
			return nil, err
		}
		ev.env.Assign(x.Name.Name, v)
		return v, nil
	case parser.CallExpr:
		callee, err := ev.eval(x.Function)
		if err != nil {
			return nil, err
		}
		args := make([]Value, 0, len(x.Arguments))
		for _, a := range x.Arguments {
			v, err := ev.eval(a)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return ev.call(callee, args)
	case parser.ListLit:
		items := make([]Value, 0, len(x.Items))
		for _, it := range x.Items {
			v, err := ev.eval(it)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return &List{Items: items}, nil
	case parser.IndexExpr:
		l, err := ev.eval(x.Left)
		if err != nil {
			return nil, err
		}
		i, err := ev.eval(x.Index)
		if err != nil {
			return nil, err
		}
		return index(l, i)
	case parser.AttributeExpr:
		obj, err := ev.eval(x.Object)
		if err != nil {
			return nil, err
		}
		return attribute(obj, x.Name)
	case parser.SetAttribute:
		obj, err := ev.eval(x.Object)
		if err != nil {
			return nil, err
		}
		v, err := ev.eval(x.Value)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, langerr.NewAttribute(TypeName(obj), x.Name)
		}
		inst.Fields.Put(x.Name, v)
		return v, nil
	case parser.SetIndex:
		l, err := ev.eval(x.Left)
		if err != nil {
			return nil, err
		}
		i, err := ev.eval(x.Index)
		if err != nil {
			return nil, err
		}
		v, err := ev.eval(x.Value)
		if err != nil {
			return nil, err
		}
		list, ok := l.(*List)
		if !ok {
			return nil, langerr.NewType("'%s' में सूचकांक असाइनमेंट संभव नहीं", TypeName(l))
		}
		n, err := position(i, len(list.Items))
		if err != nil {
			return nil, err
		}
		list.Items[n] = v
		return v, nil
	}
	return nil, langerr.NewRuntime("अज्ञात अभिव्यक्ति %T", e)
}

func (ev *Evaluator) advise(op parser.BinaryOp, l, r Value) {
	lv, rv := VarnaOf(l), VarnaOf(r)
	if !varna.CheckOperation(op.Operator, lv, rv) {
		ev.log.Warn("type advice", "operator", op.Operator, "left", lv.String(), "right", rv.String(), "line", op.Line, "col", op.Col)
	}
}

// position resolves a possibly negative index against size.
func position(i Value, size int) (int, error) {
	n, ok := i.(Int)
	if !ok {
		return 0, langerr.NewType("सूचकांक पूर्ण संख्या होना चाहिए, %s मिला", TypeName(i))
	}
	idx := int(n.V)
	if idx < 0 {
		idx += size
	}
	if idx < 0 || idx >= size {
		return 0, langerr.NewIndex(int(n.V), size)
	}
	return idx, nil
}

func index(l, i Value) (Value, error) {
	switch x := l.(type) {
	case *List:
		n, err := position(i, len(x.Items))
		if err != nil {
			return nil, err
		}
		return x.Items[n], nil
	case Str:
		runes := []rune(x.V)
		n, err := position(i, len(runes))
		if err != nil {
			return nil, err
		}
		return Str{V: string(runes[n])}, nil
	}
	return nil, langerr.NewType("'%s' सूचकांक योग्य नहीं है", TypeName(l))
}

func attribute(obj Value, name string) (Value, error) {
	switch o := obj.(type) {
	case *Instance:
		if v, ok := o.Fields.Get(name); ok {
			return v.(Value), nil
		}
		if m := o.Class.findMethod(name); m != nil {
			return &BoundMethod{Self: o, Fn: m}, nil
		}
	case *Class:
		if m := o.findMethod(name); m != nil {
			return m, nil
		}
	case *Module:
		if v, ok := o.Members.Get(name); ok {
			return v.(Value), nil
		}
	}
	return nil, langerr.NewAttribute(TypeName(obj), name)
}

func (ev *Evaluator) call(callee Value, args []Value) (Value, error) {
	switch f := callee.(type) {
	case *Builtin:
		return f.Fn(ev, args)
	case *Function:
		return ev.callFunction(f, args, nil)
	case *BoundMethod:
		return ev.callFunction(f.Fn, args, f.Self)
	case *Class:
		return ev.instantiate(f, args)
	}
	return nil, langerr.NewRuntime("'%s' कॉल करने योग्य नहीं है", TypeName(callee))
}

func (ev *Evaluator) callFunction(f *Function, args []Value, self *Instance) (Value, error) {
	if !ev.lenient && len(args) != len(f.Params) {
		return nil, langerr.NewRuntime("'%s' को %d तर्क चाहिए, %d मिले", f.Name, len(f.Params), len(args))
	}
	if ev.depth >= maxDepth {
		return nil, langerr.NewRuntime("अधिकतम पुनरावर्तन गहराई पार हो गई")
	}
	ev.depth++
	defer func() { ev.depth-- }()

	env := NewEnv(f.Closure)
	if self != nil {
		env.Define(selfName, self)
	}
	for i, p := range f.Params {
		if i < len(args) {
			env.Define(p, args[i])
		} else {
			env.Define(p, Null{})
		}
	}
	sig, err := ev.execBlock(f.Body.Statements, env)
	if err != nil {
		return nil, err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return Null{}, nil
}

func (ev *Evaluator) instantiate(c *Class, args []Value) (Value, error) {
	obj := newInstance(c)
	if init := c.findMethod(initName); init != nil {
		if _, err := ev.callFunction(init, args, obj); err != nil {
			return nil, err
		}
		return obj, nil
	}
	if len(args) > 0 && !ev.lenient {
		return nil, langerr.NewRuntime("'%s' कोई तर्क नहीं लेता, %d मिले", c.Name, len(args))
	}
	return obj, nil
}
