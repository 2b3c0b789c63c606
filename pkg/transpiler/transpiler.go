package transpiler

import (
	"bytes"
	"fmt"
	"log/slog"

	"aiscript/pkg/errors"
	"aiscript/pkg/parser"
)

const (
	DefaultTensorFunc = "matMul"
	DefaultIndent     = "  "
)

// Options controls the shape of the emitted JavaScript.
type Options struct {
	// TensorFunc is the function '@' lowers to: a @ b becomes TensorFunc(a, b).
	TensorFunc string
	// Indent is written once per nesting level inside if, while and blocks.
	Indent string
	// Logger receives a Warn record for every skipped node.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by the package-level Transpile.
func DefaultOptions() Options {
	return Options{
		TensorFunc: DefaultTensorFunc,
		Indent:     DefaultIndent,
	}
}

// Transpiler lowers an AST to JavaScript source. It implements parser.Visitor;
// expression visits write the bare expression, statement visits write whole
// lines. A Transpiler is not safe for concurrent use.
type Transpiler struct {
	opts        Options
	indentLevel int
	buffer      bytes.Buffer
	warnings    []*errors.LoweringWarning
}

var _ parser.Visitor = (*Transpiler)(nil)

// New creates a Transpiler. Empty option fields take their defaults.
func New(opts Options) *Transpiler {
	if opts.TensorFunc == "" {
		opts.TensorFunc = DefaultTensorFunc
	}
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Transpiler{opts: opts}
}

// Transpile lowers program with default options.
func Transpile(program *parser.Program) string {
	return New(DefaultOptions()).Transpile(program)
}

// Transpile lowers every statement of program in order and returns the
// concatenated JavaScript. State from earlier calls is discarded, so the same
// tree always yields the same text.
func (t *Transpiler) Transpile(program *parser.Program) string {
	t.buffer.Reset()
	t.indentLevel = 0
	t.warnings = nil

	if program == nil {
		return ""
	}
	for _, stmt := range program.Body {
		t.emitStatement(stmt)
	}
	return t.buffer.String()
}

// Warnings returns the nodes skipped by the last Transpile call.
func (t *Transpiler) Warnings() []*errors.LoweringWarning {
	return t.warnings
}

// Helper methods

func (t *Transpiler) indent() {
	t.indentLevel++
}

func (t *Transpiler) dedent() {
	if t.indentLevel > 0 {
		t.indentLevel--
	}
}

func (t *Transpiler) writeIndent() {
	for i := 0; i < t.indentLevel; i++ {
		t.buffer.WriteString(t.opts.Indent)
	}
}

func (t *Transpiler) write(s string) {
	t.buffer.WriteString(s)
}

func (t *Transpiler) warn(node string) {
	w := &errors.LoweringWarning{Node: node}
	t.warnings = append(t.warnings, w)
	t.opts.Logger.Warn("lowering skipped node", "node", node)
}

// Statements

func (t *Transpiler) emitStatement(stmt parser.Statement) {
	switch s := stmt.(type) {
	case nil:
		t.warn("nil")
	case parser.Expression:
		t.writeIndent()
		t.emitExpression(s, precLowest)
		t.write(";\n")
	default:
		s.Accept(t)
	}
}

func (t *Transpiler) emitStatements(stmts []parser.Statement) {
	t.indent()
	for _, s := range stmts {
		t.emitStatement(s)
	}
	t.dedent()
}

// VisitProgram is only reached for a Program nested inside another tree;
// the root is walked by Transpile itself.
func (t *Transpiler) VisitProgram(p *parser.Program) {
	t.warn(string(parser.ProgramNode))
}

func (t *Transpiler) VisitVariableDeclaration(vd *parser.VariableDeclaration) {
	t.writeIndent()
	if vd.Constant {
		t.write("const ")
	} else {
		t.write("let ")
	}
	t.write(vd.Identifier)
	if vd.Value != nil {
		t.write(" = ")
		t.emitExpression(vd.Value, precAssign)
	}
	t.write(";\n")
}

func (t *Transpiler) VisitIfStatement(is *parser.IfStatement) {
	t.writeIndent()
	t.write("if (")
	t.emitExpression(is.Condition, precLowest)
	t.write(") ")
	t.emitBlockBody(is.Consequence)
	if is.Alternate != nil {
		t.write(" else ")
		t.emitBlockBody(is.Alternate)
	}
	t.write("\n")
}

func (t *Transpiler) VisitWhileStatement(ws *parser.WhileStatement) {
	t.writeIndent()
	t.write("while (")
	t.emitExpression(ws.Condition, precLowest)
	t.write(") ")
	t.emitBlockBody(ws.Body)
	t.write("\n")
}

func (t *Transpiler) VisitBlockStatement(bs *parser.BlockStatement) {
	t.writeIndent()
	t.emitBlockBody(bs)
	t.write("\n")
}

// emitBlockBody writes "{\n", the indented statements, and the closing brace
// at the current indentation, without a trailing newline.
func (t *Transpiler) emitBlockBody(bs *parser.BlockStatement) {
	t.write("{\n")
	if bs != nil {
		t.emitStatements(bs.Body)
	}
	t.writeIndent()
	t.write("}")
}

// Expressions

// Host precedence of each lowered form, loosest first. '@' lowers to a call
// and so binds like one.
const (
	precLowest = iota
	precAssign
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precCall
	precPrimary
)

func binaryPrecedence(op string) int {
	switch op {
	case "==":
		return precEquality
	case "<", ">":
		return precRelational
	case "+", "-":
		return precAdditive
	case "*", "/":
		return precMultiplicative
	case "@":
		return precCall
	}
	return precLowest
}

func precedence(expr parser.Expression) int {
	switch e := expr.(type) {
	case *parser.AssignmentExpression:
		return precAssign
	case *parser.BinaryExpression:
		return binaryPrecedence(e.Operator)
	case *parser.CallExpression, *parser.MemberExpression:
		return precCall
	}
	return precPrimary
}

// emitExpression writes expr, parenthesized when its host precedence is
// below minPrec.
func (t *Transpiler) emitExpression(expr parser.Expression, minPrec int) {
	if expr == nil {
		t.warn("nil")
		return
	}
	if precedence(expr) < minPrec {
		t.write("(")
		expr.Accept(t)
		t.write(")")
		return
	}
	expr.Accept(t)
}

func (t *Transpiler) emitExpressionList(exprs []parser.Expression) {
	for i, e := range exprs {
		if i > 0 {
			t.write(", ")
		}
		t.emitExpression(e, precAssign)
	}
}

func (t *Transpiler) VisitIdentifier(i *parser.Identifier) {
	t.write(i.Symbol)
}

func (t *Transpiler) VisitNumericLiteral(nl *parser.NumericLiteral) {
	t.write(formatNumber(nl.Value))
}

func (t *Transpiler) VisitArrayLiteral(al *parser.ArrayLiteral) {
	t.write("[")
	t.emitExpressionList(al.Elements)
	t.write("]")
}

func (t *Transpiler) VisitBinaryExpression(be *parser.BinaryExpression) {
	if be.Operator == "@" {
		t.write(t.opts.TensorFunc)
		t.write("(")
		t.emitExpressionList([]parser.Expression{be.Left, be.Right})
		t.write(")")
		return
	}

	prec := binaryPrecedence(be.Operator)
	t.emitExpression(be.Left, prec)
	fmt.Fprintf(&t.buffer, " %s ", be.Operator)
	t.emitExpression(be.Right, prec+1)
}

func (t *Transpiler) VisitCallExpression(ce *parser.CallExpression) {
	t.emitExpression(ce.Caller, precCall)
	t.write("(")
	t.emitExpressionList(ce.Args)
	t.write(")")
}

func (t *Transpiler) VisitMemberExpression(me *parser.MemberExpression) {
	// 1.x would read as a malformed number literal.
	if _, ok := me.Object.(*parser.NumericLiteral); ok {
		t.write("(")
		me.Object.Accept(t)
		t.write(")")
	} else {
		t.emitExpression(me.Object, precCall)
	}

	if me.Computed {
		t.write("[")
		t.emitExpression(me.Property, precLowest)
		t.write("]")
		return
	}
	t.write(".")
	t.emitExpression(me.Property, precPrimary)
}

func (t *Transpiler) VisitAssignmentExpression(ae *parser.AssignmentExpression) {
	t.emitExpression(ae.Assignee, precAssign+1)
	t.write(" = ")
	t.emitExpression(ae.Value, precAssign)
}
