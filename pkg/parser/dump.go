package parser

import (
	"fmt"
	"io"
	"strings"
)

// DumpAST writes an indented tree of node kinds and their scalar fields to w.
func DumpAST(w io.Writer, node Node) {
	d := &dumper{w: w}
	d.node("", node)
}

type dumper struct {
	w     io.Writer
	depth int
	label string
}

func (d *dumper) line(format string, args ...interface{}) {
	fmt.Fprintf(d.w, "%s%s", strings.Repeat("  ", d.depth), d.label)
	fmt.Fprintf(d.w, format, args...)
	fmt.Fprintln(d.w)
	d.label = ""
}

// node dumps n one level deeper, prefixed by label.
func (d *dumper) node(label string, n Node) {
	if n == nil {
		return
	}
	d.label = label
	n.Accept(d)
}

func (d *dumper) children(label string, nodes ...Node) {
	d.depth++
	for _, n := range nodes {
		d.node(label, n)
	}
	d.depth--
}

func (d *dumper) statements(label string, stmts []Statement) {
	d.depth++
	for _, s := range stmts {
		d.node(label, s)
	}
	d.depth--
}

func (d *dumper) expressions(label string, exprs []Expression) {
	d.depth++
	for _, e := range exprs {
		d.node(label, e)
	}
	d.depth--
}

func (d *dumper) VisitProgram(n *Program) {
	d.line("Program")
	d.statements("", n.Body)
}

func (d *dumper) VisitVariableDeclaration(n *VariableDeclaration) {
	d.line("VariableDeclaration %s (constant=%t)", n.Identifier, n.Constant)
	if n.Value != nil {
		d.children("value: ", n.Value)
	}
}

func (d *dumper) VisitIdentifier(n *Identifier) {
	d.line("Identifier %s", n.Symbol)
}

func (d *dumper) VisitNumericLiteral(n *NumericLiteral) {
	d.line("NumericLiteral %s", n.String())
}

func (d *dumper) VisitArrayLiteral(n *ArrayLiteral) {
	d.line("ArrayLiteral (%d elements)", len(n.Elements))
	d.expressions("", n.Elements)
}

func (d *dumper) VisitBinaryExpression(n *BinaryExpression) {
	d.line("BinaryExpression %s", n.Operator)
	d.children("left: ", n.Left)
	d.children("right: ", n.Right)
}

func (d *dumper) VisitCallExpression(n *CallExpression) {
	d.line("CallExpression (%d args)", len(n.Args))
	d.children("caller: ", n.Caller)
	d.expressions("arg: ", n.Args)
}

func (d *dumper) VisitMemberExpression(n *MemberExpression) {
	d.line("MemberExpression (computed=%t)", n.Computed)
	d.children("object: ", n.Object)
	d.children("property: ", n.Property)
}

func (d *dumper) VisitAssignmentExpression(n *AssignmentExpression) {
	d.line("AssignmentExpression")
	d.children("assignee: ", n.Assignee)
	d.children("value: ", n.Value)
}

func (d *dumper) VisitIfStatement(n *IfStatement) {
	d.line("IfStatement")
	d.children("condition: ", n.Condition)
	if n.Consequence != nil {
		d.children("consequence: ", n.Consequence)
	}
	if n.Alternate != nil {
		d.children("alternate: ", n.Alternate)
	}
}

func (d *dumper) VisitWhileStatement(n *WhileStatement) {
	d.line("WhileStatement")
	d.children("condition: ", n.Condition)
	if n.Body != nil {
		d.children("body: ", n.Body)
	}
}

func (d *dumper) VisitBlockStatement(n *BlockStatement) {
	d.line("BlockStatement")
	d.statements("", n.Body)
}
