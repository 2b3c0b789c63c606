package parser

import (
	"bytes"
	"strconv"
	"strings"

	"aiscript/pkg/lexer"
)

// NodeKind tags every AST node for dispatch and diagnostics.
type NodeKind string

const (
	ProgramNode              NodeKind = "Program"
	VariableDeclarationNode  NodeKind = "VariableDeclaration"
	IdentifierNode           NodeKind = "Identifier"
	NumericLiteralNode       NodeKind = "NumericLiteral"
	ArrayLiteralNode         NodeKind = "ArrayLiteral"
	BinaryExpressionNode     NodeKind = "BinaryExpression"
	CallExpressionNode       NodeKind = "CallExpression"
	MemberExpressionNode     NodeKind = "MemberExpression"
	AssignmentExpressionNode NodeKind = "AssignmentExpression"
	IfStatementNode          NodeKind = "IfStatement"
	WhileStatementNode       NodeKind = "WhileStatement"
	BlockStatementNode       NodeKind = "BlockStatement"
)

// --- Interfaces ---

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string // Returns the literal value of the token associated with the node
	String() string       // Returns the node in source form (for debugging)
	Kind() NodeKind
	Accept(v Visitor)
}

// Statement is any node valid in a block body.
type Statement interface {
	Node
	statementNode()
}

// Expression is any value-producing node. Every expression is also a valid
// statement.
type Expression interface {
	Statement
	expressionNode()
}

// Visitor has one method per node kind. Implementations are checked by the
// compiler to cover every kind.
type Visitor interface {
	VisitProgram(*Program)
	VisitVariableDeclaration(*VariableDeclaration)
	VisitIdentifier(*Identifier)
	VisitNumericLiteral(*NumericLiteral)
	VisitArrayLiteral(*ArrayLiteral)
	VisitBinaryExpression(*BinaryExpression)
	VisitCallExpression(*CallExpression)
	VisitMemberExpression(*MemberExpression)
	VisitAssignmentExpression(*AssignmentExpression)
	VisitIfStatement(*IfStatement)
	VisitWhileStatement(*WhileStatement)
	VisitBlockStatement(*BlockStatement)
}

// --- Program Node ---

// Program is the root node of the AST.
type Program struct {
	Body []Statement
}

func (p *Program) statementNode()   {}
func (p *Program) Kind() NodeKind   { return ProgramNode }
func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Body) > 0 {
		return p.Body[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Body {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Statement Nodes ---

// VariableDeclaration represents `let <Identifier> = <Value>` or the const form.
type VariableDeclaration struct {
	Token      lexer.Token // The lexer.LET or lexer.CONST token
	Constant   bool
	Identifier string
	Value      Expression // nil only for trees built outside the parser
}

func (vd *VariableDeclaration) statementNode()       {}
func (vd *VariableDeclaration) Kind() NodeKind       { return VariableDeclarationNode }
func (vd *VariableDeclaration) Accept(v Visitor)     { v.VisitVariableDeclaration(vd) }
func (vd *VariableDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VariableDeclaration) String() string {
	var out bytes.Buffer
	if vd.Constant {
		out.WriteString("const ")
	} else {
		out.WriteString("let ")
	}
	out.WriteString(vd.Identifier)
	if vd.Value != nil {
		out.WriteString(" = ")
		out.WriteString(vd.Value.String())
	}
	return out.String()
}

// IfStatement represents `if (<Condition>) <Consequence> else <Alternate>`.
type IfStatement struct {
	Token       lexer.Token // The 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternate   *BlockStatement // optional
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) Kind() NodeKind       { return IfStatementNode }
func (is *IfStatement) Accept(v Visitor)     { v.VisitIfStatement(is) }
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Consequence.String())
	if is.Alternate != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternate.String())
	}
	return out.String()
}

// WhileStatement represents `while (<Condition>) <Body>`.
type WhileStatement struct {
	Token     lexer.Token // The 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) Kind() NodeKind       { return WhileStatementNode }
func (ws *WhileStatement) Accept(v Visitor)     { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// BlockStatement represents a braced statement list.
type BlockStatement struct {
	Token lexer.Token // The '{' token
	Body  []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) Kind() NodeKind       { return BlockStatementNode }
func (bs *BlockStatement) Accept(v Visitor)     { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	parts := make([]string, 0, len(bs.Body))
	for _, s := range bs.Body {
		parts = append(parts, s.String())
	}
	if len(parts) == 0 {
		return "{ }"
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// --- Expression Nodes ---

// Identifier represents a name.
type Identifier struct {
	Token  lexer.Token // The lexer.IDENT token
	Symbol string
}

func (i *Identifier) statementNode()       {}
func (i *Identifier) expressionNode()      {}
func (i *Identifier) Kind() NodeKind       { return IdentifierNode }
func (i *Identifier) Accept(v Visitor)     { v.VisitIdentifier(i) }
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Symbol }

// NumericLiteral represents an integer literal. The lexeme keeps leading
// zeros; Value does not.
type NumericLiteral struct {
	Token lexer.Token // The lexer.NUMBER token
	Value float64
}

func (nl *NumericLiteral) statementNode()       {}
func (nl *NumericLiteral) expressionNode()      {}
func (nl *NumericLiteral) Kind() NodeKind       { return NumericLiteralNode }
func (nl *NumericLiteral) Accept(v Visitor)     { v.VisitNumericLiteral(nl) }
func (nl *NumericLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumericLiteral) String() string {
	if nl.Token.Literal != "" {
		return nl.Token.Literal
	}
	return strconv.FormatFloat(nl.Value, 'g', -1, 64)
}

// ArrayLiteral represents `[<Elements>]`.
type ArrayLiteral struct {
	Token    lexer.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) statementNode()       {}
func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) Kind() NodeKind       { return ArrayLiteralNode }
func (al *ArrayLiteral) Accept(v Visitor)     { v.VisitArrayLiteral(al) }
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) String() string {
	return "[" + joinExpressions(al.Elements) + "]"
}

// BinaryExpression represents `<Left> <Operator> <Right>`, including the
// tensor operator '@'.
type BinaryExpression struct {
	Token    lexer.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) statementNode()       {}
func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) Kind() NodeKind       { return BinaryExpressionNode }
func (be *BinaryExpression) Accept(v Visitor)     { v.VisitBinaryExpression(be) }
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}

// CallExpression represents `<Caller>(<Args>)`.
type CallExpression struct {
	Token  lexer.Token // The '(' token
	Caller Expression
	Args   []Expression
}

func (ce *CallExpression) statementNode()       {}
func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) Kind() NodeKind       { return CallExpressionNode }
func (ce *CallExpression) Accept(v Visitor)     { v.VisitCallExpression(ce) }
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	return ce.Caller.String() + "(" + joinExpressions(ce.Args) + ")"
}

// MemberExpression represents `<Object>.<Property>`. The parser only
// produces non-computed members whose Property is an *Identifier.
type MemberExpression struct {
	Token    lexer.Token // The '.' token
	Object   Expression
	Property Expression
	Computed bool
}

func (me *MemberExpression) statementNode()       {}
func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) Kind() NodeKind       { return MemberExpressionNode }
func (me *MemberExpression) Accept(v Visitor)     { v.VisitMemberExpression(me) }
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) String() string {
	if me.Computed {
		return me.Object.String() + "[" + me.Property.String() + "]"
	}
	return me.Object.String() + "." + me.Property.String()
}

// AssignmentExpression represents `<Assignee> = <Value>`.
type AssignmentExpression struct {
	Token    lexer.Token // The '=' token
	Assignee Expression
	Value    Expression
}

func (ae *AssignmentExpression) statementNode()       {}
func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) Kind() NodeKind       { return AssignmentExpressionNode }
func (ae *AssignmentExpression) Accept(v Visitor)     { v.VisitAssignmentExpression(ae) }
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignmentExpression) String() string {
	return "(" + ae.Assignee.String() + " = " + ae.Value.String() + ")"
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
