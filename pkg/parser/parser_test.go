package parser

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"aiscript/pkg/errors"
	"aiscript/pkg/lexer"
)

func parseOrFail(t *testing.T, input string) *Program {
	t.Helper()
	program, err := ParseString(input)
	if err != nil {
		t.Fatalf("parser error for %q: %v", input, err)
	}
	return program
}

func TestVariableDeclaration(t *testing.T) {
	tests := []struct {
		input      string
		constant   bool
		identifier string
		value      string
	}{
		{"let x = 10 + 20", false, "x", "(10 + 20)"},
		{"const y = x", true, "y", "x"},
		{"let z = [1, 2]", false, "z", "[1, 2]"},
		{"let w = a = b", false, "w", "(a = b)"},
	}

	for _, tt := range tests {
		program := parseOrFail(t, tt.input)
		if len(program.Body) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.input, len(program.Body))
		}
		decl, ok := program.Body[0].(*VariableDeclaration)
		if !ok {
			t.Fatalf("%q: expected *VariableDeclaration, got %T", tt.input, program.Body[0])
		}
		if decl.Constant != tt.constant {
			t.Errorf("%q: constant wrong. expected=%t, got=%t", tt.input, tt.constant, decl.Constant)
		}
		if decl.Identifier != tt.identifier {
			t.Errorf("%q: identifier wrong. expected=%q, got=%q", tt.input, tt.identifier, decl.Identifier)
		}
		if decl.Value == nil {
			t.Fatalf("%q: value is nil", tt.input)
		}
		if got := decl.Value.String(); got != tt.value {
			t.Errorf("%q: value wrong. expected=%q, got=%q", tt.input, tt.value, got)
		}
	}
}

func TestDeclarationValueIsBinaryExpression(t *testing.T) {
	program := parseOrFail(t, "let x = 10 + 20")
	decl := program.Body[0].(*VariableDeclaration)
	bin, ok := decl.Value.(*BinaryExpression)
	if !ok {
		t.Fatalf("expected *BinaryExpression, got %T", decl.Value)
	}
	if bin.Operator != "+" {
		t.Errorf("operator wrong, got %q", bin.Operator)
	}
	left, ok := bin.Left.(*NumericLiteral)
	if !ok || left.Value != 10 {
		t.Errorf("left wrong, got %#v", bin.Left)
	}
	right, ok := bin.Right.(*NumericLiteral)
	if !ok || right.Value != 20 {
		t.Errorf("right wrong, got %#v", bin.Right)
	}
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b - c", "((a + b) - c)"},
		{"a * b / c", "((a * b) / c)"},
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"2 * 3 + 4", "((2 * 3) + 4)"},
		{"(2 + 3) * 4", "((2 + 3) * 4)"},
		{"a @ b @ c", "((a @ b) @ c)"},
		{"a + b @ c * d", "((a + b) @ (c * d))"},
		{"a < b == c", "((a < b) == c)"},
		{"a == b < c", "((a == b) < c)"},
		{"a @ b > c", "((a @ b) > c)"},
		{"a = b = c", "(a = (b = c))"},
		{"a = b + c", "(a = (b + c))"},
		{"a = b < c", "(a = (b < c))"},
		{"f(a + b) * c", "(f((a + b)) * c)"},
		{"a.b * c.d", "(a.b * c.d)"},
		{"((a))", "a"},
	}

	for _, tt := range tests {
		program := parseOrFail(t, tt.input)
		if len(program.Body) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.input, len(program.Body))
		}
		if got := program.Body[0].String(); got != tt.expected {
			t.Errorf("%q: expected=%q, got=%q", tt.input, tt.expected, got)
		}
	}
}

func TestLeftAssociativity(t *testing.T) {
	program := parseOrFail(t, "a + b - c")
	outer, ok := program.Body[0].(*BinaryExpression)
	if !ok {
		t.Fatalf("expected *BinaryExpression, got %T", program.Body[0])
	}
	if outer.Operator != "-" {
		t.Fatalf("outer operator wrong, got %q", outer.Operator)
	}
	inner, ok := outer.Left.(*BinaryExpression)
	if !ok || inner.Operator != "+" {
		t.Fatalf("left operand should be a + b, got %s", outer.Left)
	}
	if c, ok := outer.Right.(*Identifier); !ok || c.Symbol != "c" {
		t.Fatalf("right operand should be c, got %s", outer.Right)
	}
}

func TestRightAssociativeAssignment(t *testing.T) {
	program := parseOrFail(t, "a = b = c")
	outer, ok := program.Body[0].(*AssignmentExpression)
	if !ok {
		t.Fatalf("expected *AssignmentExpression, got %T", program.Body[0])
	}
	if a, ok := outer.Assignee.(*Identifier); !ok || a.Symbol != "a" {
		t.Fatalf("assignee should be a, got %s", outer.Assignee)
	}
	inner, ok := outer.Value.(*AssignmentExpression)
	if !ok {
		t.Fatalf("value should be b = c, got %T", outer.Value)
	}
	if b, ok := inner.Assignee.(*Identifier); !ok || b.Symbol != "b" {
		t.Errorf("inner assignee should be b, got %s", inner.Assignee)
	}
}

func TestCallOnMember(t *testing.T) {
	program := parseOrFail(t, "foo.bar(1, 2)")
	call, ok := program.Body[0].(*CallExpression)
	if !ok {
		t.Fatalf("expected *CallExpression, got %T", program.Body[0])
	}
	member, ok := call.Caller.(*MemberExpression)
	if !ok {
		t.Fatalf("expected caller *MemberExpression, got %T", call.Caller)
	}
	if member.Computed {
		t.Error("member should not be computed")
	}
	if obj, ok := member.Object.(*Identifier); !ok || obj.Symbol != "foo" {
		t.Errorf("object wrong, got %s", member.Object)
	}
	if prop, ok := member.Property.(*Identifier); !ok || prop.Symbol != "bar" {
		t.Errorf("property wrong, got %s", member.Property)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestCallAndMemberChains(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		kind     NodeKind
	}{
		{"a.b.c", "a.b.c", MemberExpressionNode},
		{"a.b.c(d)(e)", "a.b.c(d)(e)", CallExpressionNode},
		{"f()", "f()", CallExpressionNode},
		{"f()()", "f()()", CallExpressionNode},
		{"a.b(c).d", "a.b(c).d", MemberExpressionNode},
		{"(a + b).c", "(a + b).c", MemberExpressionNode},
		{"[1, 2].length", "[1, 2].length", MemberExpressionNode},
		{"print(x, [y], g(z))", "print(x, [y], g(z))", CallExpressionNode},
	}

	for _, tt := range tests {
		program := parseOrFail(t, tt.input)
		stmt := program.Body[0]
		if stmt.Kind() != tt.kind {
			t.Errorf("%q: kind wrong. expected=%s, got=%s", tt.input, tt.kind, stmt.Kind())
		}
		if got := stmt.String(); got != tt.expected {
			t.Errorf("%q: expected=%q, got=%q", tt.input, tt.expected, got)
		}
	}
}

func TestArrayLiteral(t *testing.T) {
	tests := []struct {
		input    string
		elements int
	}{
		{"[]", 0},
		{"[1]", 1},
		{"[1, 2, 3]", 3},
		{"[[1], [2, 3]]", 2},
		{"[a + b, f(c)]", 2},
	}

	for _, tt := range tests {
		program := parseOrFail(t, tt.input)
		arr, ok := program.Body[0].(*ArrayLiteral)
		if !ok {
			t.Fatalf("%q: expected *ArrayLiteral, got %T", tt.input, program.Body[0])
		}
		if len(arr.Elements) != tt.elements {
			t.Errorf("%q: expected %d elements, got %d", tt.input, tt.elements, len(arr.Elements))
		}
	}
}

func TestIfStatement(t *testing.T) {
	program := parseOrFail(t, `if (x < 10) { x = x + 1 } else { print(x) }`)
	stmt, ok := program.Body[0].(*IfStatement)
	if !ok {
		t.Fatalf("expected *IfStatement, got %T", program.Body[0])
	}
	if got := stmt.Condition.String(); got != "(x < 10)" {
		t.Errorf("condition wrong, got %q", got)
	}
	if len(stmt.Consequence.Body) != 1 {
		t.Fatalf("consequence should have 1 statement, got %d", len(stmt.Consequence.Body))
	}
	if _, ok := stmt.Consequence.Body[0].(*AssignmentExpression); !ok {
		t.Errorf("consequence statement wrong, got %T", stmt.Consequence.Body[0])
	}
	if stmt.Alternate == nil || len(stmt.Alternate.Body) != 1 {
		t.Fatalf("alternate wrong: %v", stmt.Alternate)
	}

	program = parseOrFail(t, `if (ok) { }`)
	stmt = program.Body[0].(*IfStatement)
	if stmt.Alternate != nil {
		t.Errorf("alternate should be nil, got %s", stmt.Alternate)
	}
	if len(stmt.Consequence.Body) != 0 {
		t.Errorf("consequence should be empty, got %d statements", len(stmt.Consequence.Body))
	}
}

func TestWhileStatement(t *testing.T) {
	program := parseOrFail(t, `
let i = 0
while (i < 3) {
	if (i == 1) { print(i) }
	i = i + 1
}`)
	if len(program.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Body))
	}
	stmt, ok := program.Body[1].(*WhileStatement)
	if !ok {
		t.Fatalf("expected *WhileStatement, got %T", program.Body[1])
	}
	if len(stmt.Body.Body) != 2 {
		t.Fatalf("body should have 2 statements, got %d", len(stmt.Body.Body))
	}
	if stmt.Body.Body[0].Kind() != IfStatementNode {
		t.Errorf("first body statement wrong, got %s", stmt.Body.Body[0].Kind())
	}
}

func TestStatementSequence(t *testing.T) {
	program := parseOrFail(t, "let a = 1; let b = 2\na + b;")
	expected := []NodeKind{VariableDeclarationNode, VariableDeclarationNode, BinaryExpressionNode}
	if len(program.Body) != len(expected) {
		t.Fatalf("expected %d statements, got %d", len(expected), len(program.Body))
	}
	for i, kind := range expected {
		if program.Body[i].Kind() != kind {
			t.Errorf("statement %d: expected %s, got %s", i, kind, program.Body[i].Kind())
		}
	}
}

func TestEmptyProgram(t *testing.T) {
	for _, input := range []string{"", "   ", ";;\n"} {
		program := parseOrFail(t, input)
		if len(program.Body) != 0 {
			t.Errorf("%q: expected empty body, got %d statements", input, len(program.Body))
		}
	}
}

func TestParseWithoutEOFToken(t *testing.T) {
	tokens := []lexer.Token{
		{Type: lexer.IDENT, Literal: "a"},
		{Type: lexer.PLUS, Literal: "+"},
		{Type: lexer.NUMBER, Literal: "1"},
	}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := program.String(); got != "(a + 1)\n" {
		t.Errorf("got %q", got)
	}
	if len(tokens) != 3 {
		t.Error("token slice was modified")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string // expected token kind, empty for "no primary expression"
		found    string
	}{
		{"let x", "=", "EOF"},
		{"let x 5", "=", `"5" (NUMBER)`},
		{"const = 5", "IDENT", `"=" (=)`},
		{"let 5 = x", "IDENT", `"5" (NUMBER)`},
		{"(a + b", ")", "EOF"},
		{"[1, 2", "]", "EOF"},
		{"[1, 2,]", "", `"]" (])`},
		{"f(1", ")", "EOF"},
		{"a.", "IDENT", "EOF"},
		{"a.5", "IDENT", `"5" (NUMBER)`},
		{"if x { }", "(", `"x" (IDENT)`},
		{"if (x) y", "{", `"y" (IDENT)`},
		{"if (x) { y", "}", "EOF"},
		{"if (x) { } else y", "{", `"y" (IDENT)`},
		{"while (x { }", ")", `"{" ({)`},
		{"+ 1", "", `"+" (+)`},
		{"a +", "", "EOF"},
		{")", "", `")" ())`},
		{"else { }", "", `"else" (ELSE)`},
		{"{ a }", "", `"{" ({)`},
	}

	for _, tt := range tests {
		program, err := ParseString(tt.input)
		if err == nil {
			t.Errorf("%q: expected error, got program %q", tt.input, program.String())
			continue
		}
		var parseErr *errors.ParseError
		if !stderrors.As(err, &parseErr) {
			t.Errorf("%q: expected *errors.ParseError, got %T (%v)", tt.input, err, err)
			continue
		}
		if parseErr.Expected != tt.expected {
			t.Errorf("%q: expected kind wrong. expected=%q, got=%q", tt.input, tt.expected, parseErr.Expected)
		}
		if parseErr.Found != tt.found {
			t.Errorf("%q: found wrong. expected=%q, got=%q", tt.input, tt.found, parseErr.Found)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseString("let x")
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "Parse Error: expected =, got EOF instead"; got != want {
		t.Errorf("expected=%q, got=%q", want, got)
	}
}

func TestLexErrorPassesThrough(t *testing.T) {
	_, err := ParseString("let x = $")
	var lexErr *errors.LexError
	if !stderrors.As(err, &lexErr) {
		t.Fatalf("expected *errors.LexError, got %T", err)
	}
	if lexErr.Char != '$' {
		t.Errorf("char wrong, got %q", lexErr.Char)
	}
}

func TestNumericLiteralValues(t *testing.T) {
	tests := []struct {
		input string
		value float64
	}{
		{"0", 0},
		{"007", 7},
		{"1234567890", 1234567890},
	}
	for _, tt := range tests {
		program := parseOrFail(t, tt.input)
		lit, ok := program.Body[0].(*NumericLiteral)
		if !ok {
			t.Fatalf("%q: expected *NumericLiteral, got %T", tt.input, program.Body[0])
		}
		if lit.Value != tt.value {
			t.Errorf("%q: value wrong. expected=%g, got=%g", tt.input, tt.value, lit.Value)
		}
		if lit.TokenLiteral() != tt.input {
			t.Errorf("%q: lexeme lost, got %q", tt.input, lit.TokenLiteral())
		}
	}
}

func TestDumpAST(t *testing.T) {
	program := parseOrFail(t, "let x = foo.bar(1) @ y")
	var out bytes.Buffer
	DumpAST(&out, program)

	expected := strings.Join([]string{
		"Program",
		"  VariableDeclaration x (constant=false)",
		"    value: BinaryExpression @",
		"      left: CallExpression (1 args)",
		"        caller: MemberExpression (computed=false)",
		"          object: Identifier foo",
		"          property: Identifier bar",
		"        arg: NumericLiteral 1",
		"      right: Identifier y",
		"",
	}, "\n")
	if out.String() != expected {
		t.Errorf("dump wrong.\nexpected:\n%s\ngot:\n%s", expected, out.String())
	}
}

func TestDumpASTMissingBlocks(t *testing.T) {
	program := &Program{Body: []Statement{
		&IfStatement{Condition: &Identifier{Symbol: "a"}},
		&WhileStatement{Condition: &Identifier{Symbol: "b"}},
	}}
	var out bytes.Buffer
	DumpAST(&out, program)

	expected := strings.Join([]string{
		"Program",
		"  IfStatement",
		"    condition: Identifier a",
		"  WhileStatement",
		"    condition: Identifier b",
		"",
	}, "\n")
	if out.String() != expected {
		t.Errorf("dump wrong.\nexpected:\n%s\ngot:\n%s", expected, out.String())
	}
}
