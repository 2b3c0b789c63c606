package parser

import (
	stderrors "errors"
	"strconv"

	"aiscript/pkg/errors"
	"aiscript/pkg/lexer"
)

// Parser builds an AST from a token slice. Each precedence level has its own
// method that descends into the next tighter level before handling its own
// operators:
//
//	assignment < comparison < tensor < additive < multiplicative < call/member < primary
type Parser struct {
	tokens []lexer.Token
	pos    int // index of the current (not yet consumed) token
}

// NewParser creates a Parser over tokens. The slice is never modified.
func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a complete token stream into a Program.
func Parse(tokens []lexer.Token) (*Program, error) {
	return NewParser(tokens).ParseProgram()
}

// ParseString tokenizes and parses src.
func ParseString(src string) (*Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram parses statements until EOF. The first error aborts the parse.
func (p *Parser) ParseProgram() (*Program, error) {
	program := &Program{Body: []Statement{}}

	for !p.curTokenIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, stmt)
	}

	return program, nil
}

// --- Token cursor ---

// peek returns the current token without consuming it. A stream that ends
// without an EOF token behaves as if it had one.
func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it has type t, and fails otherwise.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	tok := p.peek()
	if tok.Type != t {
		return tok, &errors.ParseError{Expected: string(t), Found: tok.String()}
	}
	return p.advance(), nil
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) curTokenIsAny(types ...lexer.TokenType) bool {
	cur := p.peek().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// --- Statement Parsing ---

func (p *Parser) parseStatement() (Statement, error) {
	switch p.peek().Type {
	case lexer.LET, lexer.CONST:
		return p.parseVariableDeclaration()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	default:
		return p.parseExpression()
	}
}

func (p *Parser) parseVariableDeclaration() (*VariableDeclaration, error) {
	tok := p.advance() // 'let' or 'const'
	decl := &VariableDeclaration{Token: tok, Constant: tok.Type == lexer.CONST}

	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	decl.Identifier = name.Literal

	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}

	decl.Value, err = p.parseExpression()
	if err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseIfStatement() (*IfStatement, error) {
	stmt := &IfStatement{Token: p.advance()} // 'if'

	var err error
	stmt.Condition, err = p.parseCondition()
	if err != nil {
		return nil, err
	}

	stmt.Consequence, err = p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	if p.curTokenIs(lexer.ELSE) {
		p.advance() // 'else'
		stmt.Alternate, err = p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*WhileStatement, error) {
	stmt := &WhileStatement{Token: p.advance()} // 'while'

	var err error
	stmt.Condition, err = p.parseCondition()
	if err != nil {
		return nil, err
	}

	stmt.Body, err = p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseCondition parses the parenthesized condition of if and while.
func (p *Parser) parseCondition() (Expression, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseBlockStatement() (*BlockStatement, error) {
	tok, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &BlockStatement{Token: tok, Body: []Statement{}}

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}

	// Reports the missing '}' when the loop stopped at EOF.
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// --- Expression Parsing ---

func (p *Parser) parseExpression() (Expression, error) {
	return p.parseAssignmentExpression()
}

// parseAssignmentExpression is right-associative: the right-hand side recurses
// into itself, so a = b = c is a = (b = c).
func (p *Parser) parseAssignmentExpression() (Expression, error) {
	left, err := p.parseComparisonExpression()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(lexer.ASSIGN) {
		return left, nil
	}

	tok := p.advance()
	value, err := p.parseAssignmentExpression()
	if err != nil {
		return nil, err
	}
	return &AssignmentExpression{Token: tok, Assignee: left, Value: value}, nil
}

func (p *Parser) parseComparisonExpression() (Expression, error) {
	return p.parseBinaryLevel(p.parseTensorExpression, lexer.LT, lexer.GT, lexer.EQ)
}

func (p *Parser) parseTensorExpression() (Expression, error) {
	return p.parseBinaryLevel(p.parseAdditiveExpression, lexer.AT)
}

func (p *Parser) parseAdditiveExpression() (Expression, error) {
	return p.parseBinaryLevel(p.parseMultiplicativeExpression, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseMultiplicativeExpression() (Expression, error) {
	return p.parseBinaryLevel(p.parseCallMemberExpression, lexer.ASTERISK, lexer.SLASH)
}

// parseBinaryLevel parses one left-associative level: operands come from
// next, and every operator in ops folds into a left-leaning tree.
func (p *Parser) parseBinaryLevel(next func() (Expression, error), ops ...lexer.TokenType) (Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.curTokenIsAny(ops...) {
		tok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}

	return left, nil
}

// parseCallMemberExpression handles call application after member resolution,
// so foo.bar(x) calls the member. Calls and members chain: a.b(c)(d).e
func (p *Parser) parseCallMemberExpression() (Expression, error) {
	expr, err := p.parseMemberExpression()
	if err != nil {
		return nil, err
	}

	for p.curTokenIs(lexer.LPAREN) {
		tok := p.advance() // '('
		args, err := p.parseExpressionList(lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		expr = &CallExpression{Token: tok, Caller: expr, Args: args}

		expr, err = p.parseMemberTail(expr)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (p *Parser) parseMemberExpression() (Expression, error) {
	object, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}
	return p.parseMemberTail(object)
}

// parseMemberTail folds any ".IDENT" suffixes onto object, left-associative.
// Only non-computed access exists; the property must be an identifier.
func (p *Parser) parseMemberTail(object Expression) (Expression, error) {
	for p.curTokenIs(lexer.DOT) {
		tok := p.advance() // '.'
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		object = &MemberExpression{
			Token:    tok,
			Object:   object,
			Property: &Identifier{Token: name, Symbol: name.Literal},
			Computed: false,
		}
	}
	return object, nil
}

func (p *Parser) parsePrimaryExpression() (Expression, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.IDENT:
		p.advance()
		return &Identifier{Token: tok, Symbol: tok.Literal}, nil
	case lexer.NUMBER:
		p.advance()
		return parseNumericLiteral(tok)
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LPAREN:
		p.advance() // '('
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, &errors.ParseError{Found: tok.String()}
	}
}

func parseNumericLiteral(tok lexer.Token) (Expression, error) {
	value, err := strconv.ParseFloat(tok.Literal, 64)
	// Digit runs past float64 range become +Inf, as the host would read them.
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return nil, (&errors.ParseError{
			Found: tok.String(),
			Msg:   "could not parse " + strconv.Quote(tok.Literal) + " as number",
		}).CausedBy(err)
	}
	return &NumericLiteral{Token: tok, Value: value}, nil
}

func (p *Parser) parseArrayLiteral() (Expression, error) {
	tok := p.advance() // '['
	elements, err := p.parseExpressionList(lexer.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ArrayLiteral{Token: tok, Elements: elements}, nil
}

// parseExpressionList parses `(expr ("," expr)*)? end` after the opening
// delimiter has been consumed. Trailing commas are not accepted.
func (p *Parser) parseExpressionList(end lexer.TokenType) ([]Expression, error) {
	list := []Expression{}

	if p.curTokenIs(end) {
		p.advance()
		return list, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	list = append(list, expr)

	for p.curTokenIs(lexer.COMMA) {
		p.advance() // ','
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
	}

	if _, err := p.expect(end); err != nil {
		return nil, err
	}
	return list, nil
}
