package lexer

import (
	"fmt"
	"unicode/utf8"

	"aiscript/pkg/errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string // The actual text of the token (lexeme)
}

// String describes the token for diagnostics, e.g. `"x" (IDENT)` or `EOF`.
func (t Token) String() string {
	if t.Type == EOF {
		return string(EOF)
	}
	return fmt.Sprintf("%q (%s)", t.Literal, t.Type)
}

// --- Token Types ---
const (
	// Special
	EOF TokenType = "EOF" // End Of File

	// Identifiers + Literals
	IDENT  TokenType = "IDENT"  // x, print, matrix
	NUMBER TokenType = "NUMBER" // 123, 007

	// Operators
	ASSIGN   TokenType = "="
	EQ       TokenType = "=="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	LT       TokenType = "<"
	GT       TokenType = ">"
	AT       TokenType = "@" // Tensor product

	// Delimiters
	COMMA    TokenType = ","
	DOT      TokenType = "."
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	LET   TokenType = "LET"
	CONST TokenType = "CONST"
	IF    TokenType = "IF"
	ELSE  TokenType = "ELSE"
	WHILE TokenType = "WHILE"
)

var keywords = map[string]TokenType{
	"let":   LET,
	"const": CONST,
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
}

var punctuation = map[rune]TokenType{
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	',': COMMA,
	'@': AT,
	'.': DOT,
}

var operators = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	'/': SLASH,
	'>': GT,
	'<': LT,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// Lexer holds the state of the scanner.
type Lexer struct {
	input        string
	position     int  // byte offset of ch
	readPosition int  // byte offset after ch
	ch           rune // current char under examination, 0 at end of input

	upper cases.Caser
	lower cases.Caser
}

// NewLexer creates a new Lexer.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns its tokens, always terminated
// by a single EOF token. The first unrecognized character aborts the scan.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// readChar decodes the next rune and advances our position in the input string.
func (l *Lexer) readChar() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += size
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// skipWhitespace consumes blanks and the ';' statement terminator.
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isSkippable(l.ch) {
		l.readChar()
	}
}

// NextToken scans the input and returns the next token. Once the input is
// exhausted it returns EOF tokens.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Type: EOF}, nil
	}

	startPos := l.position

	if tokType, ok := punctuation[l.ch]; ok {
		l.readChar()
		return Token{Type: tokType, Literal: l.input[startPos:l.position]}, nil
	}

	if l.ch == '=' {
		if l.peekChar() == '=' {
			l.readChar() // Consume first '='
			l.readChar() // Advance past second '='
			return Token{Type: EQ, Literal: l.input[startPos:l.position]}, nil
		}
		l.readChar()
		return Token{Type: ASSIGN, Literal: l.input[startPos:l.position]}, nil
	}

	if tokType, ok := operators[l.ch]; ok {
		l.readChar()
		return Token{Type: tokType, Literal: l.input[startPos:l.position]}, nil
	}

	if isDigit(l.ch) {
		return Token{Type: NUMBER, Literal: l.readNumber()}, nil
	}

	if l.isLetter(l.ch) {
		literal := l.readIdentifier()
		return Token{Type: LookupIdent(literal), Literal: literal}, nil
	}

	return Token{}, &errors.LexError{Char: l.ch, Offset: startPos}
}

// readIdentifier reads a maximal run of letters.
func (l *Lexer) readIdentifier() string {
	startPos := l.position
	for !l.atEnd() && l.isLetter(l.ch) {
		l.readChar()
	}
	return l.input[startPos:l.position]
}

// readNumber reads a maximal run of decimal digits. Signs, fractions and
// exponents are not part of the language.
func (l *Lexer) readNumber() string {
	startPos := l.position
	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}
	return l.input[startPos:l.position]
}

// isLetter reports whether ch is case-bearing: its full uppercase and
// lowercase mappings differ. Digits, punctuation and uncased scripts are not
// letters under this rule, while 'ß' is (it uppercases to "SS").
func (l *Lexer) isLetter(ch rune) bool {
	if ch < utf8.RuneSelf {
		return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
	}
	s := string(ch)
	return l.upper.String(s) != l.lower.String(s)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isSkippable(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == ';'
}
