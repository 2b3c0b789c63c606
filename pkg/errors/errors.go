package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ScriptError is the interface implemented by all AIScript front-end errors.
type ScriptError interface {
	error
	Kind() string // e.g., "Lex", "Parse", "Lowering"
	// Message returns the specific error message without the kind prefix.
	Message() string
	Unwrap() error
}

// --- Concrete Error Types ---

// LexError is raised when the scanner meets a character that starts no token.
type LexError struct {
	Char   rune // The offending character
	Offset int  // 0-based byte offset of Char in the source
	Cause  error
}

func (e *LexError) Error() string {
	return "Lex Error: " + e.Message()
}
func (e *LexError) Kind() string { return "Lex" }
func (e *LexError) Message() string {
	return fmt.Sprintf("unrecognized character %s in source", strconv.QuoteRune(e.Char))
}
func (e *LexError) Unwrap() error { return e.Cause }

// ParseError is raised when a required token is missing or no primary
// expression matches the current token.
type ParseError struct {
	// Expected is the token kind the parser required. Empty when the parser
	// was looking for the start of a primary expression.
	Expected string
	// Found describes the token actually encountered.
	Found string
	Msg   string
	Cause error
}

func (e *ParseError) Error() string {
	return "Parse Error: " + e.Message()
}
func (e *ParseError) Kind() string { return "Parse" }
func (e *ParseError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Expected == "" {
		return fmt.Sprintf("unexpected token %s", e.Found)
	}
	return fmt.Sprintf("expected %s, got %s instead", e.Expected, e.Found)
}
func (e *ParseError) Unwrap() error { return e.Cause }
func (e *ParseError) CausedBy(cause error) *ParseError {
	e.Cause = cause
	return e
}

// LoweringWarning reports a node the transpiler had no rule for. It is not
// fatal: the node contributes no output and lowering continues.
type LoweringWarning struct {
	Node  string // Kind name of the skipped node
	Cause error
}

func (e *LoweringWarning) Error() string {
	return "Lowering Warning: " + e.Message()
}
func (e *LoweringWarning) Kind() string { return "Lowering" }
func (e *LoweringWarning) Message() string {
	return fmt.Sprintf("no lowering rule for %s node, skipped", e.Node)
}
func (e *LoweringWarning) Unwrap() error { return e.Cause }

// --- Error Reporting ---

// DisplayErrors prints each error to w as "<Kind> Error: <message>",
// prefixed with "file:line:col: " when a position is attached. A positioned
// error is followed by its source line and a '^' under the column. Errors
// that are not ScriptErrors are printed verbatim.
func DisplayErrors(w io.Writer, errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		pos, hasPos := PositionOf(err)
		prefix := ""
		if hasPos {
			prefix = pos.String() + ": "
		}
		var se ScriptError
		if !stderrors.As(err, &se) {
			fmt.Fprintf(w, "Error: %s\n", err)
			continue
		}
		fmt.Fprintf(w, "%s%s Error: %s\n", prefix, se.Kind(), se.Message())
		if hasPos && pos.Text != "" {
			displaySourceLine(w, pos)
		}
	}
}

func displaySourceLine(w io.Writer, pos Position) {
	fmt.Fprintf(w, "  %s\n", strings.TrimRight(pos.Text, "\r\n\t "))

	// Tabs are kept so the marker lines up under tab-indented code.
	var marker strings.Builder
	col := 1
	for _, r := range pos.Text {
		if col >= pos.Column {
			break
		}
		if r == '\t' {
			marker.WriteRune('\t')
		} else {
			marker.WriteRune(' ')
		}
		col++
	}
	fmt.Fprintf(w, "  %s^\n", marker.String())
}
