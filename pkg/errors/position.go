package errors

import (
	stderrors "errors"
	"fmt"
)

// Position represents a specific location in the source code.
type Position struct {
	Source string // Display path of the source, e.g. "main.ais" or "<eval>"
	Line   int    // 1-based line number
	Column int    // 1-based column number (rune index within the line)
	Offset int    // 0-based byte offset
	Text   string // The whole source line, without its newline
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
}

// PositionedError attaches a source position to a ScriptError.
type PositionedError struct {
	Pos Position
	Err error
}

func (e *PositionedError) Error() string {
	return e.Pos.String() + ": " + e.Err.Error()
}

func (e *PositionedError) Unwrap() error { return e.Err }

// At wraps err with pos. A nil err stays nil.
func At(pos Position, err error) error {
	if err == nil {
		return nil
	}
	return &PositionedError{Pos: pos, Err: err}
}

// PositionOf returns the position attached to err, if any.
func PositionOf(err error) (Position, bool) {
	var pe *PositionedError
	if stderrors.As(err, &pe) {
		return pe.Pos, true
	}
	return Position{}, false
}
