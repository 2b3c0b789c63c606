package source

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"aiscript/pkg/errors"
)

// SourceFile represents a source file with its content and metadata
type SourceFile struct {
	Name    string   // Display name (e.g., "script.ais", "<repl>", "<eval>")
	Path    string   // Full file path (empty for REPL/eval)
	Content string   // The source code content
	lines   []string // Cached split lines (lazy initialization)
}

// NewSourceFile creates a new source file
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// NewEvalSource creates a source file for -e input
func NewEvalSource(content string) *SourceFile {
	return NewSourceFile("<eval>", "", content)
}

// NewReplSource creates a source file for one REPL line
func NewReplSource(content string) *SourceFile {
	return NewSourceFile("<repl>", "", content)
}

// FromFile creates a SourceFile from a file path and content
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// ReadFile loads the file at filePath.
func ReadFile(filePath string) (*SourceFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromFile(filePath, string(content)), nil
}

// Lines returns the source split into lines (cached)
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// Position converts a byte offset into a line and rune column. Offsets past
// the end clamp to the end of the content.
func (sf *SourceFile) Position(offset int) errors.Position {
	if offset > len(sf.Content) {
		offset = len(sf.Content)
	}
	if offset < 0 {
		offset = 0
	}
	pos := errors.Position{Source: sf.DisplayPath(), Line: 1, Column: 1, Offset: offset}
	lineStart := 0
	for _, line := range sf.Lines() {
		lineEnd := lineStart + len(line)
		if offset <= lineEnd {
			pos.Column = utf8.RuneCountInString(sf.Content[lineStart:offset]) + 1
			pos.Text = line
			return pos
		}
		lineStart = lineEnd + 1 // '\n'
		pos.Line++
	}
	return pos
}
