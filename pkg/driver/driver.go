package driver

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aiscript/pkg/errors"
	"aiscript/pkg/lexer"
	"aiscript/pkg/parser"
	"aiscript/pkg/source"
	"aiscript/pkg/transpiler"
)

// SourceExt is the extension of AIScript source files.
const SourceExt = ".ais"

// Options configures a transpile run and its optional debugging output.
type Options struct {
	Transpiler transpiler.Options
	ShowTokens bool
	ShowAST    bool
	// Debug receives the token and AST dumps. Defaults to os.Stderr.
	Debug  io.Writer
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.Transpiler.Logger != nil {
		return o.Transpiler.Logger
	}
	return slog.Default()
}

func (o Options) debug() io.Writer {
	if o.Debug != nil {
		return o.Debug
	}
	return os.Stderr
}

// Result is the output of one transpile run.
type Result struct {
	JavaScript string
	// Warnings lists nodes the transpiler skipped. They do not fail the run.
	Warnings []*errors.LoweringWarning
}

// Transpile runs the lexer, parser and transpiler over src. Lex errors carry
// the file, line and column of the offending character.
func Transpile(ctx context.Context, src *source.SourceFile, opts Options) (*Result, error) {
	logger := opts.logger()
	name := src.DisplayPath()

	start := time.Now()
	tokens, err := lexer.Tokenize(src.Content)
	if err != nil {
		var lexErr *errors.LexError
		if stderrors.As(err, &lexErr) {
			err = errors.At(src.Position(lexErr.Offset), err)
		}
		return nil, err
	}
	logger.DebugContext(ctx, "lexed", "source", name, "tokens", len(tokens), "duration", time.Since(start))

	if opts.ShowTokens {
		w := opts.debug()
		fmt.Fprintln(w, "=== Tokens ===")
		for _, tok := range tokens {
			fmt.Fprintln(w, tok)
		}
		fmt.Fprintln(w, "==============")
	}

	start = time.Now()
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "parsed", "source", name, "statements", len(program.Body), "duration", time.Since(start))

	if opts.ShowAST {
		w := opts.debug()
		fmt.Fprintln(w, "=== AST ===")
		parser.DumpAST(w, program)
		fmt.Fprintln(w, "===========")
	}

	start = time.Now()
	tOpts := opts.Transpiler
	if tOpts.Logger == nil {
		tOpts.Logger = logger
	}
	t := transpiler.New(tOpts)
	js := t.Transpile(program)
	logger.DebugContext(ctx, "transpiled", "source", name, "bytes", len(js), "warnings", len(t.Warnings()), "duration", time.Since(start))

	return &Result{
		JavaScript: js,
		Warnings:   t.Warnings(),
	}, nil
}

// TranspileString converts AIScript source code to JavaScript.
func TranspileString(ctx context.Context, sourceCode string, opts Options) (string, error) {
	result, err := Transpile(ctx, source.NewEvalSource(sourceCode), opts)
	if err != nil {
		return "", err
	}
	return result.JavaScript, nil
}

// TranspileFile reads an AIScript file and converts it to JavaScript.
func TranspileFile(ctx context.Context, filename string, opts Options) (string, error) {
	src, err := source.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	result, err := Transpile(ctx, src, opts)
	if err != nil {
		return "", err
	}
	return result.JavaScript, nil
}

// OutputFilename derives the JavaScript file name for an input file:
// a .ais extension is replaced by .js, anything else gets .js appended.
func OutputFilename(inputFilename string) string {
	if strings.HasSuffix(inputFilename, SourceExt) {
		return strings.TrimSuffix(inputFilename, SourceExt) + ".js"
	}
	return inputFilename + ".js"
}

// WriteJavaScriptFile transpiles inputFilename and writes the result to
// outputFilename, or to OutputFilename(inputFilename) when it is empty. It
// returns the path written.
func WriteJavaScriptFile(ctx context.Context, inputFilename string, outputFilename string, opts Options) (string, error) {
	if outputFilename == "" {
		outputFilename = OutputFilename(inputFilename)
	}
	if filepath.Clean(outputFilename) == filepath.Clean(inputFilename) {
		return "", fmt.Errorf("output %s would overwrite the input", outputFilename)
	}

	jsCode, err := TranspileFile(ctx, inputFilename, opts)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, []byte(jsCode), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", outputFilename, err)
	}
	opts.logger().DebugContext(ctx, "javascript written", "input", inputFilename, "output", outputFilename)
	return outputFilename, nil
}
