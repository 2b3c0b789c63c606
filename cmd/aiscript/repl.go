package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"aiscript/pkg/driver"
	"aiscript/pkg/errors"
	"aiscript/pkg/logs"
	"aiscript/pkg/source"
)

// runRepl transpiles stdin line by line and prints the JavaScript for each.
// Errors are reported and the loop continues.
func runRepl(ctx context.Context, newSpan logs.NewSpan, opts driver.Options, stdin io.Reader, stdout, stderr io.Writer) {
	reader := bufio.NewReader(stdin)
	session := ctx.Value(logs.SpanKey).(logs.Span)

	fmt.Fprintln(stdout, "AIScript (Ctrl+D to exit)")

	for {
		fmt.Fprint(stdout, "> ")
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			lineCtx, _ := newSpan(ctx, session)
			result, tErr := driver.Transpile(lineCtx, source.NewReplSource(line), opts)
			if tErr != nil {
				errors.DisplayErrors(stderr, tErr)
			} else {
				fmt.Fprint(stdout, result.JavaScript)
			}
		}
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(stderr, "Error reading input: %s\n", err)
			}
			fmt.Fprintln(stdout)
			return
		}
	}
}
