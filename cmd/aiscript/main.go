package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"aiscript/pkg/configs"
	"aiscript/pkg/driver"
	"aiscript/pkg/errors"
	"aiscript/pkg/logs"
	"aiscript/pkg/transpiler"

	"github.com/reusee/dscope"
)

const (
	exitUsage    = 64 // command line usage error
	exitSoftware = 70 // internal software error
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("aiscript", flag.ContinueOnError)
	flags.SetOutput(stderr)

	exprFlag := flags.String("e", "", "Transpile the given snippet and exit")
	outputFlag := flags.String("o", "", "Write JavaScript to this file instead of printing it")
	writeFlag := flags.Bool("w", false, "Write JavaScript to the input file name with a .js extension")
	configFlag := flags.String("config", "", "CUE config file with a transpiler section")
	tokensFlag := flags.Bool("tokens", false, "Show the token stream before parsing")
	astDumpFlag := flags.Bool("ast", false, "Show AST dump before transpiling")
	logLevelFlag := flags.String("log-level", "", "Log level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	if *logLevelFlag != "" {
		level, err := logs.ParseLevel(*logLevelFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return exitUsage
		}
		logs.SetLevel(level)
	}

	if flags.NArg() > 1 || (*exprFlag != "" && flags.NArg() > 0) {
		fmt.Fprintf(stderr, "Usage: aiscript [options] [script.ais] or aiscript -e \"snippet\"\n")
		return exitUsage
	}
	if (*outputFlag != "" || *writeFlag) && flags.NArg() != 1 {
		fmt.Fprintf(stderr, "Usage: aiscript -o <output.js> <input.ais>\n")
		return exitUsage
	}

	loader := configs.NewLoader(nil, "")
	if *configFlag != "" {
		loader = configs.NewLoader([]string{*configFlag}, transpiler.ConfigSchema)
	}
	if _, err := transpiler.OptionsFromConfig(loader); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUsage
	}

	scope := dscope.New(new(Module)).Fork(
		dscope.Provide(loader),
		func() logs.Writer {
			return stderr
		},
	)

	exitCode := 0
	scope.Call(func(
		logger logs.Logger,
		transpilerOptions transpiler.Options,
		newSpan logs.NewSpan,
	) {
		opts := driver.Options{
			Transpiler: transpilerOptions,
			ShowTokens: *tokensFlag,
			ShowAST:    *astDumpFlag,
			Debug:      stderr,
			Logger:     logger,
		}
		ctx, _ := newSpan(context.Background(), "")

		switch {
		case *exprFlag != "":
			exitCode = transpileSnippet(ctx, *exprFlag, opts, stdout, stderr)
		case flags.NArg() == 1 && (*outputFlag != "" || *writeFlag):
			exitCode = writeFile(ctx, flags.Arg(0), *outputFlag, opts, stdout, stderr)
		case flags.NArg() == 1:
			exitCode = transpileFile(ctx, flags.Arg(0), opts, stdout, stderr)
		default:
			runRepl(ctx, newSpan, opts, stdin, stdout, stderr)
		}
	})
	return exitCode
}

func transpileSnippet(ctx context.Context, snippet string, opts driver.Options, stdout, stderr io.Writer) int {
	js, err := driver.TranspileString(ctx, snippet, opts)
	if err != nil {
		errors.DisplayErrors(stderr, err)
		return exitSoftware
	}
	fmt.Fprint(stdout, js)
	return 0
}

func transpileFile(ctx context.Context, filename string, opts driver.Options, stdout, stderr io.Writer) int {
	js, err := driver.TranspileFile(ctx, filename, opts)
	if err != nil {
		errors.DisplayErrors(stderr, err)
		return exitSoftware
	}
	fmt.Fprint(stdout, js)
	return 0
}

func writeFile(ctx context.Context, input, output string, opts driver.Options, stdout, stderr io.Writer) int {
	written, err := driver.WriteJavaScriptFile(ctx, input, output, opts)
	if err != nil {
		errors.DisplayErrors(stderr, err)
		return exitSoftware
	}
	fmt.Fprintf(stdout, "JavaScript code written to %s\n", written)
	return 0
}
