package transpiler

import (
	"fmt"

	"aiscript/pkg/configs"
	"aiscript/pkg/logs"

	"github.com/dlclark/regexp2"
	"github.com/reusee/dscope"
)

// ConfigSchema is the CUE schema for the transpiler section of a config file.
const ConfigSchema = `
transpiler?: close({
	tensorFunc?: string
	indent?:     string
})
`

// A dotted JavaScript name whose first segment is not a reserved word. The
// lookahead needs a backtracking engine.
var tensorFuncPattern = regexp2.MustCompile(
	`^(?!(?:break|case|catch|class|const|continue|debugger|default|delete|do|else|export|extends|false|finally|for|function|if|import|in|instanceof|let|new|null|return|super|switch|this|throw|true|try|typeof|var|void|while|with|yield)(?:\.|$))`+
		`[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*$`,
	regexp2.ECMAScript,
)

var indentPattern = regexp2.MustCompile(`^[ \t]*$`, regexp2.ECMAScript)

type fileConfig struct {
	TensorFunc string `json:"tensorFunc"`
	Indent     string `json:"indent"`
}

// OptionsFromConfig reads the transpiler section of loader over the defaults.
// The loader is expected to carry ConfigSchema; a section that does not decode
// into strings panics.
func OptionsFromConfig(loader configs.Loader) (Options, error) {
	opts := DefaultOptions()

	if _, err := loader.Paths(); err != nil {
		return opts, fmt.Errorf("load transpiler config: %w", err)
	}
	cfg := configs.First[fileConfig](loader, "transpiler")

	if cfg.TensorFunc != "" {
		ok, err := tensorFuncPattern.MatchString(cfg.TensorFunc)
		if err != nil {
			return opts, err
		}
		if !ok {
			return opts, fmt.Errorf("transpiler.tensorFunc: %q is not a JavaScript function name", cfg.TensorFunc)
		}
		opts.TensorFunc = cfg.TensorFunc
	}

	if cfg.Indent != "" {
		ok, err := indentPattern.MatchString(cfg.Indent)
		if err != nil {
			return opts, err
		}
		if !ok {
			return opts, fmt.Errorf("transpiler.indent: %q must contain only spaces and tabs", cfg.Indent)
		}
		opts.Indent = cfg.Indent
	}

	return opts, nil
}

type Module struct {
	dscope.Module
}

// Options provides the configured options with the scope's logger attached.
// A bad config file panics, as dscope providers cannot return errors.
func (Module) Options(
	loader configs.Loader,
	logger logs.Logger,
) Options {
	opts, err := OptionsFromConfig(loader)
	if err != nil {
		panic(err)
	}
	opts.Logger = logger
	return opts
}
