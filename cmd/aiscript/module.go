package main

import (
	"aiscript/pkg/configs"
	"aiscript/pkg/logs"
	"aiscript/pkg/transpiler"

	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs       logs.Module
	Configs    configs.Module
	Transpiler transpiler.Module
}
