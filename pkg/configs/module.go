package configs

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

// Loader is the default, empty loader. Callers with config files provide
// their own with dscope.Provide.
func (Module) Loader() Loader {
	return NewLoader(nil, "")
}
