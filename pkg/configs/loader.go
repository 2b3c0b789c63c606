package configs

import (
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads CUE files lazily, on first lookup. Files listed first take
// precedence for AssignFirst and First.
type Loader struct {
	getRoots func() ([]rootInfo, error)
}

// NewLoader returns a Loader over filePaths. When schemaSrc is not empty,
// every file must unify with the closed schema.
func NewLoader(filePaths []string, schemaSrc string) Loader {
	return Loader{

		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {

			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, err
				}
			}

			for _, filePath := range filePaths {
				content, err := os.ReadFile(filePath)
				if err != nil {
					return nil, err
				}

				value := ctx.CompileBytes(
					content,
					cue.Filename(filePath),
				)
				if err = value.Err(); err != nil {
					return nil, err
				}

				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, err
					}
				}

				ret = append(ret, rootInfo{
					value: value,
					path:  filePath,
				})
			}

			return
		}),
	}
}

type rootInfo struct {
	value cue.Value
	path  string
}

// Paths returns the files the loader was built over, in lookup order. It is
// also the way to surface a read, compile or schema error up front.
func (l Loader) Paths() ([]string, error) {
	if l.getRoots == nil {
		return nil, nil
	}
	roots, err := l.getRoots()
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(roots))
	for _, info := range roots {
		paths = append(paths, info.path)
	}
	return paths, nil
}

func (l Loader) AssignFirst(path string, target any) error {
	if l.getRoots == nil {
		return ErrValueNotFound
	}
	roots, err := l.getRoots()
	if err != nil {
		return err
	}

	cuePath := cue.ParsePath(path)
	for _, info := range roots {
		value := info.value.LookupPath(cuePath)
		if value.Exists() && value.Err() == nil {
			if err := value.Decode(target); err != nil {
				return err
			}
			return nil
		}
	}

	return ErrValueNotFound
}
