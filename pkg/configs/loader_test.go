package configs

import (
	"errors"
	"fmt"
	"testing"
)

var testSchema = `
str?: string
list?: [...int]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)

	var str string
	err := loader.AssignFirst("str", &str)
	if err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	err = loader.AssignFirst("list", &list)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestNestedUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/nested.cue",
	}, `
section?: close({
	name?: string
})
`)
	var name string
	err := loader.AssignFirst("section.name", &name)
	if err == nil {
		t.Fatal("should error")
	}
	t.Logf("%v", err)
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/bad.cue",
	}, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
	t.Logf("%v", err)
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{"testdata/missing.cue"}, testSchema)
	var str string
	err := loader.AssignFirst("str", &str)
	if err == nil || errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestEmptyLoader(t *testing.T) {
	for _, loader := range []Loader{{}, NewLoader(nil, "")} {
		var str string
		if err := loader.AssignFirst("str", &str); !errors.Is(err, ErrValueNotFound) {
			t.Fatalf("got %v", err)
		}
		if paths, err := loader.Paths(); err != nil || len(paths) != 0 {
			t.Fatalf("got %v %v", paths, err)
		}
	}
}

func TestPathsReportsLoadError(t *testing.T) {
	loader := NewLoader([]string{"testdata/bad.cue"}, testSchema)
	if _, err := loader.Paths(); err == nil {
		t.Fatal("should error")
	}
}

func TestPaths(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test.cue",
		"testdata/test2.cue",
	}, "")
	paths, err := loader.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", paths); str != "[testdata/test.cue testdata/test2.cue]" {
		t.Fatalf("got %s", str)
	}
}
