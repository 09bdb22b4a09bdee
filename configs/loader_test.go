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
	if err := loader.AssignFirst("str", &str); err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	if err := loader.AssignFirst("list", &list); err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	if err := loader.AssignFirst("not", &list); !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test.cue",
		"testdata/test2.cue",
	}, testSchema)

	var strs []string
	for value, err := range loader.IterCueValues("str") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		strs = append(strs, s)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}

	strs = strs[:0]
	for str, err := range All[string](loader, "str") {
		if err != nil {
			t.Fatal(err)
		}
		strs = append(strs, str)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}
}

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)
	str, err := First[string](loader, "str")
	if err != nil || str != "bar" {
		t.Fatalf("got %q %v", str, err)
	}
	missing, err := First[[]int](loader, "missing")
	if err != nil || missing != nil {
		t.Fatalf("got %v %v", missing, err)
	}
}

func TestLoaderErrors(t *testing.T) {
	for i, paths := range [][]string{
		{"testdata/bad.cue"},
		{"testdata/does-not-exist.cue"},
	} {
		loader := NewLoader(paths, testSchema)
		var str string
		if err := loader.AssignFirst("str", &str); err == nil || errors.Is(err, ErrValueNotFound) {
			t.Errorf("%d) got %v", i, err)
		}
	}
}
