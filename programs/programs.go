package programs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/deosjr/cps/lisp"
)

//go:embed scm/*.scm
var files embed.FS

// Program is one sample from the embedded corpus.
type Program struct {
	Name   string
	Source string
	Expr   lisp.Expr
}

// Load reads every embedded program, in file name order.
func Load() ([]Program, error) {
	names, err := fs.Glob(files, "scm/*.scm")
	if err != nil {
		return nil, err
	}
	programs := make([]Program, 0, len(names))
	for _, name := range names {
		b, err := files.ReadFile(name)
		if err != nil {
			return nil, err
		}
		src := strings.TrimSpace(string(b))
		e, err := lisp.Read(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		programs = append(programs, Program{
			Name:   strings.TrimSuffix(path.Base(name), ".scm"),
			Source: src,
			Expr:   e,
		})
	}
	return programs, nil
}

func MustLoad() []Program {
	programs, err := Load()
	if err != nil {
		panic(err)
	}
	return programs
}

// Get returns the program called name.
func Get(name string) (Program, bool) {
	for _, p := range MustLoad() {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}
