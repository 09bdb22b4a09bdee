package scripting

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/deosjr/cps/cps"
	"github.com/deosjr/cps/lisp"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Runner executes Starlark scripts with the reader, printer and compiler
// available as builtins:
//
//	read(text)      -> tree of the first expression
//	show(tree)      -> printed form
//	transform(tree) -> converted tree, using the runner's compiler
//	normalize(text) -> text read and printed again
type Runner struct {
	Compiler *cps.Compiler
	Out      io.Writer
	Logger   *slog.Logger
}

func NewRunner(compiler *cps.Compiler) *Runner {
	return &Runner{
		Compiler: compiler,
		Out:      os.Stdout,
	}
}

func (r *Runner) Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"read":      starlark.NewBuiltin("read", r.read),
		"show":      starlark.NewBuiltin("show", show),
		"transform": starlark.NewBuiltin("transform", r.transform),
		"normalize": starlarkutil.MakeFunc("normalize", r.normalize),
	}
}

// Exec runs src with the builtins and globals in scope and returns the
// script's own globals.
func (r *Runner) Exec(filename string, src any, globals starlark.StringDict) (starlark.StringDict, error) {
	predeclared := r.Predeclared()
	for name, value := range globals {
		predeclared[name] = value
	}
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(r.out(), msg)
		},
	}
	if r.Logger != nil {
		r.Logger.Debug("run script", "file", filename)
	}
	return starlark.ExecFileOptions(fileOptions, thread, filename, src, predeclared)
}

// Hook runs a script once per converted expression, with source (the input
// tree), tree (the output tree) and text (the printed output) predeclared.
func (r *Runner) Hook(filename string, src any, source, converted lisp.Expr) error {
	_, err := r.Exec(filename, src, starlark.StringDict{
		"source": ToStarlark(source),
		"tree":   ToStarlark(converted),
		"text":   starlark.String(lisp.Stringify(converted)),
	})
	return err
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Runner) compiler() *cps.Compiler {
	if r.Compiler == nil {
		r.Compiler = cps.NewCompiler()
	}
	return r.Compiler
}

func (r *Runner) read(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text", &text); err != nil {
		return nil, err
	}
	e, err := r.compiler().Read(text)
	if err != nil {
		return nil, err
	}
	return ToStarlark(e), nil
}

func show(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var tree starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "tree", &tree); err != nil {
		return nil, err
	}
	e, err := FromStarlark(tree)
	if err != nil {
		return nil, err
	}
	return starlark.String(lisp.Stringify(e)), nil
}

func (r *Runner) transform(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var tree starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "tree", &tree); err != nil {
		return nil, err
	}
	e, err := FromStarlark(tree)
	if err != nil {
		return nil, err
	}
	out, err := r.compiler().Convert(e)
	if err != nil {
		return nil, err
	}
	return ToStarlark(out), nil
}

func (r *Runner) normalize(text string) (string, error) {
	e, err := r.compiler().Read(text)
	if err != nil {
		return "", err
	}
	return lisp.Stringify(e), nil
}
