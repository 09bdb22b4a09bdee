package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/deosjr/cps/cps"
	"github.com/deosjr/cps/lisp"
	"github.com/deosjr/cps/logs"
	"github.com/deosjr/cps/programs"
	"github.com/deosjr/cps/scripting"
)

// Stdout is where converted programs are printed.
type Stdout io.Writer

func (Module) Stdout() Stdout {
	return os.Stdout
}

// Script is the Starlark hook run on every converted expression, if any.
type Script struct {
	Filename string
	Source   []byte
}

type App struct {
	Compiler *cps.Compiler
	Runner   *scripting.Runner
	Script   Script
	Logger   logs.Logger
	NewSpan  logs.NewSpan
	Out      io.Writer
}

func (Module) App(
	compiler *cps.Compiler,
	runner *scripting.Runner,
	script Script,
	logger logs.Logger,
	newSpan logs.NewSpan,
	out Stdout,
) *App {
	return &App{
		Compiler: compiler,
		Runner:   runner,
		Script:   script,
		Logger:   logger,
		NewSpan:  newSpan,
		Out:      out,
	}
}

// hook runs the script, if one was given, on a converted expression.
func (a *App) hook(source, converted lisp.Expr) error {
	if a.Script.Filename == "" {
		return nil
	}
	return a.Runner.Hook(a.Script.Filename, a.Script.Source, source, converted)
}

// ConvertFile prints every top-level expression of filename in CPS.
func (a *App) ConvertFile(ctx context.Context, filename string) error {
	ctx, _ = a.NewSpan(ctx, filename)
	exprs, err := a.Compiler.Reader.ReadFile(filename)
	if err != nil {
		return err
	}
	a.Logger.InfoContext(ctx, "converting", "file", filename, "expressions", len(exprs))
	for _, e := range exprs {
		out, err := a.Compiler.Convert(e)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		fmt.Fprintln(a.Out, out)
		if err := a.hook(e, out); err != nil {
			return fmt.Errorf("%s: %w", a.Script.Filename, err)
		}
	}
	return nil
}

// Demo converts the embedded sample programs, each with fresh gensym
// counters.
func (a *App) Demo(ctx context.Context) error {
	ctx, _ = a.NewSpan(ctx, "demo")
	progs, err := programs.Load()
	if err != nil {
		return err
	}
	for _, p := range progs {
		if a.Compiler.Transformer != nil && a.Compiler.Transformer.Gensyms != nil {
			a.Compiler.Transformer.Gensyms.Reset()
		}
		out, err := a.Compiler.Convert(p.Expr)
		if err != nil {
			a.Logger.WarnContext(ctx, "sample failed", "program", p.Name, "error", err)
			continue
		}
		fmt.Fprintf(a.Out, ";; %s\n%s\n=> %s\n\n", p.Name, p.Source, out)
		if err := a.hook(p.Expr, out); err != nil {
			return err
		}
	}
	return nil
}
