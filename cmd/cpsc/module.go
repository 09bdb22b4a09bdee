package main

import (
	"github.com/deosjr/cps/configs"
	"github.com/deosjr/cps/cps"
	"github.com/deosjr/cps/lisp"
	"github.com/deosjr/cps/logs"
	"github.com/deosjr/cps/repl"
	"github.com/deosjr/cps/scripting"
	"github.com/reusee/dscope"
	"github.com/samber/lo"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// CPS and Script are overridden by main with the loaded settings.
func (Module) CPS() configs.CPS {
	return configs.DefaultCPS()
}

func (Module) Script() Script {
	return Script{}
}

func (Module) Compiler(
	cfg configs.CPS,
	logger logs.Logger,
) *cps.Compiler {
	transformer := cps.New()
	transformer.Primitives = cps.NewPrimitives(lo.Map(cfg.Primitives, func(name string, _ int) lisp.Symbol {
		return lisp.Symbol(name)
	})...)
	return &cps.Compiler{
		Reader: &lisp.Reader{
			Strict: cfg.Strict,
			Logger: logger,
		},
		Transformer: transformer,
		Halt:        lisp.Symbol(cfg.Halt),
		Alphatize:   cfg.Alphatize,
		Logger:      logger,
	}
}

func (Module) Runner(
	compiler *cps.Compiler,
	logger logs.Logger,
	writer Stdout,
) *scripting.Runner {
	return &scripting.Runner{
		Compiler: compiler,
		Out:      writer,
		Logger:   logger,
	}
}

func (Module) Session(
	compiler *cps.Compiler,
) *repl.Session {
	return repl.NewSession(compiler)
}
