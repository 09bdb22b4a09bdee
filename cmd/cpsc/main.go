package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deosjr/cps/cmds"
	"github.com/deosjr/cps/configs"
	"github.com/deosjr/cps/logs"
	"github.com/deosjr/cps/repl"
	"github.com/reusee/dscope"
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := settings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	script, err := loadScript(*scriptFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx := context.Background()
	dscope.New(
		new(Module),
	).Fork(
		dscope.Provide(cfg),
		dscope.Provide(script),
	).Call(func(
		app *App,
		session *repl.Session,
		logger logs.Logger,
	) {
		if err := run(ctx, app, session, cfg); err != nil {
			logger.Error("cpsc", "error", err)
			os.Exit(1)
		}
	})
}

func run(ctx context.Context, app *App, session *repl.Session, cfg configs.CPS) error {
	app.Logger.DebugContext(ctx, "settings",
		"halt", cfg.Halt,
		"primitives", cfg.Primitives,
		"alphatize", cfg.Alphatize,
		"strict", cfg.Strict,
	)
	if *demoFlag {
		if err := app.Demo(ctx); err != nil {
			return err
		}
	}
	for _, filename := range *inputFiles {
		if err := app.ConvertFile(ctx, filename); err != nil {
			return err
		}
	}
	if *demoFlag || len(*inputFiles) > 0 {
		return nil
	}
	session.Hook = app.hook
	return repl.Run(session)
}

func loadScript(filename string) (Script, error) {
	if filename == "" {
		return Script{}, nil
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return Script{}, err
	}
	return Script{Filename: filename, Source: src}, nil
}
