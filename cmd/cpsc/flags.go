package main

import (
	"github.com/deosjr/cps/cmds"
	"github.com/deosjr/cps/configs"
)

var (
	configFiles = cmds.Collect[string]("-config")
	haltFlag    = cmds.Var[string]("-halt")
	alphaFlag   = cmds.Switch("-alpha")
	strictFlag  = cmds.Switch("-strict")
	scriptFlag  = cmds.Var[string]("-script")
	demoFlag    = cmds.Switch("-demo")
	inputFiles  = cmds.Collect[string]("-file")
)

// settings loads the config files, then lets command line flags override
// them.
func settings() (configs.CPS, error) {
	cfg, err := configs.LoadCPS(*configFiles...)
	if err != nil {
		return cfg, err
	}
	if *haltFlag != "" {
		cfg.Halt = *haltFlag
	}
	if *alphaFlag {
		cfg.Alphatize = true
	}
	if *strictFlag {
		cfg.Strict = true
	}
	return cfg, nil
}
