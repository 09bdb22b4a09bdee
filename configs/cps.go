package configs

import (
	"github.com/samber/lo"
)

// Schema describes the settings a config file may carry.
const Schema = `
cps?: {
	halt?: string
	primitives?: [...string]
	alphatize?: bool
	strict?: bool
}
`

// CPS holds transformer settings. Unset fields keep their defaults.
type CPS struct {
	Halt       string   `json:"halt"`
	Primitives []string `json:"primitives"`
	Alphatize  bool     `json:"alphatize"`
	Strict     bool     `json:"strict"`
}

func DefaultCPS() CPS {
	return CPS{
		Halt:       "halt",
		Primitives: []string{"+", "-", "*", "/"},
	}
}

// LoadCPS merges the cps section of every file over the defaults. Files are
// consulted in order, first one wins per field; primitive lists accumulate.
func LoadCPS(filePaths ...string) (CPS, error) {
	ret := DefaultCPS()
	if len(filePaths) == 0 {
		return ret, nil
	}
	loader := NewLoader(filePaths, Schema)

	halt, err := First[string](loader, "cps.halt")
	if err != nil {
		return ret, err
	}
	if halt != "" {
		ret.Halt = halt
	}

	for prims, err := range All[[]string](loader, "cps.primitives") {
		if err != nil {
			return ret, err
		}
		ret.Primitives = append(ret.Primitives, prims...)
	}
	ret.Primitives = lo.Uniq(ret.Primitives)

	alphatize, err := First[bool](loader, "cps.alphatize")
	if err != nil {
		return ret, err
	}
	strict, err := First[bool](loader, "cps.strict")
	if err != nil {
		return ret, err
	}
	ret.Alphatize = alphatize
	ret.Strict = strict
	return ret, nil
}
