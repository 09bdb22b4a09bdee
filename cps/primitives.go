package cps

import (
	"slices"

	"github.com/deosjr/cps/lisp"
	"github.com/samber/lo"
)

// Primitives is the set of operators that return directly. Calls to them are
// emitted as ((cps op) args... c) so they still take the continuation last.
type Primitives map[lisp.Symbol]struct{}

func DefaultPrimitives() Primitives {
	return NewPrimitives("+", "-", "*", "/")
}

func NewPrimitives(names ...lisp.Symbol) Primitives {
	p := Primitives{}
	p.Register(names...)
	return p
}

func (p Primitives) Register(names ...lisp.Symbol) {
	for _, name := range names {
		p[name] = struct{}{}
	}
}

func (p Primitives) Has(name lisp.Symbol) bool {
	_, ok := p[name]
	return ok
}

func (p Primitives) Names() []lisp.Symbol {
	names := lo.Keys(p)
	slices.Sort(names)
	return names
}
