package cps

import (
	"fmt"

	"github.com/deosjr/cps/lisp"
	"github.com/samber/lo"
)

const namespace = "cps"

// MetaCont is a transform-time continuation: given the atomic expression
// holding a result, it builds the rest of the output program.
type MetaCont func(lisp.Expr) lisp.Expr

// Transformer converts core-language expressions to CPS.
//
// letrec is rewritten without any hygiene check: if the continuation refers
// to a name the letrec rebinds, that reference gets captured. Run Alphatize
// on the program first.
type Transformer struct {
	Gensyms    *lisp.Gensyms
	Primitives Primitives
}

func New() *Transformer {
	return &Transformer{
		Gensyms:    lisp.NewGensyms(),
		Primitives: DefaultPrimitives(),
	}
}

var defaultTransformer = &Transformer{
	Gensyms:    lisp.DefaultGensyms,
	Primitives: DefaultPrimitives(),
}

// Transform converts a program using the process-wide gensym table.
func Transform(e lisp.Expr, halt lisp.Symbol) (lisp.Expr, error) {
	return defaultTransformer.Transform(e, halt)
}

// Transform converts a top-level lambda with M and anything else with Tc,
// using halt as the final continuation.
func (t *Transformer) Transform(e lisp.Expr, halt lisp.Symbol) (lisp.Expr, error) {
	t.reserve(e, halt)
	f, err := t.Analyse(e)
	if err != nil {
		return nil, err
	}
	if l, ok := f.(Lambda); ok {
		return t.m(l), nil
	}
	return t.tc(f, halt), nil
}

func (t *Transformer) M(e lisp.Expr) (lisp.Expr, error) {
	t.reserve(e)
	f, err := t.Analyse(e)
	if err != nil {
		return nil, err
	}
	if !IsAtomic(f) {
		return nil, fmt.Errorf("%w: %s", ErrNotAtomic, e)
	}
	return t.m(f), nil
}

func (t *Transformer) Tc(e lisp.Expr, c lisp.Expr) (lisp.Expr, error) {
	t.reserve(e, c)
	f, err := t.Analyse(e)
	if err != nil {
		return nil, err
	}
	return t.tc(f, c), nil
}

func (t *Transformer) Tk(e lisp.Expr, k MetaCont) (lisp.Expr, error) {
	t.reserve(e)
	f, err := t.Analyse(e)
	if err != nil {
		return nil, err
	}
	return t.tk(f, k), nil
}

func (t *Transformer) Tsk(exprs []lisp.Expr, k func([]lisp.Expr) lisp.Expr) (lisp.Expr, error) {
	t.reserve(exprs...)
	forms, err := t.analyseAll(exprs)
	if err != nil {
		return nil, err
	}
	return t.tsk(forms, k), nil
}

func (t *Transformer) gensyms() *lisp.Gensyms {
	if t.Gensyms == nil {
		t.Gensyms = lisp.NewGensyms()
	}
	return t.Gensyms
}

func (t *Transformer) gensym(base string) lisp.Symbol {
	return t.gensyms().Next(base, namespace)
}

// reserve keeps fresh names clear of every symbol the caller wrote.
func (t *Transformer) reserve(exprs ...lisp.Expr) {
	var syms []lisp.Symbol
	for _, e := range exprs {
		syms = lisp.Symbols(syms, e)
	}
	t.gensyms().Reserve(namespace, syms...)
}

func (t *Transformer) primitives() Primitives {
	if t.Primitives == nil {
		return DefaultPrimitives()
	}
	return t.Primitives
}

// m only receives atomic forms; tc and tk never hand it anything else.
func (t *Transformer) m(f Form) lisp.Expr {
	switch f := f.(type) {
	case Const:
		return f.Value
	case Lambda:
		k := t.gensym("k")
		params := make(lisp.List, 0, len(f.Params)+1)
		for _, p := range f.Params {
			params = append(params, p)
		}
		params = append(params, k)
		return lisp.List{symLambda, params, t.tc(Begin{Body: f.Body}, k)}
	}
	panic(fmt.Sprintf("m: %T is not atomic", f))
}

func (t *Transformer) tc(f Form, c lisp.Expr) lisp.Expr {
	switch f := f.(type) {
	case Const, Lambda:
		return lisp.List{c, t.m(f)}

	case Begin:
		if len(f.Body) == 1 {
			return t.tc(f.Body[0], c)
		}
		rest := Begin{Body: f.Body[1:]}
		return t.tk(f.Body[0], func(lisp.Expr) lisp.Expr {
			return t.tc(rest, c)
		})

	case If:
		// bind c once so both branches share it
		k := t.gensym("k")
		body := t.tk(f.Test, func(test lisp.Expr) lisp.Expr {
			return lisp.List{symIf, test, t.tc(f.Then, k), t.tc(f.Else, k)}
		})
		return lisp.List{lisp.List{symLambda, lisp.List{k}, body}, c}

	case Set:
		return t.tk(f.Value, func(value lisp.Expr) lisp.Expr {
			return lisp.List{symSetThen, f.Name, value, lisp.List{c, symUndef}}
		})

	case Letrec:
		bindings := lo.Map(f.Bindings, func(b Binding, _ int) lisp.Expr {
			return lisp.List{b.Name, t.m(b.Init)}
		})
		return lisp.List{symLetrec, lisp.NewList(bindings...), t.tc(f.Body, c)}

	case PrimCall:
		return t.tsk(f.Args, func(args []lisp.Expr) lisp.Expr {
			call := lisp.List{lisp.List{symCPS, f.Op}}
			return lisp.Append(lisp.Append(call, args...), c)
		})

	case App:
		return t.tk(f.Fn, func(fn lisp.Expr) lisp.Expr {
			return t.tsk(f.Args, func(args []lisp.Expr) lisp.Expr {
				return lisp.Append(lisp.Append(lisp.List{fn}, args...), c)
			})
		})
	}
	panic(fmt.Sprintf("tc: unknown form %T", f))
}

// tk reifies k as (lambda (rv) ...) for anything that is not atomic, so the
// result of a non-tail form lands in a variable.
func (t *Transformer) tk(f Form, k MetaCont) lisp.Expr {
	if IsAtomic(f) {
		return k(t.m(f))
	}
	rv := t.gensym("rv")
	cont := lisp.List{symLambda, lisp.List{rv}, k(rv)}
	return t.tc(f, cont)
}

// tsk evaluates forms strictly left to right, each one nested in the
// continuation of the previous.
func (t *Transformer) tsk(forms []Form, k func([]lisp.Expr) lisp.Expr) lisp.Expr {
	if len(forms) == 0 {
		return k([]lisp.Expr{})
	}
	return t.tk(forms[0], func(hd lisp.Expr) lisp.Expr {
		return t.tsk(forms[1:], func(tl []lisp.Expr) lisp.Expr {
			return k(append([]lisp.Expr{hd}, tl...))
		})
	})
}
