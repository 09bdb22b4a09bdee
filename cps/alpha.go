package cps

import (
	"fmt"

	"github.com/deosjr/cps/lisp"
)

// Alphatize renames every variable bound by lambda or letrec to a fresh
// symbol so that all bound names in the program are distinct. Free variables
// and quoted data are left alone. New names come from the same table as the
// continuation variables of the transform and skip every symbol already in
// the program, so a new name never clashes with an existing or generated one.
func (t *Transformer) Alphatize(e lisp.Expr) (lisp.Expr, error) {
	t.reserve(e)
	return t.alphatize(e, lisp.NewEnv(nil))
}

func (t *Transformer) alphatize(e lisp.Expr, env *lisp.Env) (lisp.Expr, error) {
	switch x := e.(type) {
	case lisp.Symbol:
		return env.Lookup(x), nil
	case lisp.List:
		if len(x) == 0 {
			return x, nil
		}
		if _, ok := lisp.Match(x, quotePattern); ok {
			return x, nil
		}
		if b, ok := lisp.Match(x, lambdaPattern); ok {
			return t.alphatizeLambda(b, env)
		}
		if b, ok := lisp.Match(x, letrecPattern); ok {
			return t.alphatizeLetrec(x, b, env)
		}
		return t.alphatizeSequence(x, env)
	}
	return e, nil
}

func (t *Transformer) alphatizeSequence(list lisp.List, env *lisp.Env) (lisp.List, error) {
	out := make(lisp.List, 0, len(list))
	for _, e := range list {
		a, err := t.alphatize(e, env)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (t *Transformer) alphatizeLambda(b lisp.Bindings, env *lisp.Env) (lisp.Expr, error) {
	inner := env.Extend()
	params := lisp.List{}
	for _, p := range b["params"].(lisp.List) {
		s, ok := p.(lisp.Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: function parameter is not a symbol: %s", ErrMalformedForm, p)
		}
		renamed := t.gensym(string(s))
		if !inner.Add(s, renamed) {
			return nil, fmt.Errorf("%w: duplicate function parameter: %s", ErrMalformedForm, s)
		}
		params = append(params, renamed)
	}
	body, err := t.alphatizeSequence(b["body"].(lisp.List), inner)
	if err != nil {
		return nil, err
	}
	return append(lisp.List{symLambda, params}, body...), nil
}

// letrec scope covers its own initializers as well as its body.
func (t *Transformer) alphatizeLetrec(x lisp.List, b lisp.Bindings, env *lisp.Env) (lisp.Expr, error) {
	inner := env.Extend()
	bindings := b["bindings"].(lisp.List)
	for _, be := range bindings {
		bb, ok := lisp.Match(be, bindingPattern)
		if !ok {
			return nil, malformed(x)
		}
		s, ok := bb["name"].(lisp.Symbol)
		if !ok {
			return nil, malformed(x)
		}
		if !inner.Add(s, t.gensym(string(s))) {
			return nil, fmt.Errorf("%w: duplicate letrec binding: %s", ErrMalformedForm, s)
		}
	}
	renamed := lisp.List{}
	for _, be := range bindings {
		bb, _ := lisp.Match(be, bindingPattern)
		init, err := t.alphatize(bb["init"], inner)
		if err != nil {
			return nil, err
		}
		renamed = append(renamed, lisp.List{inner.Lookup(bb["name"].(lisp.Symbol)), init})
	}
	body, err := t.alphatizeSequence(x[2:], inner)
	if err != nil {
		return nil, err
	}
	return append(lisp.List{symLetrec, renamed}, body...), nil
}
