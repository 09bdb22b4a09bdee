package cps

import (
	"errors"
	"fmt"

	"github.com/deosjr/cps/lisp"
)

var (
	ErrNotAtomic        = errors.New("expected atomic expression")
	ErrUnsupportedShape = errors.New("unsupported expression shape")
	ErrMalformedForm    = errors.New("malformed special form")
)

// Form is the core language: Const, Lambda, If, Begin, Set, Letrec, PrimCall
// or App. Each form keeps the s-expression it was analysed from.
type Form interface {
	Source() lisp.Expr
	form()
}

// Const is any non-list expression or quoted datum.
type Const struct {
	Value lisp.Expr
}

type Lambda struct {
	Params []lisp.Symbol
	Body   []Form
	source lisp.Expr
}

type If struct {
	Test, Then, Else Form
	source           lisp.Expr
}

type Begin struct {
	Body   []Form
	source lisp.Expr
}

type Set struct {
	Name   lisp.Symbol
	Value  Form
	source lisp.Expr
}

type Binding struct {
	Name lisp.Symbol
	Init Form
}

type Letrec struct {
	Bindings []Binding
	Body     Form
	source   lisp.Expr
}

type PrimCall struct {
	Op     lisp.Symbol
	Args   []Form
	source lisp.Expr
}

type App struct {
	Fn     Form
	Args   []Form
	source lisp.Expr
}

func (Const) form()    {}
func (Lambda) form()   {}
func (If) form()       {}
func (Begin) form()    {}
func (Set) form()      {}
func (Letrec) form()   {}
func (PrimCall) form() {}
func (App) form()      {}

func (f Const) Source() lisp.Expr    { return f.Value }
func (f Lambda) Source() lisp.Expr   { return f.source }
func (f If) Source() lisp.Expr       { return f.source }
func (f Begin) Source() lisp.Expr    { return f.source }
func (f Set) Source() lisp.Expr      { return f.source }
func (f Letrec) Source() lisp.Expr   { return f.source }
func (f PrimCall) Source() lisp.Expr { return f.source }
func (f App) Source() lisp.Expr      { return f.source }

// IsAtomic: a non-list value or a lambda needs no further sequencing.
func IsAtomic(f Form) bool {
	switch f.(type) {
	case Const, Lambda:
		return true
	}
	return false
}

var (
	symLambda  = lisp.Symbol("lambda")
	symIf      = lisp.Symbol("if")
	symBegin   = lisp.Symbol("begin")
	symSet     = lisp.Symbol("set!")
	symLetrec  = lisp.Symbol("letrec")
	symQuote   = lisp.Symbol("quote")
	symSetThen = lisp.Symbol("set-then!")
	symCPS     = lisp.Symbol("cps")
	symUndef   = lisp.Symbol("undef")
)

func keyword(s lisp.Symbol) lisp.Pattern {
	return lisp.Literal{Value: s}
}

var (
	lambdaPattern  = lisp.Seq{keyword(symLambda), lisp.Seq{lisp.Rest{Name: "params"}}, lisp.Rest{Name: "body"}}
	ifPattern      = lisp.Seq{keyword(symIf), lisp.Capture{Name: "test"}, lisp.Capture{Name: "then"}, lisp.Capture{Name: "else"}}
	beginPattern   = lisp.Seq{keyword(symBegin), lisp.Rest{Name: "body"}}
	setPattern     = lisp.Seq{keyword(symSet), lisp.Capture{Name: "name"}, lisp.Capture{Name: "value"}}
	letrecPattern  = lisp.Seq{keyword(symLetrec), lisp.Seq{lisp.Rest{Name: "bindings"}}, lisp.Capture{Name: "body"}, lisp.Rest{Name: "more"}}
	bindingPattern = lisp.Seq{lisp.Capture{Name: "name"}, lisp.Capture{Name: "init"}}
	quotePattern   = lisp.Seq{keyword(symQuote), lisp.Wildcard{}}
	applyPattern   = lisp.Seq{lisp.Capture{Name: "fn"}, lisp.Rest{Name: "args"}}
)

// Analyse classifies e and its subexpressions into core forms, rejecting
// shapes the transformer cannot handle.
func (t *Transformer) Analyse(e lisp.Expr) (Form, error) {
	head, ok := lisp.Head(e)
	if !ok {
		if lisp.IsList(e) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedShape, e)
		}
		return Const{Value: e}, nil
	}
	if s, ok := head.(lisp.Symbol); ok {
		switch s {
		case symQuote:
			if _, ok := lisp.Match(e, quotePattern); !ok {
				return nil, malformed(e)
			}
			return Const{Value: e}, nil
		case symLambda:
			return t.analyseLambda(e)
		case symIf:
			return t.analyseIf(e)
		case symBegin:
			return t.analyseBegin(e)
		case symSet:
			return t.analyseSet(e)
		case symLetrec:
			return t.analyseLetrec(e)
		}
		if t.primitives().Has(s) {
			b, _ := lisp.Match(e, applyPattern)
			args, err := t.analyseAll(b["args"].(lisp.List))
			if err != nil {
				return nil, err
			}
			return PrimCall{Op: s, Args: args, source: e}, nil
		}
	}
	b, _ := lisp.Match(e, applyPattern)
	fn, err := t.Analyse(b["fn"])
	if err != nil {
		return nil, err
	}
	args, err := t.analyseAll(b["args"].(lisp.List))
	if err != nil {
		return nil, err
	}
	return App{Fn: fn, Args: args, source: e}, nil
}

func (t *Transformer) analyseAll(list lisp.List) ([]Form, error) {
	forms := make([]Form, 0, len(list))
	for _, e := range list {
		f, err := t.Analyse(e)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, nil
}

func (t *Transformer) analyseLambda(e lisp.Expr) (Form, error) {
	b, ok := lisp.Match(e, lambdaPattern)
	if !ok {
		return nil, malformed(e)
	}
	params, err := symbols(b["params"].(lisp.List), e)
	if err != nil {
		return nil, err
	}
	body := b["body"].(lisp.List)
	if len(body) == 0 {
		return nil, malformed(e)
	}
	forms, err := t.analyseAll(body)
	if err != nil {
		return nil, err
	}
	return Lambda{Params: params, Body: forms, source: e}, nil
}

func (t *Transformer) analyseIf(e lisp.Expr) (Form, error) {
	b, ok := lisp.Match(e, ifPattern)
	if !ok {
		return nil, malformed(e)
	}
	forms, err := t.analyseAll(lisp.List{b["test"], b["then"], b["else"]})
	if err != nil {
		return nil, err
	}
	return If{Test: forms[0], Then: forms[1], Else: forms[2], source: e}, nil
}

func (t *Transformer) analyseBegin(e lisp.Expr) (Form, error) {
	b, ok := lisp.Match(e, beginPattern)
	if !ok || len(b["body"].(lisp.List)) == 0 {
		return nil, malformed(e)
	}
	forms, err := t.analyseAll(b["body"].(lisp.List))
	if err != nil {
		return nil, err
	}
	return Begin{Body: forms, source: e}, nil
}

func (t *Transformer) analyseSet(e lisp.Expr) (Form, error) {
	b, ok := lisp.Match(e, setPattern)
	if !ok {
		return nil, malformed(e)
	}
	name, ok := b["name"].(lisp.Symbol)
	if !ok {
		return nil, malformed(e)
	}
	value, err := t.Analyse(b["value"])
	if err != nil {
		return nil, err
	}
	return Set{Name: name, Value: value, source: e}, nil
}

// analyseLetrec only accepts atomic initializers: they are converted with M
// and never sequenced. Several body forms are treated as a begin.
func (t *Transformer) analyseLetrec(e lisp.Expr) (Form, error) {
	b, ok := lisp.Match(e, letrecPattern)
	if !ok {
		return nil, malformed(e)
	}
	var bindings []Binding
	for _, be := range b["bindings"].(lisp.List) {
		bb, ok := lisp.Match(be, bindingPattern)
		if !ok {
			return nil, malformed(e)
		}
		name, ok := bb["name"].(lisp.Symbol)
		if !ok {
			return nil, malformed(e)
		}
		init, err := t.Analyse(bb["init"])
		if err != nil {
			return nil, err
		}
		if !IsAtomic(init) {
			return nil, fmt.Errorf("%w: letrec initializer %s", ErrNotAtomic, bb["init"])
		}
		bindings = append(bindings, Binding{Name: name, Init: init})
	}
	var body Form
	if more := b["more"].(lisp.List); len(more) == 0 {
		f, err := t.Analyse(b["body"])
		if err != nil {
			return nil, err
		}
		body = f
	} else {
		exprs := append(lisp.List{b["body"]}, more...)
		forms, err := t.analyseAll(exprs)
		if err != nil {
			return nil, err
		}
		body = Begin{Body: forms, source: append(lisp.List{symBegin}, exprs...)}
	}
	return Letrec{Bindings: bindings, Body: body, source: e}, nil
}

func symbols(list lisp.List, e lisp.Expr) ([]lisp.Symbol, error) {
	out := make([]lisp.Symbol, 0, len(list))
	for _, x := range list {
		s, ok := x.(lisp.Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: parameter %s is not a symbol in %s", ErrMalformedForm, x, e)
		}
		out = append(out, s)
	}
	return out, nil
}

func malformed(e lisp.Expr) error {
	return fmt.Errorf("%w: %s", ErrMalformedForm, e)
}
