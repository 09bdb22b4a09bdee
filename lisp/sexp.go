package lisp

import (
	"fmt"
)

// Expr is an s-expression: one of Symbol, Number, Str, Bool, Nil, Dot or List.
// The same representation is used for source, core language and CPS output.
type Expr interface {
	fmt.Stringer
	sexpression()
}

type Symbol string
type Number float64
type Str string
type Bool bool

type nilAtom struct{}
type dotAtom struct{}

// Nil is the empty-list sentinel produced by `nil` and `'()`.
var Nil Expr = nilAtom{}

// Dot marks the cdr position of a dotted pair while a list is being read.
// It never survives in a parsed list.
var Dot Expr = dotAtom{}

type List []Expr

func (Symbol) sexpression()  {}
func (Number) sexpression()  {}
func (Str) sexpression()     {}
func (Bool) sexpression()    {}
func (nilAtom) sexpression() {}
func (dotAtom) sexpression() {}
func (List) sexpression()    {}

func NewList(items ...Expr) List {
	if items == nil {
		return List{}
	}
	return List(items)
}

func IsList(e Expr) bool {
	_, ok := e.(List)
	return ok
}

func IsSymbol(e Expr, name Symbol) bool {
	s, ok := e.(Symbol)
	return ok && s == name
}

// Head returns the first element of a non-empty list.
func Head(e Expr) (Expr, bool) {
	l, ok := e.(List)
	if !ok || len(l) == 0 {
		return nil, false
	}
	return l[0], true
}

// Equal reports structural equality.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	if IsList(b) {
		return false
	}
	return a == b
}

// Append returns a new list; neither argument is modified.
func Append(l List, items ...Expr) List {
	out := make(List, 0, len(l)+len(items))
	out = append(out, l...)
	return append(out, items...)
}
