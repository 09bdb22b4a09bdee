package lisp

import (
	"fmt"
	"strings"
)

const (
	underscore    = "_"
	capturePrefix = "$"
	restPrefix    = ".."
)

// Pattern is one of Wildcard, Capture, Rest, Literal or Seq.
type Pattern interface {
	pattern()
}

type Wildcard struct{}

type Capture struct {
	Name string
}

// Rest binds the unmatched tail of a list. Nothing after it in a Seq is
// inspected.
type Rest struct {
	Name string
}

type Literal struct {
	Value Expr
}

type Seq []Pattern

func (Wildcard) pattern() {}
func (Capture) pattern()  {}
func (Rest) pattern()     {}
func (Literal) pattern()  {}
func (Seq) pattern()      {}

type Bindings map[string]Expr

// CompilePattern converts the symbol notation (`_`, `$name`, `..name`) into
// pattern nodes. Every other atom becomes a literal.
func CompilePattern(e Expr) (Pattern, error) {
	switch x := e.(type) {
	case Symbol:
		s := string(x)
		switch {
		case s == underscore:
			return Wildcard{}, nil
		case strings.HasPrefix(s, capturePrefix) && len(s) > len(capturePrefix):
			return Capture{Name: s[len(capturePrefix):]}, nil
		case strings.HasPrefix(s, restPrefix) && len(s) > len(restPrefix):
			return Rest{Name: s[len(restPrefix):]}, nil
		}
		return Literal{Value: x}, nil
	case List:
		seq := make(Seq, 0, len(x))
		for i, sub := range x {
			p, err := CompilePattern(sub)
			if err != nil {
				return nil, err
			}
			if _, ok := p.(Rest); ok && i != len(x)-1 {
				return nil, fmt.Errorf("rest capture %s must be last in %s", sub, x)
			}
			seq = append(seq, p)
		}
		return seq, nil
	case nil:
		return nil, fmt.Errorf("nil pattern")
	}
	return Literal{Value: e}, nil
}

func MustCompilePattern(e Expr) Pattern {
	p, err := CompilePattern(e)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether expr has the shape of p, and the captures if so.
// A successful match without captures returns empty, non-nil bindings.
func Match(expr Expr, p Pattern) (Bindings, bool) {
	b := Bindings{}
	if !match(expr, p, b) {
		return nil, false
	}
	return b, true
}

func match(expr Expr, p Pattern, b Bindings) bool {
	switch p := p.(type) {
	case Wildcard:
		return true
	case Capture:
		b[p.Name] = expr
		return true
	case Literal:
		return Equal(p.Value, expr)
	case Rest:
		// only meaningful inside a Seq
		return false
	case Seq:
		list, ok := expr.(List)
		if !ok {
			return false
		}
		return matchSeq(list, p, b)
	}
	panic(fmt.Sprintf("unknown pattern %T", p))
}

func matchSeq(list List, seq Seq, b Bindings) bool {
	for i, p := range seq {
		if rest, ok := p.(Rest); ok {
			b[rest.Name] = append(List{}, list[i:]...)
			return true
		}
		if i >= len(list) {
			return false
		}
		if !match(list[i], p, b) {
			return false
		}
	}
	return len(list) == len(seq)
}
