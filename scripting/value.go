package scripting

import (
	"fmt"
	"math"
	"strings"

	"github.com/deosjr/cps/lisp"
	"go.starlark.net/starlark"
)

// ToStarlark converts a tree into plain Starlark values. Symbols become
// strings and string literals keep their quotes, so the two stay apart.
// Integral numbers become ints, nil becomes None and lists become lists.
func ToStarlark(e lisp.Expr) starlark.Value {
	switch e := e.(type) {
	case nil:
		return starlark.None
	case lisp.Symbol:
		return starlark.String(e)
	case lisp.Str:
		return starlark.String(e.String())
	case lisp.Number:
		f := float64(e)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return starlark.MakeInt64(int64(f))
		}
		return starlark.Float(f)
	case lisp.Bool:
		return starlark.Bool(e)
	case lisp.List:
		elems := make([]starlark.Value, len(e))
		for i, x := range e {
			elems[i] = ToStarlark(x)
		}
		return starlark.NewList(elems)
	}
	if e == lisp.Nil {
		return starlark.None
	}
	panic(fmt.Sprintf("cannot convert %T to starlark", e))
}

// FromStarlark is the inverse of ToStarlark. Tuples are accepted as lists.
func FromStarlark(v starlark.Value) (lisp.Expr, error) {
	switch v := v.(type) {
	case starlark.String:
		s := string(v)
		if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
			return lisp.Str(s[1 : len(s)-1]), nil
		}
		if s == "" {
			return nil, fmt.Errorf("empty symbol")
		}
		return lisp.Symbol(s), nil
	case starlark.Int:
		n, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("integer out of range: %s", v)
		}
		return lisp.Number(n), nil
	case starlark.Float:
		return lisp.Number(v), nil
	case starlark.Bool:
		return lisp.Bool(v), nil
	case starlark.NoneType:
		return lisp.Nil, nil
	case starlark.Bytes:
		// indexing bytes yields bytes again
		return nil, fmt.Errorf("cannot convert starlark bytes to an expression")
	case starlark.Indexable:
		list := make(lisp.List, 0, v.Len())
		for i := range v.Len() {
			e, err := FromStarlark(v.Index(i))
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
		return list, nil
	}
	return nil, fmt.Errorf("cannot convert starlark %s to an expression", v.Type())
}
