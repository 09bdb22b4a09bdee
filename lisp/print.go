package lisp

import (
	"strconv"
	"strings"
)

func Stringify(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func (s Symbol) String() string {
	return string(s)
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// String keeps escapes verbatim: the reader only strips the quotes.
func (s Str) String() string {
	return `"` + string(s) + `"`
}

func (b Bool) String() string {
	if b {
		return "#t"
	}
	return "#f"
}

func (nilAtom) String() string {
	return "'()"
}

func (dotAtom) String() string {
	return "."
}

func (l List) String() string {
	var sb strings.Builder
	l.appendToBuilder(&sb)
	return sb.String()
}

func (l List) appendToBuilder(sb *strings.Builder) {
	sb.WriteByte('(')
	for i, e := range l {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if sub, ok := e.(List); ok {
			sub.appendToBuilder(sb)
			continue
		}
		sb.WriteString(Stringify(e))
	}
	sb.WriteByte(')')
}
