package repl

import (
	"strings"

	"github.com/deosjr/cps/cps"
	"github.com/deosjr/cps/lisp"
)

// Session buffers input lines until they form complete expressions, then
// converts them.
type Session struct {
	Compiler *cps.Compiler
	// Hook, if set, sees every expression after conversion.
	Hook func(source, converted lisp.Expr) error
	buf  strings.Builder
}

func NewSession(compiler *cps.Compiler) *Session {
	return &Session{Compiler: compiler}
}

// Feed adds one line of input. It returns the converted expressions once the
// buffer parses, or pending if an expression is still open.
func (s *Session) Feed(line string) (out []lisp.Expr, pending bool, err error) {
	if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)

	c := s.compiler()
	exprs, err := c.Reader.ReadAll(s.buf.String())
	if lisp.IsIncomplete(err) {
		return nil, true, nil
	}
	s.buf.Reset()
	if err != nil {
		return nil, false, err
	}
	for _, e := range exprs {
		converted, err := c.Convert(e)
		if err != nil {
			return out, false, err
		}
		if s.Hook != nil {
			if err := s.Hook(e, converted); err != nil {
				return out, false, err
			}
		}
		out = append(out, converted)
	}
	return out, false, nil
}

// Pending reports whether an unfinished expression is buffered.
func (s *Session) Pending() bool {
	return s.buf.Len() > 0
}

// Reset drops any buffered input.
func (s *Session) Reset() {
	s.buf.Reset()
}

func (s *Session) compiler() *cps.Compiler {
	if s.Compiler == nil {
		s.Compiler = cps.NewCompiler()
	}
	if s.Compiler.Reader == nil {
		s.Compiler.Reader = lisp.NewReader()
	}
	return s.Compiler
}
