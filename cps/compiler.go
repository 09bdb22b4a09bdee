package cps

import (
	"fmt"
	"log/slog"

	"github.com/deosjr/cps/lisp"
)

// DefaultHalt is the continuation given to top-level expressions.
const DefaultHalt lisp.Symbol = "halt"

// Compiler reads source text and converts every top-level expression.
type Compiler struct {
	Reader      *lisp.Reader
	Transformer *Transformer
	Halt        lisp.Symbol
	// Alphatize renames bound variables before conversion, which makes the
	// letrec rewrite safe.
	Alphatize bool
	Logger    *slog.Logger
}

func NewCompiler() *Compiler {
	return &Compiler{
		Reader:      lisp.NewReader(),
		Transformer: New(),
		Halt:        DefaultHalt,
	}
}

// Read parses the first expression of input without converting it.
func (c *Compiler) Read(input string) (lisp.Expr, error) {
	return c.reader().Read(input)
}

func (c *Compiler) Compile(input string) (lisp.Expr, error) {
	e, err := c.Read(input)
	if err != nil {
		return nil, err
	}
	return c.Convert(e)
}

func (c *Compiler) CompileAll(input string) ([]lisp.Expr, error) {
	exprs, err := c.reader().ReadAll(input)
	if err != nil {
		return nil, err
	}
	return c.convertAll(exprs)
}

func (c *Compiler) CompileFile(filename string) ([]lisp.Expr, error) {
	exprs, err := c.reader().ReadFile(filename)
	if err != nil {
		return nil, err
	}
	out, err := c.convertAll(exprs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return out, nil
}

// Convert runs alpha-conversion (if enabled) and the CPS transform on an
// already parsed expression.
func (c *Compiler) Convert(e lisp.Expr) (lisp.Expr, error) {
	t := c.transformer()
	if c.Alphatize {
		renamed, err := t.Alphatize(e)
		if err != nil {
			return nil, err
		}
		c.debug("alphatized", e, renamed)
		e = renamed
	}
	halt := c.Halt
	if halt == "" {
		halt = DefaultHalt
	}
	out, err := t.Transform(e, halt)
	if err != nil {
		return nil, err
	}
	c.debug("transformed", e, out)
	return out, nil
}

func (c *Compiler) convertAll(exprs []lisp.Expr) ([]lisp.Expr, error) {
	out := make([]lisp.Expr, 0, len(exprs))
	for _, e := range exprs {
		converted, err := c.Convert(e)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func (c *Compiler) reader() *lisp.Reader {
	if c.Reader == nil {
		c.Reader = lisp.NewReader()
	}
	return c.Reader
}

func (c *Compiler) transformer() *Transformer {
	if c.Transformer == nil {
		c.Transformer = New()
	}
	return c.Transformer
}

func (c *Compiler) debug(msg string, in, out lisp.Expr) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug(msg, "input", in.String(), "output", out.String())
}
