package lisp

import (
	"log/slog"
)

// Reader turns source text into s-expressions.
type Reader struct {
	Tokenizer *Tokenizer
	// Strict makes a lexical gap abort the read instead of being skipped.
	Strict bool
	OnGap  func(*LexicalGapError)
	// Logger receives a warning per skipped gap; slog.Default() when nil.
	Logger *slog.Logger
}

var defaultReader = NewReader()

func NewReader() *Reader {
	return &Reader{Tokenizer: defaultTokenizer}
}

// Read returns the first expression of program. The whole program still has
// to parse.
func (r *Reader) Read(program string) (Expr, error) {
	list, err := r.ReadAll(program)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &SyntaxError{Err: ErrUnexpectedEOF, Text: "empty input"}
	}
	return list[0], nil
}

func (r *Reader) ReadAll(program string) ([]Expr, error) {
	t := r.Tokenizer
	if t == nil {
		t = defaultTokenizer
	}
	return multiparse(t.Tokens(program), r.gap)
}

func (r *Reader) gap(g *LexicalGapError) error {
	if r.Strict {
		return &SyntaxError{Err: g, Span: g.Span, Text: g.Text}
	}
	if r.OnGap != nil {
		r.OnGap(g)
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("skipping unmatched input",
		"text", g.Text,
		"span", g.Span.String(),
	)
	return nil
}
