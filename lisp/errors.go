package lisp

import (
	"errors"
	"fmt"
)

var (
	ErrLexicalGap          = errors.New("no token rule matches")
	ErrUnbalancedParens    = errors.New("unbalanced parentheses")
	ErrMalformedDottedPair = errors.New("too many items in CDR position")
	ErrUnexpectedEOF       = errors.New("unexpected end of input")
	ErrUnexpectedDot       = errors.New("unexpected '.' outside of a list")
)

// LexicalGapError reports input that no tokenizer rule accepted.
type LexicalGapError struct {
	Text string
	Span Span
}

func (e *LexicalGapError) Error() string {
	return fmt.Sprintf("%s: %q at %s", ErrLexicalGap, e.Text, e.Span)
}

func (e *LexicalGapError) Unwrap() error {
	return ErrLexicalGap
}

type SyntaxError struct {
	Err  error
	Span Span
	// Text is the offending source fragment or list, if known.
	Text string
	// Incomplete is set when more input could make the program parse.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("syntax error at %s: %s", e.Span, e.Err)
	}
	return fmt.Sprintf("syntax error at %s: %s: %s", e.Span, e.Err, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// IsIncomplete reports whether err is a syntax error caused by input ending
// inside an expression.
func IsIncomplete(err error) bool {
	var serr *SyntaxError
	return errors.As(err, &serr) && serr.Incomplete
}
