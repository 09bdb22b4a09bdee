package lisp

import (
	"errors"
	"iter"
	"strconv"
)

func Multiparse(program string) ([]Expr, error) {
	return defaultReader.ReadAll(program)
}

func Read(program string) (Expr, error) {
	return defaultReader.Read(program)
}

// parser pulls tokens one at a time with a single token of lookahead.
// Closing parentheses are checked at the head of the list loop, so a list
// frame only ever ends itself.
type parser struct {
	next   func() (Token, error, bool)
	tok    Token
	peeked bool
	end    int
	onGap  func(*LexicalGapError) error
}

func multiparse(tokens iter.Seq2[Token, error], onGap func(*LexicalGapError) error) ([]Expr, error) {
	next, stop := iter.Pull2(tokens)
	defer stop()
	p := &parser{next: next, onGap: onGap}
	list := []Expr{}
	for {
		_, ok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return list, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
}

func (p *parser) peek() (Token, bool, error) {
	for !p.peeked {
		tok, err, ok := p.next()
		if !ok {
			return Token{}, false, nil
		}
		if err != nil {
			var gap *LexicalGapError
			if !errors.As(err, &gap) {
				return Token{}, false, err
			}
			if err := p.onGap(gap); err != nil {
				return Token{}, false, err
			}
			continue
		}
		p.tok, p.peeked = tok, true
		p.end = tok.Span.End
	}
	return p.tok, true, nil
}

func (p *parser) advance() {
	p.peeked = false
}

func (p *parser) parseExpr() (Expr, error) {
	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &SyntaxError{Err: ErrUnexpectedEOF, Span: Span{p.end, p.end}, Incomplete: true}
	}
	p.advance()
	switch tok.Kind {
	case TokenNil:
		return Nil, nil
	case TokenTrue:
		return Bool(true), nil
	case TokenFalse:
		return Bool(false), nil
	case TokenSymbol:
		return Symbol(tok.Text), nil
	case TokenNumber:
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &SyntaxError{Err: err, Span: tok.Span, Text: tok.Text}
		}
		return Number(n), nil
	case TokenString:
		return Str(tok.Text[1 : len(tok.Text)-1]), nil
	case TokenQuote:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return List{Symbol("quote"), e}, nil
	case TokenLParen:
		return p.parseList(tok)
	case TokenRParen:
		return nil, &SyntaxError{Err: ErrUnbalancedParens, Span: tok.Span, Text: "unexpected ')'"}
	case TokenDot:
		return nil, &SyntaxError{Err: ErrUnexpectedDot, Span: tok.Span}
	}
	return nil, &SyntaxError{Err: errors.New("unexpected token " + tok.Kind.String()), Span: tok.Span, Text: tok.Text}
}

func (p *parser) parseList(open Token) (Expr, error) {
	list := List{}
	for {
		tok, ok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &SyntaxError{
				Err:        ErrUnbalancedParens,
				Span:       Span{open.Span.Start, p.end},
				Text:       "missing ')'",
				Incomplete: true,
			}
		}
		if tok.Kind == TokenRParen {
			p.advance()
			return collapseDotted(list, Span{open.Span.Start, tok.Span.End})
		}
		if tok.Kind == TokenDot {
			p.advance()
			list = append(list, Dot)
			continue
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
}

// collapseDotted only accepts a dot in second-to-last position. Dotting onto
// Nil is sugar for a proper list; any other cdr is kept as a trailing element
// since improper lists are not represented.
func collapseDotted(list List, span Span) (List, error) {
	n := len(list)
	for i, e := range list {
		if e == Dot && i != n-2 {
			return nil, &SyntaxError{Err: ErrMalformedDottedPair, Span: span, Text: list.String()}
		}
	}
	if n < 2 || list[n-2] != Dot {
		return list, nil
	}
	if list[n-1] == Nil {
		return list[:n-2], nil
	}
	return append(list[:n-2:n-2], list[n-1]), nil
}
