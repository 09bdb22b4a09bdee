package lisp

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenizer(t *testing.T) {
	type tok struct {
		Kind TokenKind
		Text string
	}
	for i, tt := range []struct {
		input string
		want  []tok
	}{
		{
			input: "(define (sqr x) (* x x))",
			want: []tok{
				{TokenLParen, "("}, {TokenSymbol, "define"},
				{TokenLParen, "("}, {TokenSymbol, "sqr"}, {TokenSymbol, "x"}, {TokenRParen, ")"},
				{TokenLParen, "("}, {TokenSymbol, "*"}, {TokenSymbol, "x"}, {TokenSymbol, "x"}, {TokenRParen, ")"},
				{TokenRParen, ")"},
			},
		},
		{
			input: "nil '() #t true #f false",
			want: []tok{
				{TokenNil, "nil"}, {TokenNil, "'()"},
				{TokenTrue, "#t"}, {TokenTrue, "true"},
				{TokenFalse, "#f"}, {TokenFalse, "false"},
			},
		},
		{
			input: `42 "a \"b\" c" . 'x`,
			want: []tok{
				{TokenNumber, "42"}, {TokenString, `"a \"b\" c"`},
				{TokenDot, "."}, {TokenQuote, "'"}, {TokenSymbol, "x"},
			},
		},
		{
			// earlier rules win at the same position
			input: "nilly x1 12ab ..args",
			want: []tok{
				{TokenNil, "nil"}, {TokenSymbol, "ly"},
				{TokenSymbol, "x1"},
				{TokenNumber, "12"}, {TokenSymbol, "ab"},
				{TokenDot, "."}, {TokenDot, "."}, {TokenSymbol, "args"},
			},
		},
		{
			input: "  \n\t ",
			want:  nil,
		},
	} {
		var got []tok
		for token, err := range defaultTokenizer.Tokens(tt.input) {
			if err != nil {
				t.Fatalf("%d) unexpected error %v", i, err)
			}
			got = append(got, tok{token.Kind, token.Text})
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%d) got %v want %v", i, got, tt.want)
		}
	}
}

func TestTokenSpans(t *testing.T) {
	tokens, err := defaultTokenizer.Tokenize("(ab  c)")
	if err != nil {
		t.Fatal(err)
	}
	want := []Span{{0, 1}, {1, 3}, {5, 6}, {6, 7}}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens", len(tokens))
	}
	for i, tok := range tokens {
		if tok.Span != want[i] {
			t.Errorf("%d) got %v want %v", i, tok.Span, want[i])
		}
	}
}

func TestTokenizerGap(t *testing.T) {
	var tokens []Token
	var gaps []*LexicalGapError
	for tok, err := range defaultTokenizer.Tokens("a é b") {
		if err != nil {
			var gap *LexicalGapError
			if !errors.As(err, &gap) {
				t.Fatalf("unexpected error %v", err)
			}
			gaps = append(gaps, gap)
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) != 2 || tokens[0].Text != "a" || tokens[1].Text != "b" {
		t.Fatalf("got %v", tokens)
	}
	if len(gaps) != 1 {
		t.Fatalf("got %d gaps", len(gaps))
	}
	if gaps[0].Text != "é" || gaps[0].Span != (Span{2, 4}) {
		t.Errorf("got %q at %v", gaps[0].Text, gaps[0].Span)
	}
	if !errors.Is(gaps[0], ErrLexicalGap) {
		t.Errorf("gap should wrap ErrLexicalGap")
	}

	_, err := defaultTokenizer.Tokenize("(é)")
	if !errors.Is(err, ErrLexicalGap) {
		t.Errorf("got %v", err)
	}
}

func TestTokenizerIgnore(t *testing.T) {
	// without an ignore set whitespace comes through as tokens
	tz := MustTokenizer(SchemeRules)
	tokens, err := tz.Tokenize("a b")
	if err != nil {
		t.Fatal(err)
	}
	kinds := []TokenKind{}
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []TokenKind{TokenSymbol, TokenWhitespace, TokenSymbol}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("got %v want %v", kinds, want)
	}
}

func TestTokenizerRestartable(t *testing.T) {
	seq := defaultTokenizer.Tokens("(a b)")
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if a, b := count(), count(); a != 4 || b != 4 {
		t.Errorf("got %d and %d", a, b)
	}
}

func TestNewTokenizerErrors(t *testing.T) {
	if _, err := NewTokenizer(nil); err == nil {
		t.Error("expected error for empty rules")
	}
	if _, err := NewTokenizer([]Rule{{TokenSymbol, "("}}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
