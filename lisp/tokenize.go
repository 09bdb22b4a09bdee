package lisp

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

type TokenKind uint8

const (
	TokenNil TokenKind = iota
	TokenTrue
	TokenFalse
	TokenNumber
	TokenString
	TokenDot
	TokenQuote
	TokenLParen
	TokenRParen
	TokenSymbol
	TokenWhitespace
)

var tokenNames = [...]string{
	TokenNil:        "NIL",
	TokenTrue:       "TRUE",
	TokenFalse:      "FALSE",
	TokenNumber:     "NUMBER",
	TokenString:     "STRING",
	TokenDot:        "DOT",
	TokenQuote:      "QUOTE",
	TokenLParen:     "LPAREN",
	TokenRParen:     "RPAREN",
	TokenSymbol:     "SYMBOL",
	TokenWhitespace: "WHITESPACE",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// Span is a half-open byte range into the input.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

type Rule struct {
	Kind    TokenKind
	Pattern string
}

// SchemeRules are the surface token rules in priority order.
var SchemeRules = []Rule{
	{TokenNil, `nil|'\(\)`},
	{TokenTrue, `true|#t`},
	{TokenFalse, `false|#f`},
	{TokenNumber, `\d+`},
	{TokenString, `"(\\.|[^"])*"`},
	{TokenDot, `\.`},
	{TokenQuote, `'`},
	{TokenLParen, `\(`},
	{TokenRParen, `\)`},
	{TokenSymbol, `[\x21-\x26\x2a-\x7e]+`},
	{TokenWhitespace, `\s+`},
}

// Tokenizer matches an ordered rule list as a single leftmost-first
// alternation, so earlier rules win at the same position.
type Tokenizer struct {
	re     *regexp.Regexp
	groups []int
	kinds  []TokenKind
	ignore []TokenKind
}

func NewTokenizer(rules []Rule, ignore ...TokenKind) (*Tokenizer, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no token rules")
	}
	alts := make([]string, len(rules))
	for i, r := range rules {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Kind, err)
		}
		alts[i] = fmt.Sprintf("(?P<t%d>%s)", i, r.Pattern)
	}
	re, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		return nil, err
	}
	t := &Tokenizer{
		re:     re,
		ignore: ignore,
	}
	for i, r := range rules {
		t.groups = append(t.groups, re.SubexpIndex(fmt.Sprintf("t%d", i)))
		t.kinds = append(t.kinds, r.Kind)
	}
	return t, nil
}

func MustTokenizer(rules []Rule, ignore ...TokenKind) *Tokenizer {
	t, err := NewTokenizer(rules, ignore...)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultTokenizer = MustTokenizer(SchemeRules, TokenWhitespace)

// Tokens lazily scans input. Text matching no rule is reported as a
// *LexicalGapError and scanning resumes after it.
func (t *Tokenizer) Tokens(input string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		pos := 0
		for pos < len(input) {
			loc := t.re.FindStringSubmatchIndex(input[pos:])
			if loc == nil {
				yield(Token{}, gapError(input, pos, len(input)))
				return
			}
			start, end := pos+loc[0], pos+loc[1]
			if start == end {
				// an empty match cannot advance; skip one byte as a gap
				end = start + 1
				if !yield(Token{}, gapError(input, pos, end)) {
					return
				}
				pos = end
				continue
			}
			if start > pos {
				if !yield(Token{}, gapError(input, pos, start)) {
					return
				}
			}
			pos = end
			kind, ok := t.kindOf(loc)
			if !ok || lo.Contains(t.ignore, kind) {
				continue
			}
			tok := Token{
				Kind: kind,
				Text: input[start:end],
				Span: Span{Start: start, End: end},
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokenize collects all tokens, failing on the first lexical gap.
func (t *Tokenizer) Tokenize(input string) ([]Token, error) {
	var tokens []Token
	for tok, err := range t.Tokens(input) {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (t *Tokenizer) kindOf(loc []int) (TokenKind, bool) {
	for i, g := range t.groups {
		if loc[2*g] >= 0 {
			return t.kinds[i], true
		}
	}
	return 0, false
}

func gapError(input string, start, end int) *LexicalGapError {
	return &LexicalGapError{
		Text: input[start:end],
		Span: Span{Start: start, End: end},
	}
}
