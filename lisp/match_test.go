package lisp

import (
	"reflect"
	"testing"
)

func TestMatch(t *testing.T) {
	// the reader splits `..args` into dots, so pattern notation is built as data
	define := MustCompilePattern(List{
		Symbol("define"),
		List{Symbol("$name"), Symbol("..args")},
		Symbol("$body"),
	})
	for i, tt := range []struct {
		input   string
		pattern Pattern
		want    Bindings
		ok      bool
	}{
		{
			input:   "(define (sqr x) (* x x))",
			pattern: define,
			want: Bindings{
				"name": Symbol("sqr"),
				"args": List{Symbol("x")},
				"body": List{Symbol("*"), Symbol("x"), Symbol("x")},
			},
			ok: true,
		},
		{
			input:   "(define (thunk) 1)",
			pattern: define,
			want: Bindings{
				"name": Symbol("thunk"),
				"args": List{},
				"body": Number(1),
			},
			ok: true,
		},
		{
			input:   "(define (f x) 1 2)",
			pattern: define,
		},
		{
			input:   "(defun (f x) 1)",
			pattern: define,
		},
		{
			input:   "(define f 1)",
			pattern: define,
		},
		{
			input:   "anything",
			pattern: Wildcard{},
			want:    Bindings{},
			ok:      true,
		},
		{
			input:   "(a b)",
			pattern: Capture{Name: "x"},
			want:    Bindings{"x": List{Symbol("a"), Symbol("b")}},
			ok:      true,
		},
		{
			input:   "(a b c)",
			pattern: Seq{Capture{Name: "x"}, Capture{Name: "y"}},
		},
		{
			input:   "(a)",
			pattern: Seq{Capture{Name: "x"}, Capture{Name: "y"}},
		},
		{
			input:   "(a)",
			pattern: Seq{Capture{Name: "x"}, Rest{Name: "r"}},
			want:    Bindings{"x": Symbol("a"), "r": List{}},
			ok:      true,
		},
		{
			input:   "()",
			pattern: Seq{Capture{Name: "x"}, Rest{Name: "r"}},
		},
		{
			input:   "a",
			pattern: Seq{Rest{Name: "r"}},
		},
		{
			input:   "(a b)",
			pattern: Literal{Value: Symbol("a")},
		},
		{
			input:   "(quote (1 2))",
			pattern: Seq{Literal{Value: Symbol("quote")}, Seq{Literal{Value: Number(1)}, Wildcard{}}},
			want:    Bindings{},
			ok:      true,
		},
	} {
		got, ok := Match(mustParse(tt.input), tt.pattern)
		if ok != tt.ok {
			t.Errorf("%d) got match %v want %v", i, ok, tt.ok)
			continue
		}
		if !ok {
			if got != nil {
				t.Errorf("%d) failed match returned bindings %v", i, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("%d) successful match returned nil bindings", i)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%d) got %v want %v", i, got, tt.want)
		}
	}
}

func TestMatchRestIsCopied(t *testing.T) {
	expr := List{Symbol("f"), Symbol("a"), Symbol("b")}
	b, ok := Match(expr, Seq{Literal{Value: Symbol("f")}, Rest{Name: "args"}})
	if !ok {
		t.Fatal("expected match")
	}
	args := b["args"].(List)
	args[0] = Symbol("changed")
	if expr[1] != Symbol("a") {
		t.Errorf("matching aliased the input: %s", expr)
	}
}

func TestCompilePattern(t *testing.T) {
	for i, tt := range []struct {
		input Expr
		want  Pattern
	}{
		{input: Symbol("_"), want: Wildcard{}},
		{input: Symbol("$x"), want: Capture{Name: "x"}},
		{input: Symbol("..xs"), want: Rest{Name: "xs"}},
		{input: Symbol("$"), want: Literal{Value: Symbol("$")}},
		{input: Number(42), want: Literal{Value: Number(42)}},
		{
			input: List{Symbol("if"), Symbol("$c"), Symbol("_"), Symbol("..r")},
			want:  Seq{Literal{Value: Symbol("if")}, Capture{Name: "c"}, Wildcard{}, Rest{Name: "r"}},
		},
	} {
		got, err := CompilePattern(tt.input)
		if err != nil {
			t.Errorf("%d) unexpected error %v", i, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%d) got %#v want %#v", i, got, tt.want)
		}
	}
	if _, err := CompilePattern(List{Symbol("..xs"), Symbol("$y")}); err == nil {
		t.Error("expected error for rest capture before the end")
	}
}
