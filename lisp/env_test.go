package lisp

import "testing"

func TestEnv(t *testing.T) {
	outer := NewEnv(nil)
	if !outer.Add("x", "x0") {
		t.Fatal("first binding rejected")
	}
	if outer.Add("x", "x9") {
		t.Error("rebinding in the same scope should be rejected")
	}
	inner := outer.Extend()
	inner.Add("x", "x1")
	inner.Add("y", "y0")

	for i, tt := range []struct {
		env  *Env
		in   Symbol
		want Symbol
	}{
		{env: inner, in: "x", want: "x1"},
		{env: inner, in: "y", want: "y0"},
		{env: outer, in: "x", want: "x0"},
		{env: outer, in: "y", want: "y"},
		{env: inner, in: "free", want: "free"},
		{env: nil, in: "z", want: "z"},
	} {
		if got := tt.env.Lookup(tt.in); got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
}
