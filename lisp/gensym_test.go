package lisp

import (
	"sync"
	"testing"
)

func TestGensyms(t *testing.T) {
	g := NewGensyms()
	for i, tt := range []struct {
		base, ns string
		want     Symbol
	}{
		{base: "k", ns: "cps", want: "k0"},
		{base: "k", ns: "cps", want: "k1"},
		{base: "rv", ns: "cps", want: "rv0"},
		{base: "k", ns: "other", want: "k0"},
		{base: "k", ns: "cps", want: "k2"},
	} {
		if got := g.Next(tt.base, tt.ns); got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}

	f := g.Fork()
	if got := f.Next("k", "cps"); got != "k3" {
		t.Errorf("fork: got %s want k3", got)
	}
	if got := g.Next("k", "cps"); got != "k3" {
		t.Errorf("fork shares counters: got %s want k3", got)
	}

	g.Reset()
	if got := g.Next("k", "cps"); got != "k0" {
		t.Errorf("reset: got %s want k0", got)
	}

	var zero Gensyms
	if got := zero.Next("x", ""); got != "x0" {
		t.Errorf("zero value: got %s want x0", got)
	}
}

func TestGensymsReserve(t *testing.T) {
	g := NewGensyms()
	g.Reserve("cps", "k0", "k2")
	for i, tt := range []struct {
		base, ns string
		want     Symbol
	}{
		{base: "k", ns: "cps", want: "k1"},
		{base: "k", ns: "cps", want: "k3"},
		{base: "k", ns: "other", want: "k0"},
		{base: "k1", ns: "cps", want: "k10"},
		{base: "k", ns: "cps", want: "k4"},
	} {
		if got := g.Next(tt.base, tt.ns); got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
	for range 5 {
		g.Next("k", "cps")
	}
	// k10 was handed out under base k1
	if got := g.Next("k", "cps"); got != "k11" {
		t.Errorf("got %s want k11", got)
	}

	f := g.Fork()
	f.Reserve("cps", "k12")
	if got := g.Next("k", "cps"); got != "k12" {
		t.Errorf("fork reservation leaked: got %s want k12", got)
	}

	g.Reset()
	if got := g.Next("k", "cps"); got != "k0" {
		t.Errorf("reset: got %s want k0", got)
	}
}

func TestSymbols(t *testing.T) {
	got := Symbols(nil, List{Symbol("f"), List{Symbol("g"), Number(1)}, Str("s"), Symbol("x")})
	want := []Symbol{"f", "g", "x"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%d) got %s want %s", i, got[i], want[i])
		}
	}
}

func TestGensymsConcurrent(t *testing.T) {
	g := NewGensyms()
	const n = 100
	results := make(chan Symbol, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- g.Next("v", "test")
		}()
	}
	wg.Wait()
	close(results)
	seen := map[Symbol]bool{}
	for s := range results {
		if seen[s] {
			t.Errorf("duplicate symbol %s", s)
		}
		seen[s] = true
	}
	if len(seen) != n {
		t.Errorf("got %d distinct symbols want %d", len(seen), n)
	}
}
