package lisp

import (
	"maps"
	"strconv"
	"sync"
)

type gensymKey struct {
	base      string
	namespace string
}

type takenKey struct {
	name      Symbol
	namespace string
}

// Gensyms hands out fresh symbols: base followed by a per (base, namespace)
// counter starting at 0. Counters only go up, and a name is never handed out
// twice within a namespace, even when two bases would spell it the same way
// ("x1"+"0" and "x"+"10"). The zero value is ready to use.
type Gensyms struct {
	mu       sync.Mutex
	counters map[gensymKey]int
	taken    map[takenKey]struct{}
}

// DefaultGensyms is the process-wide table behind Gensym.
var DefaultGensyms = NewGensyms()

func NewGensyms() *Gensyms {
	return &Gensyms{
		counters: map[gensymKey]int{},
		taken:    map[takenKey]struct{}{},
	}
}

func Gensym(base, namespace string) Symbol {
	return DefaultGensyms.Next(base, namespace)
}

func (g *Gensyms) init() {
	if g.counters == nil {
		g.counters = map[gensymKey]int{}
	}
	if g.taken == nil {
		g.taken = map[takenKey]struct{}{}
	}
}

func (g *Gensyms) Next(base, namespace string) Symbol {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.init()
	key := gensymKey{base, namespace}
	n := g.counters[key]
	for {
		name := Symbol(base + strconv.Itoa(n))
		n++
		taken := takenKey{name, namespace}
		if _, ok := g.taken[taken]; ok {
			continue
		}
		g.counters[key] = n
		g.taken[taken] = struct{}{}
		return name
	}
}

// Reserve marks names as used in namespace so Next skips them.
func (g *Gensyms) Reserve(namespace string, names ...Symbol) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.init()
	for _, name := range names {
		g.taken[takenKey{name, namespace}] = struct{}{}
	}
}

// Fork returns an independent copy continuing from the current counters.
func (g *Gensyms) Fork() *Gensyms {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.init()
	return &Gensyms{
		counters: maps.Clone(g.counters),
		taken:    maps.Clone(g.taken),
	}
}

func (g *Gensyms) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters = map[gensymKey]int{}
	g.taken = map[takenKey]struct{}{}
}

// Symbols appends every symbol occurring in e to dst.
func Symbols(dst []Symbol, e Expr) []Symbol {
	switch x := e.(type) {
	case Symbol:
		dst = append(dst, x)
	case List:
		for _, elem := range x {
			dst = Symbols(dst, elem)
		}
	}
	return dst
}
