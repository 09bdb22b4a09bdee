package lisp

// Env maps bound symbols to their renamed counterparts, chained to the
// enclosing scope.
type Env struct {
	dict  map[Symbol]Symbol
	outer *Env
}

func NewEnv(outer *Env) *Env {
	return &Env{dict: map[Symbol]Symbol{}, outer: outer}
}

func (e *Env) find(s Symbol) (*Env, bool) {
	if e == nil {
		return nil, false
	}
	if _, ok := e.dict[s]; ok {
		return e, true
	}
	return e.outer.find(s)
}

// Lookup returns the innermost renaming of s, or s itself if it is free.
func (e *Env) Lookup(s Symbol) Symbol {
	found, ok := e.find(s)
	if !ok {
		return s
	}
	return found.dict[s]
}

// Add binds s in this scope. It reports false if s is already bound here.
func (e *Env) Add(s, renamed Symbol) bool {
	if _, ok := e.dict[s]; ok {
		return false
	}
	e.dict[s] = renamed
	return true
}

func (e *Env) Extend() *Env {
	return NewEnv(e)
}
