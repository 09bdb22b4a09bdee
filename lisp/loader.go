package lisp

import (
	"fmt"
	"os"
)

// TODO: read from a stream and hand back expressions as they complete.
// For now, we just slurp in the entire file and return a list of expressions
func (r *Reader) ReadFile(filename string) ([]Expr, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	list, err := r.ReadAll(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return list, nil
}

func ParseFile(filename string) ([]Expr, error) {
	return defaultReader.ReadFile(filename)
}
