package configs

import (
	"errors"
	"iter"
)

// First decodes the first value found at path, or returns the zero value if
// no file defines it.
func First[T any](loader Loader, path string) (T, error) {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil && !errors.Is(err, ErrValueNotFound) {
		return value, err
	}
	return value, nil
}

// All decodes the value at path from every file that defines it.
func All[T any](loader Loader, path string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for value, err := range loader.IterCueValues(path) {
			var v T
			if err == nil {
				err = value.Decode(&v)
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
