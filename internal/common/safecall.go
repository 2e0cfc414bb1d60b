package common

import "fmt"

// Try runs a fallible operation and returns exactly one of value or error.
// A panic inside fn is captured and returned as the error, so collaborator
// calls behave as plain fallible steps at the call site.
func Try[T any](fn func() (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			val = zero
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
