package ware

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrNoResult is returned by a [Deferred] step whose channel closes without
// delivering a result.
var ErrNoResult = errors.New("ware: deferred step produced no result")

// PanicError wraps a value recovered from a panicking middleware together
// with the stack trace at the point of the panic. It travels through the
// chain like any other error.
type PanicError struct {
	// Value is the original value that was passed to panic().
	Value any
	// Stack contains the stack trace of the panicking goroutine.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("ware: panic recovered: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	return &PanicError{
		Value: v,
		Stack: string(debug.Stack()),
	}
}
