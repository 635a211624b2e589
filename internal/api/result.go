package api

import (
	"context"
)

// Result is either a decoded value or a Failure, never both.
type Result[T any] struct {
	value   T
	failure *Failure
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failure. A nil failure is replaced with a generic error so the
// result can never look successful by accident.
func Err[T any](f *Failure) Result[T] {
	if f == nil {
		f = ServerFailure(0, "unknown failure", SeverityError)
	}
	return Result[T]{failure: f}
}

// OK reports whether the result holds a value.
func (r Result[T]) OK() bool { return r.failure == nil }

// Value returns the decoded value (zero value on failure).
func (r Result[T]) Value() T { return r.value }

// Failure returns the failure, nil on success.
func (r Result[T]) Failure() *Failure { return r.failure }

// Unwrap converts the result back into Go's (value, error) convention.
func (r Result[T]) Unwrap() (T, error) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	return r.value, nil
}

// Do issues a request through c and decodes the body into T.
func Do[T any](ctx context.Context, c *Client, method, path string, opts Options) Result[T] {
	var out T
	if err := c.Request(ctx, method, path, opts, &out); err != nil {
		if f, ok := AsFailure(err); ok {
			return Err[T](f)
		}
		return Err[T](ServerFailure(0, err.Error(), SeverityError))
	}
	return Ok(out)
}
