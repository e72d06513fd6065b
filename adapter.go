package ware

import (
	"context"
	"sync"
)

// Next is the continuation handed to continuation-style middleware. Only the
// first call has any effect.
type Next[T any] func(v T, err error)

// Result is the outcome of a deferred middleware.
type Result[T any] struct {
	Value T
	Err   error
}

// Callback adapts a middleware that signals completion by calling next,
// possibly from another goroutine and possibly after fn has returned.
//
// A panic in fn before next is called fails the step with a [*PanicError].
// If next is never called, the step waits until ctx is done and fails with
// ctx.Err(); a context that is never done leaves the run suspended.
func Callback[T any](fn func(ctx context.Context, v T, next Next[T])) Step[T] {
	if fn == nil {
		panic("ware: nil function passed to Callback")
	}
	return func(ctx context.Context, v T) (T, error) {
		return await(ctx, v, func(next Next[T]) {
			fn(ctx, v, next)
		})
	}
}

// ErrorCallback is the [Callback] adapter for error handlers.
func ErrorCallback[T any](fn func(ctx context.Context, err error, v T, next Next[T])) ErrorStep[T] {
	if fn == nil {
		panic("ware: nil function passed to ErrorCallback")
	}
	return func(ctx context.Context, err error, v T) (T, error) {
		return await(ctx, v, func(next Next[T]) {
			fn(ctx, err, v, next)
		})
	}
}

// Deferred adapts a middleware that returns a channel delivering its result
// later. A channel closed without a value fails the step with [ErrNoResult].
// The step fails with ctx.Err() if ctx is done first.
func Deferred[T any](fn func(ctx context.Context, v T) <-chan Result[T]) Step[T] {
	if fn == nil {
		panic("ware: nil function passed to Deferred")
	}
	return func(ctx context.Context, v T) (T, error) {
		ch := fn(ctx, v)
		if ch == nil {
			return v, ErrNoResult
		}
		select {
		case res, ok := <-ch:
			if !ok {
				return v, ErrNoResult
			}
			return res.Value, res.Err
		case <-ctx.Done():
			return v, ctx.Err()
		}
	}
}

// Sync adapts a middleware that cannot fail.
func Sync[T any](fn func(ctx context.Context, v T) T) Step[T] {
	if fn == nil {
		panic("ware: nil function passed to Sync")
	}
	return func(ctx context.Context, v T) (T, error) {
		return fn(ctx, v), nil
	}
}

// Tap adapts a middleware that inspects the value without replacing it.
func Tap[T any](fn func(ctx context.Context, v T) error) Step[T] {
	if fn == nil {
		panic("ware: nil function passed to Tap")
	}
	return func(ctx context.Context, v T) (T, error) {
		return v, fn(ctx, v)
	}
}

// await invokes call with a continuation and blocks until the continuation
// fires or ctx is done. The continuation is honoured at most once.
func await[T any](ctx context.Context, v T, call func(next Next[T])) (T, error) {
	res := make(chan Result[T], 1)
	var once sync.Once
	next := func(out T, err error) {
		once.Do(func() {
			res <- Result[T]{Value: out, Err: err}
		})
	}

	func() {
		defer func() {
			if p := recover(); p != nil {
				next(v, newPanicError(p))
			}
		}()
		call(next)
	}()

	select {
	case r := <-res:
		return r.Value, r.Err
	default:
	}

	select {
	case r := <-res:
		return r.Value, r.Err
	case <-ctx.Done():
		once.Do(func() {})
		return v, ctx.Err()
	}
}
