package ware

import (
	"context"

	"github.com/google/uuid"
)

// Done receives the outcome of a run started with [Chain.Start]: the error
// that ended the run (nil on success) and the final pipeline value.
type Done[T any] func(err error, v T)

// Run executes the chain against v and returns the final pipeline value and
// the error the run ended with.
//
// Each Step receives the value produced by the previous successful
// middleware. When a middleware fails, the following Steps are skipped and
// the error is handed to the next ErrorStep. An ErrorStep that returns nil
// resolves the error and execution resumes with the next middleware. An
// error left after the last ErrorStep is consumed, or after the chain is
// exhausted, is returned. On error the returned value is the last one
// produced before the failure.
//
// Panics in middleware are recovered and become a [*PanicError].
func (c *Chain[T]) Run(ctx context.Context, v T) (T, error) {
	return c.newRun().exec(ctx, v)
}

// Start executes the chain against v on a new goroutine and returns
// immediately. done is called exactly once when the run ends.
// The middleware list is captured before Start returns, so entries
// registered afterwards only affect later runs.
// Returns the Chain instance for method chaining.
func (c *Chain[T]) Start(ctx context.Context, v T, done Done[T]) *Chain[T] {
	if done == nil {
		panic("ware: nil Done passed to Start")
	}
	r := c.newRun()
	go func() {
		out, err := r.exec(ctx, v)
		done(err, out)
	}()
	return c
}

// run holds the state of a single execution. It is never shared.
type run[T any] struct {
	links []link[T]
	log   Logger
	attrs []any
}

func (c *Chain[T]) newRun() *run[T] {
	links, name, log := c.snapshot()
	attrs := []any{"run_id", uuid.NewString()}
	if name != "" {
		attrs = append(attrs, "chain", name)
	}
	return &run[T]{links: links, log: log, attrs: attrs}
}

func (r *run[T]) args(kv ...any) []any {
	out := make([]any, 0, len(r.attrs)+len(kv))
	out = append(out, r.attrs...)
	return append(out, kv...)
}

func (r *run[T]) exec(ctx context.Context, v T) (T, error) {
	remaining := 0
	for _, l := range r.links {
		if l.handlesErrors() {
			remaining++
		}
	}
	r.log.Debug("ware: run started", r.args("steps", len(r.links), "error_steps", remaining)...)

	var err error
	for i := 0; ; i++ {
		if err != nil && remaining == 0 {
			r.log.Warn("ware: unhandled error", r.args("step", i-1, "error", err)...)
			return v, err
		}
		if i >= len(r.links) {
			if err != nil {
				r.log.Warn("ware: unhandled error", r.args("step", i-1, "error", err)...)
			} else {
				r.log.Debug("ware: run finished", r.args()...)
			}
			return v, err
		}

		l := r.links[i]
		switch {
		case err != nil && !l.handlesErrors():
			r.log.Debug("ware: skipping step", r.args("step", i)...)
		case err != nil:
			remaining--
			r.log.Debug("ware: handling error", r.args("step", i, "error", err)...)
			v, err = r.handle(ctx, i, l.errorStep, err, v)
		case l.handlesErrors():
			// Nothing to handle.
		default:
			v, err = r.call(ctx, i, l.step, v)
		}
	}
}

func (r *run[T]) call(ctx context.Context, i int, s Step[T], v T) (out T, err error) {
	defer r.recoverPanic(i, v, &out, &err)
	next, err := s(ctx, v)
	if err != nil {
		return v, err
	}
	return next, nil
}

func (r *run[T]) handle(ctx context.Context, i int, s ErrorStep[T], cause error, v T) (out T, err error) {
	defer r.recoverPanic(i, v, &out, &err)
	next, err := s(ctx, cause, v)
	if err != nil {
		return v, err
	}
	return next, nil
}

func (r *run[T]) recoverPanic(i int, v T, out *T, err *error) {
	p := recover()
	if p == nil {
		return
	}
	r.log.Error("ware: middleware panicked", r.args("step", i, "panic", p)...)
	*out = v
	*err = newPanicError(p)
}
