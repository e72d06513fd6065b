// Package ware runs an ordered list of middleware against a shared value.
//
// A [Chain] holds middleware in registration order. [Chain.Run] calls them
// one at a time, handing each the value produced by the previous one, until
// the chain is exhausted or an error is left with nobody to handle it.
//
// # Basic Usage
//
// Create a chain, register steps and run it:
//
//	c := ware.New[int]().
//		Use(ware.Step[int](func(ctx context.Context, n int) (int, error) {
//			return n + 1, nil
//		})).
//		Use(ware.Step[int](func(ctx context.Context, n int) (int, error) {
//			return n * 2, nil
//		}))
//
//	n, err := c.Run(ctx, 3) // n == 8, err == nil
//
// # Steps and Error Steps
//
// Middleware come in two variants. A [Step] receives the value. An
// [ErrorStep] receives an error and the value, and only runs while an error
// is in flight:
//
//	c.Use(ware.ErrorStep[int](func(ctx context.Context, err error, n int) (int, error) {
//		if errors.Is(err, errTooBig) {
//			return 0, nil // resolved, the run continues
//		}
//		return n, err // hand it to the next error step
//	}))
//
// When a middleware fails, the Steps after it are skipped until an ErrorStep
// is found. Each ErrorStep is used at most once per run. An error that
// reaches the end of the chain is returned by Run. Panics are recovered and
// reported as a [*PanicError].
//
// # Composition
//
// [Chain.Use] accepts steps, other chains and [Steps] sequences. A nested
// chain contributes a copy of its middleware at the time of the call:
//
//	auth := ware.New[*Request](checkToken, loadUser)
//	api := ware.New[*Request]().Use(logRequest, auth, ware.Steps[*Request]{validate, handle})
//
// # Asynchronous Middleware
//
// A Step completes when it returns. [Callback] and [Deferred] adapt
// middleware that report completion through a continuation or a channel.
// [Chain.Start] runs the chain on its own goroutine and reports the outcome
// through a [Done] continuation.
//
// # HTTP
//
// [Handler] serves HTTP requests by running a Chain of [*Exchange] values.
// The exchange's [ResponseWriter] tracks the status code and size, so error
// handling can tell whether a response was already sent.
//
// # Logging
//
// Runs log through a [Logger], by default slog.Default(). Use
// [SetDefaultLogger] or [Chain.WithLogger] to change it.
package ware
