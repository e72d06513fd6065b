package ware

import (
	"context"
	"sync"
)

// Step is a middleware that receives the pipeline value and returns the value
// handed to the next middleware. A non-nil error diverts the run to the next
// registered ErrorStep.
type Step[T any] func(ctx context.Context, v T) (T, error)

// ErrorStep is a middleware that handles an error in flight. Returning a nil
// error resolves it and resumes normal execution with the returned value.
// Returning an error (the same or a new one) hands it on to the next ErrorStep.
type ErrorStep[T any] func(ctx context.Context, err error, v T) (T, error)

// Steps is an ordered sequence of entries registered one after the other.
type Steps[T any] []Entry[T]

// Entry is anything that can be passed to [Chain.Use]: a [Step], an
// [ErrorStep], a [Steps] sequence, or another [*Chain].
type Entry[T any] interface {
	appendTo(links []link[T]) []link[T]
}

// link is a single registered middleware, tagged by its variant.
type link[T any] struct {
	step      Step[T]
	errorStep ErrorStep[T]
}

func (l link[T]) handlesErrors() bool {
	return l.errorStep != nil
}

func (s Step[T]) appendTo(links []link[T]) []link[T] {
	if s == nil {
		panic("ware: nil Step passed to Use")
	}
	return append(links, link[T]{step: s})
}

func (s ErrorStep[T]) appendTo(links []link[T]) []link[T] {
	if s == nil {
		panic("ware: nil ErrorStep passed to Use")
	}
	return append(links, link[T]{errorStep: s})
}

func (s Steps[T]) appendTo(links []link[T]) []link[T] {
	for _, e := range s {
		if e == nil {
			panic("ware: nil entry passed to Use")
		}
		links = e.appendTo(links)
	}
	return links
}

// Chain is an ordered list of middleware run against a pipeline value of
// type T. Middleware run in registration order; registering the same
// function twice runs it twice.
type Chain[T any] struct {
	mu     sync.RWMutex
	links  []link[T]
	name   string
	logger Logger
}

// New returns a new Chain, optionally seeded with entries.
func New[T any](entries ...Entry[T]) *Chain[T] {
	c := &Chain[T]{}
	return c.Use(entries...)
}

// WithName sets the name reported in log records for runs of this chain.
// Returns the Chain instance for chaining.
func (c *Chain[T]) WithName(name string) *Chain[T] {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
	return c
}

// WithLogger sets the logger used by runs of this chain, overriding the
// package default. Returns the Chain instance for chaining.
func (c *Chain[T]) WithLogger(l Logger) *Chain[T] {
	c.mu.Lock()
	c.logger = l
	c.mu.Unlock()
	return c
}

// Use appends entries to the chain. Nested chains are flattened: their
// middleware are copied in order at the time of the call. Sequences are
// registered element by element.
// Returns the Chain instance for method chaining.
func (c *Chain[T]) Use(entries ...Entry[T]) *Chain[T] {
	// Resolve before locking: a chain passed to its own Use reads itself.
	var links []link[T]
	links = Steps[T](entries).appendTo(links)

	c.mu.Lock()
	c.links = append(c.links, links...)
	c.mu.Unlock()
	return c
}

// Len returns the number of registered middleware.
func (c *Chain[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.links)
}

func (c *Chain[T]) appendTo(links []link[T]) []link[T] {
	if c == nil {
		panic("ware: nil Chain passed to Use")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(links, c.links...)
}

// snapshot returns the state a run works on. The returned slice is never
// appended to, so later registrations do not affect a run in progress.
func (c *Chain[T]) snapshot() ([]link[T], string, Logger) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l := c.logger
	if l == nil {
		l = defaultLogger()
	}
	return c.links[:len(c.links):len(c.links)], c.name, l
}
