package prompt

import (
	"context"
	"sync"
)

// Lazy is a value computed on first use and memoized, errors included.
type Lazy[T any] struct {
	once  sync.Once
	fn    func(context.Context) (T, error)
	value T
	err   error
}

// NewLazy returns a Lazy computed by fn.
func NewLazy[T any](fn func(context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{fn: fn}
}

// LazyValue returns a Lazy that is already computed.
func LazyValue[T any](v T) *Lazy[T] {
	l := &Lazy[T]{value: v}
	l.once.Do(func() {})
	return l
}

// Get computes the value on the first call and returns the memoized
// result afterwards. ctx is only used by the first call.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.fn(ctx)
	})
	return l.value, l.err
}
