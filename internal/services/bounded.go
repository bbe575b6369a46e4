package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// bounded runs fn with a context that expires after d. If the deadline hits
// first, bounded returns ErrTimeout without waiting for fn; fn sees the
// cancelled context and its late result is discarded. Cancellation of the
// parent ctx is returned as-is.
func bounded[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && parent.Err() == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return r.v, fmt.Errorf("%w after %s", ErrTimeout, d)
		}
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		if err := parent.Err(); err != nil {
			return zero, err
		}
		return zero, fmt.Errorf("%w after %s", ErrTimeout, d)
	}
}
