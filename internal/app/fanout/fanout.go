// Package fanout runs one function across a slice of inputs with a bounded
// number of goroutines. The signing service uses it to send reminder batches
// without hammering the provider. It depends only on the standard library so
// any application service can reach for it.
package fanout

import (
	"context"
	"sync"
)

// Result pairs each input with its outcome: Value on success, Err on
// failure.
type Result[R any] struct {
	Value R
	Err   error
}

// Run applies fn to every element of items, at most maxWorkers at a time,
// and returns the outcomes in input order. maxWorkers must be >= 1.
//
// Cancellation: a goroutine still waiting for a worker slot when ctx ends
// records ctx.Err() without calling fn; goroutines that already hold a slot
// run fn to completion (fn may observe ctx itself). Run always waits for all
// goroutines before returning. Empty input yields an empty non-nil slice.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}

	results := make([]Result[R], len(items))
	slots := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, in T) {
			defer wg.Done()

			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
			case <-ctx.Done():
				results[idx] = Result[R]{Err: ctx.Err()}
				return
			}

			value, err := fn(ctx, in)
			results[idx] = Result[R]{Value: value, Err: err}
		}(i, item)
	}

	wg.Wait()
	return results
}
