// Package fanout maps a function over a batch of inputs on a fixed pool of
// goroutines. Results line up with the inputs by index.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPanic is wrapped by the error recorded for an item whose fn panicked.
var ErrPanic = errors.New("fanout: worker panicked")

// Result is the outcome for one input: Value when Err is nil.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn once per item on at most maxWorkers goroutines and blocks
// until all items are settled. maxWorkers below 1 means 1.
//
// Items not yet started when ctx is done are settled with ctx.Err() without
// calling fn. A panic in fn settles that item with an error wrapping ErrPanic
// and leaves the other items running.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for range min(max(maxWorkers, 1), len(items)) {
		wg.Go(func() {
			for i := range next {
				if err := ctx.Err(); err != nil {
					results[i] = Result[R]{Err: err}
					continue
				}
				results[i] = call(ctx, items[i], fn)
			}
		})
	}

	for i := range items {
		next <- i
	}
	close(next)
	wg.Wait()

	return results
}

func call[T, R any](ctx context.Context, item T, fn func(context.Context, T) (R, error)) (res Result[R]) {
	defer func() {
		if p := recover(); p != nil {
			res = Result[R]{Err: fmt.Errorf("%w: %v", ErrPanic, p)}
		}
	}()
	v, err := fn(ctx, item)
	return Result[R]{Value: v, Err: err}
}
