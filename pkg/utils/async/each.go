package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Each runs fn concurrently for every index in [0, n) and blocks until
// all invocations have settled. The returned slice is index-aligned:
// result[i] is the error of fn(ctx, i), nil on success. A panic inside
// fn is recovered, logged with its stack, and reported as that index's
// error rather than crashing the process.
func Each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(ctx).Error("Panic in async task",
						"recover", r,
						"stack", string(stack),
					)
					errs[i] = goerr.New("panic in async task", goerr.V("recover", r))
				}
			}()

			errs[i] = fn(ctx, i)
		}(i)
	}
	wg.Wait()

	return errs
}
