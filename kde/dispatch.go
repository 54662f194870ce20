package kde

import (
	"context"
	"fmt"
	"runtime"

	"github.com/groupkde/groupkde/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runParallel fans task out across the units of one batch and returns
// the outputs in input order. Each task writes exactly one pre-allocated
// slot, keyed by its unit's input index, so completion order never leaks
// into result order. Admission is pull-based: workers pick up the next
// unit as they free, which keeps skewed unit sizes from stranding work
// behind a static split.
//
// Cancellation is batch-granular: once ctx is done, units not yet
// started are abandoned and the call returns the context error. A
// panicking unit fails the batch, not the process.
func runParallel[T any](ctx context.Context, workers, n int, task func(int) T) ([]T, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]T, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					utils.GetLogger(ctx).Error("kde unit panicked", zap.Int("unit", i),
						zap.Any("err", r), zap.String("panic info", utils.GetPanicInfo()))
					err = fmt.Errorf("unit %d panicked: %v", i, r)
				}
			}()

			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = task(i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
