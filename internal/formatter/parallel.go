package formatter

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach calls fn for each index in [0, n) with at most jobs calls in flight.
// jobs below 1 is treated as 1, which runs the calls strictly in order.
// The first error cancels the context passed to the remaining calls and is
// returned once every started call has finished.
func ForEach(ctx context.Context, jobs, n int, fn func(ctx context.Context, i int) error) error {
	if jobs < 1 {
		jobs = 1
	}

	if jobs == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
