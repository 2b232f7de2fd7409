package hooks

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/qntx-hooks/errors"
)

// AsyncParallelHook runs all taps concurrently and waits for them.
type AsyncParallelHook[F any] struct {
	base[F]
}

// Call starts every tap at once. The first error cancels the ctx passed to
// the remaining taps and is returned after all have finished.
func (h *AsyncParallelHook[F]) Call(ctx context.Context, invoke func(ctx context.Context, f F, hookCtx *HookContext) error) error {
	d := h.snapshot()
	if err := d.intercept(ctx, invoke); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range d.taps {
		g.Go(func() error {
			d.before(t)
			if err := invoke(gctx, t.F, d.hookCtx); err != nil {
				return tapError(err, t)
			}
			return nil
		})
	}
	return g.Wait()
}

// AsyncParallelBailHook runs taps concurrently, at most concurrency at a
// time, and bails with the first non-nil result to arrive.
//
// Experimental: which result wins when several taps answer is decided by
// completion order, not registration order.
type AsyncParallelBailHook[F, R any] struct {
	base[F]
}

// Call returns the first non-nil result in completion order. Once a result
// is found, taps not yet started are skipped and running ones see a
// canceled ctx. Errors from other taps are ignored once a result is found.
func (h *AsyncParallelBailHook[F, R]) Call(ctx context.Context, concurrency int, invoke func(ctx context.Context, f F, hookCtx *HookContext) (*R, error)) (*R, error) {
	if concurrency < 1 {
		return nil, errors.Newf("concurrency must be >= 1, got %d", concurrency)
	}

	d := h.snapshot()
	err := d.intercept(ctx, func(ctx context.Context, f F, hookCtx *HookContext) error {
		_, err := invoke(ctx, f, hookCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		result *R
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, t := range d.taps {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			d.before(t)
			r, err := invoke(gctx, t.F, d.hookCtx)
			if err != nil {
				return tapError(err, t)
			}
			if r != nil {
				mu.Lock()
				if result == nil {
					result = r
					cancel()
				}
				mu.Unlock()
			}
			return nil
		})
	}

	err = g.Wait()
	mu.Lock()
	defer mu.Unlock()
	if result != nil {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	// The caller's ctx may have ended before any tap ran
	return nil, ctx.Err()
}
