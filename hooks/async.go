package hooks

import (
	"context"

	"github.com/teranos/qntx-hooks/errors"
)

// AsyncSeriesHook awaits each tap in turn. The first error stops the call.
type AsyncSeriesHook[F any] struct {
	base[F]
}

// Call runs the taps in order. A canceled ctx stops the call before the next
// tap.
func (h *AsyncSeriesHook[F]) Call(ctx context.Context, invoke func(ctx context.Context, f F, hookCtx *HookContext) error) error {
	d := h.snapshot()
	if err := d.intercept(ctx, invoke); err != nil {
		return err
	}
	for _, t := range d.taps {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.before(t)
		if err := invoke(ctx, t.F, d.hookCtx); err != nil {
			return tapError(err, t)
		}
	}
	return nil
}

// AsyncSeriesBailHook awaits taps in order until one returns a non-nil
// result.
type AsyncSeriesBailHook[F, R any] struct {
	base[F]
}

// Call returns the first non-nil tap result, or nil when every tap declines.
func (h *AsyncSeriesBailHook[F, R]) Call(ctx context.Context, invoke func(ctx context.Context, f F, hookCtx *HookContext) (*R, error)) (*R, error) {
	d := h.snapshot()
	err := d.intercept(ctx, func(ctx context.Context, f F, hookCtx *HookContext) error {
		_, err := invoke(ctx, f, hookCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, t := range d.taps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.before(t)
		r, err := invoke(ctx, t.F, d.hookCtx)
		if err != nil {
			return nil, tapError(err, t)
		}
		if r != nil {
			return r, nil
		}
	}
	return nil, nil
}

// AsyncSeriesWaterfallHook threads a value through the taps in order.
type AsyncSeriesWaterfallHook[F, R any] struct {
	base[F]
}

// Call seeds the accumulator with initial and returns the last tap's
// result. On error the zero R is returned.
func (h *AsyncSeriesWaterfallHook[F, R]) Call(ctx context.Context, initial R, invoke func(ctx context.Context, f F, acc R, hookCtx *HookContext) (R, error)) (R, error) {
	var zero R
	d := h.snapshot()
	err := d.intercept(ctx, func(ctx context.Context, f F, hookCtx *HookContext) error {
		_, err := invoke(ctx, f, initial, hookCtx)
		return err
	})
	if err != nil {
		return zero, err
	}

	acc := initial
	for _, t := range d.taps {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		d.before(t)
		if acc, err = invoke(ctx, t.F, acc, d.hookCtx); err != nil {
			return zero, tapError(err, t)
		}
	}
	return acc, nil
}

// AsyncSeriesLoopHook re-runs its taps in order until a full pass completes
// without any tap returning Restart.
type AsyncSeriesLoopHook[F, L any] struct {
	base[F]
	loopInterceptors[L]
}

// Call runs the loop until it settles, an error occurs or ctx is done.
func (h *AsyncSeriesLoopHook[F, L]) Call(ctx context.Context, invoke func(ctx context.Context, f F, hookCtx *HookContext) (LoopResult, error), invokeInterceptor func(ctx context.Context, l L, hookCtx *HookContext) error) error {
	d := h.snapshot()
	loop := h.loops()
	err := d.intercept(ctx, func(ctx context.Context, f F, hookCtx *HookContext) error {
		_, err := invoke(ctx, f, hookCtx)
		return err
	})
	if err != nil {
		return err
	}

	for restart := true; restart; {
		restart = false
		for _, l := range loop {
			if err := invokeInterceptor(ctx, l, d.hookCtx); err != nil {
				return errors.Wrap(err, "loop interceptor")
			}
		}
		for _, t := range d.taps {
			if err := ctx.Err(); err != nil {
				return err
			}
			d.before(t)
			result, err := invoke(ctx, t.F, d.hookCtx)
			if err != nil {
				return tapError(err, t)
			}
			if result == Restart {
				restart = true
				break
			}
		}
	}
	return nil
}

// intercept runs the call interceptors in order; the first error aborts.
func (d dispatch[F]) intercept(ctx context.Context, invoke func(ctx context.Context, f F, hookCtx *HookContext) error) error {
	for _, c := range d.call {
		if err := invoke(ctx, c, d.hookCtx); err != nil {
			return errors.Wrap(err, "call interceptor")
		}
	}
	return nil
}

func tapError[F any](err error, t TapInfo[F]) error {
	return errors.Wrapf(err, "tap %q (%s)", t.Name, t.ID)
}
