package hooks

// SyncHook calls every tap in registration order.
type SyncHook[F any] struct {
	base[F]
}

// Call dispatches to every tap; invoke adapts the stored callback to the
// call's arguments.
func (h *SyncHook[F]) Call(invoke func(f F, hookCtx *HookContext)) {
	d := h.snapshot()
	for _, c := range d.call {
		invoke(c, d.hookCtx)
	}
	for _, t := range d.taps {
		d.before(t)
		invoke(t.F, d.hookCtx)
	}
}

// SyncBailHook calls taps in order until one returns a non-nil result.
type SyncBailHook[F, R any] struct {
	base[F]
}

// Call returns the first non-nil tap result, or nil when every tap
// declines. Taps after the bailing one are not invoked.
func (h *SyncBailHook[F, R]) Call(invoke func(f F, hookCtx *HookContext) *R) *R {
	d := h.snapshot()
	for _, c := range d.call {
		invoke(c, d.hookCtx)
	}
	for _, t := range d.taps {
		d.before(t)
		if r := invoke(t.F, d.hookCtx); r != nil {
			return r
		}
	}
	return nil
}

// SyncWaterfallHook threads a value through the taps: each receives the
// previous tap's result.
type SyncWaterfallHook[F, R any] struct {
	base[F]
}

// Call seeds the accumulator with initial and returns the last tap's
// result, or initial when there are no taps.
func (h *SyncWaterfallHook[F, R]) Call(initial R, invoke func(f F, acc R, hookCtx *HookContext) R) R {
	d := h.snapshot()
	for _, c := range d.call {
		invoke(c, initial, d.hookCtx)
	}
	acc := initial
	for _, t := range d.taps {
		d.before(t)
		acc = invoke(t.F, acc, d.hookCtx)
	}
	return acc
}

// SyncLoopHook re-runs its taps until a full pass completes without any tap
// returning Restart. L is the loop interceptor signature.
type SyncLoopHook[F, L any] struct {
	base[F]
	loopInterceptors[L]
}

// Call runs the loop. invokeInterceptor adapts loop interceptors to the
// call's arguments.
func (h *SyncLoopHook[F, L]) Call(invoke func(f F, hookCtx *HookContext) LoopResult, invokeInterceptor func(l L, hookCtx *HookContext)) {
	d := h.snapshot()
	loop := h.loops()
	for _, c := range d.call {
		invoke(c, d.hookCtx)
	}

	for restart := true; restart; {
		restart = false
		for _, l := range loop {
			invokeInterceptor(l, d.hookCtx)
		}
		for _, t := range d.taps {
			d.before(t)
			if invoke(t.F, d.hookCtx) == Restart {
				restart = true
				break
			}
		}
	}
}
