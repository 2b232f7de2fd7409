package hooks

import "sync"

// TapInfo describes one registered callback.
type TapInfo[F any] struct {
	Name string
	ID   string
	F    F
}

// RegisterInterceptor sees every tap at registration and returns the tap to
// store, possibly modified. Returning nil rejects the registration.
type RegisterInterceptor[F any] func(TapInfo[F]) *TapInfo[F]

// TapInterceptor runs right before each tap is invoked.
type TapInterceptor[F any] func(hookCtx *HookContext, tap TapInfo[F])

// base holds the tap list and interceptors shared by all ten hook shapes.
// The zero value is ready to use.
type base[F any] struct {
	mu       sync.RWMutex
	taps     []TapInfo[F]
	ids      IDGenerator
	register []RegisterInterceptor[F]
	tap      []TapInterceptor[F]
	call     []F
}

// Tap registers f under name and id and returns the id. A tap with the same
// id is replaced in place, keeping its position.
func (b *base[F]) Tap(name, id string, f F) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	info := &TapInfo[F]{Name: name, ID: id, F: f}
	for _, intercept := range b.register {
		if info = intercept(*info); info == nil {
			return id
		}
	}

	for i := range b.taps {
		if b.taps[i].ID == info.ID {
			b.taps[i] = *info
			return info.ID
		}
	}
	b.taps = append(b.taps, *info)
	return info.ID
}

// Untap removes the tap registered under id and reports whether it existed.
func (b *base[F]) Untap(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.taps {
		if b.taps[i].ID == id {
			b.taps = append(b.taps[:i:i], b.taps[i+1:]...)
			return true
		}
	}
	return false
}

// Taps returns a snapshot of the registered taps in call order.
func (b *base[F]) Taps() []TapInfo[F] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]TapInfo[F](nil), b.taps...)
}

// NextID returns an id for a tap registered without one.
func (b *base[F]) NextID() string {
	b.mu.RLock()
	ids := b.ids
	b.mu.RUnlock()

	if ids == nil {
		ids = defaultIDGenerator()
	}
	return ids.NextID()
}

// SetIDGenerator overrides the process-wide generator for this hook.
func (b *base[F]) SetIDGenerator(g IDGenerator) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ids = g
}

// InterceptRegister adds a register interceptor. It applies to taps
// registered afterwards.
func (b *base[F]) InterceptRegister(i RegisterInterceptor[F]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.register = append(b.register, i)
}

// InterceptTap adds an interceptor run before every tap invocation.
func (b *base[F]) InterceptTap(i TapInterceptor[F]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tap = append(b.tap, i)
}

// InterceptCall adds a call interceptor. It has the taps' own signature and
// receives the call arguments once per Call, before any tap. Its result is
// ignored, except that an async interceptor's error aborts the call.
func (b *base[F]) InterceptCall(f F) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.call = append(b.call, f)
}

// dispatch is the state one Call works on. Taps registered during a call
// take effect on the next one.
type dispatch[F any] struct {
	hookCtx *HookContext
	taps    []TapInfo[F]
	tap     []TapInterceptor[F]
	call    []F
}

func (b *base[F]) snapshot() dispatch[F] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return dispatch[F]{
		hookCtx: NewHookContext(),
		taps:    append([]TapInfo[F](nil), b.taps...),
		tap:     append([]TapInterceptor[F](nil), b.tap...),
		call:    append([]F(nil), b.call...),
	}
}

// before runs the tap interceptors for t.
func (d dispatch[F]) before(t TapInfo[F]) {
	for _, intercept := range d.tap {
		intercept(d.hookCtx, t)
	}
}

// loopInterceptors holds the per-iteration interceptors of loop hooks.
type loopInterceptors[L any] struct {
	mu   sync.RWMutex
	loop []L
}

// InterceptLoop adds an interceptor run at the start of every loop
// iteration with the call arguments.
func (l *loopInterceptors[L]) InterceptLoop(i L) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loop = append(l.loop, i)
}

func (l *loopInterceptors[L]) loops() []L {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]L(nil), l.loop...)
}
