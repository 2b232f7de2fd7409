package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noop = func(*HookContext)

func names[F any](taps []TapInfo[F]) []string {
	var out []string
	for _, t := range taps {
		out = append(out, t.Name)
	}
	return out
}

func TestTap_OrderAndReplace(t *testing.T) {
	var h SyncHook[noop]

	h.Tap("a", "1", func(*HookContext) {})
	h.Tap("b", "2", func(*HookContext) {})
	h.Tap("c", "3", func(*HookContext) {})
	assert.Equal(t, []string{"a", "b", "c"}, names(h.Taps()))

	// Same id replaces in place
	h.Tap("b2", "2", func(*HookContext) {})
	assert.Equal(t, []string{"a", "b2", "c"}, names(h.Taps()))
}

func TestUntap(t *testing.T) {
	var h SyncHook[noop]
	h.Tap("a", "1", func(*HookContext) {})
	h.Tap("b", "2", func(*HookContext) {})

	assert.True(t, h.Untap("1"))
	assert.False(t, h.Untap("1"))
	assert.Equal(t, []string{"b"}, names(h.Taps()))
}

func TestTaps_ReturnsSnapshot(t *testing.T) {
	var h SyncHook[noop]
	h.Tap("a", "1", func(*HookContext) {})

	snapshot := h.Taps()
	snapshot[0].Name = "mutated"
	assert.Equal(t, "a", h.Taps()[0].Name)
}

func TestNextID(t *testing.T) {
	var h SyncHook[noop]
	h.SetIDGenerator(NewSequentialIDs("tap"))

	assert.Equal(t, "tap-1", h.NextID())
	assert.Equal(t, "tap-2", h.NextID())
}

func TestSetDefaultIDGenerator(t *testing.T) {
	restore := SetDefaultIDGenerator(IDGeneratorFunc(func() string { return "fixed" }))
	var h SyncHook[noop]
	assert.Equal(t, "fixed", h.NextID())

	restore()
	assert.NotEqual(t, "fixed", h.NextID())
}

func TestRandomIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := RandomIDs{}.NextID()
		require.NotEmpty(t, id)
		require.LessOrEqual(t, len(id), 22)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestInterceptRegister(t *testing.T) {
	var h SyncHook[noop]
	h.InterceptRegister(func(info TapInfo[noop]) *TapInfo[noop] {
		if info.Name == "blocked" {
			return nil
		}
		info.Name = "renamed-" + info.Name
		return &info
	})

	assert.Equal(t, "1", h.Tap("a", "1", func(*HookContext) {}))
	h.Tap("blocked", "2", func(*HookContext) {})

	assert.Equal(t, []string{"renamed-a"}, names(h.Taps()))
}

func TestInterceptTapAndCall(t *testing.T) {
	var h SyncHook[func(*HookContext, int)]
	var events []string

	h.InterceptCall(func(hc *HookContext, n int) {
		hc.Set("seen", n)
		events = append(events, "call")
	})
	h.InterceptTap(func(_ *HookContext, tap TapInfo[func(*HookContext, int)]) {
		events = append(events, "before "+tap.Name)
	})
	h.Tap("a", "1", func(hc *HookContext, n int) {
		v, ok := hc.Get("seen")
		require.True(t, ok)
		assert.Equal(t, n, v)
		events = append(events, "a")
	})

	h.Call(func(f func(*HookContext, int), hc *HookContext) { f(hc, 7) })
	assert.Equal(t, []string{"call", "before a", "a"}, events)
}

func TestHookContext(t *testing.T) {
	var hc HookContext
	_, ok := hc.Get("missing")
	assert.False(t, ok)

	hc.Set("k", 1)
	hc.Set("k", 2)
	v, ok := hc.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, hc.Len())
}

func TestLoopResultString(t *testing.T) {
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "restart", Restart.String())
	assert.Equal(t, "unknown", LoopResult(9).String())
}
