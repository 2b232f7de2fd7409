package hooks

import "sync"

// HookContext is per-call scratch space shared by the interceptors and taps
// of a single Call. Safe for concurrent use; parallel taps share it.
type HookContext struct {
	mu     sync.Mutex
	values map[string]any
}

// NewHookContext returns an empty context.
func NewHookContext() *HookContext {
	return &HookContext{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (c *HookContext) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (c *HookContext) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
}

// Len returns the number of stored values.
func (c *HookContext) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
