package hooks

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// IDGenerator produces tap ids for taps registered without one. The only
// contract is "sufficiently unique"; collisions are not detected.
type IDGenerator interface {
	NextID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NextID calls f.
func (f IDGeneratorFunc) NextID() string { return f() }

// RandomIDs encodes a random UUID in base58 (22 characters or fewer).
type RandomIDs struct{}

// NextID returns a fresh random id.
func (RandomIDs) NextID() string {
	id := uuid.New()
	return base58.Encode(id[:])
}

// SequentialIDs yields prefix-1, prefix-2, ... Deterministic; intended for
// tests.
type SequentialIDs struct {
	prefix string
	n      atomic.Uint64
}

// NewSequentialIDs returns a generator starting at prefix-1.
func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

// NextID returns the next id in sequence.
func (s *SequentialIDs) NextID() string {
	return s.prefix + "-" + strconv.FormatUint(s.n.Add(1), 10)
}

var (
	defaultIDsMu sync.RWMutex
	defaultIDs   IDGenerator = RandomIDs{}
)

// SetDefaultIDGenerator replaces the process-wide generator used by hooks
// without their own (see SetIDGenerator) and returns a func restoring the
// previous one.
func SetDefaultIDGenerator(g IDGenerator) (restore func()) {
	defaultIDsMu.Lock()
	prev := defaultIDs
	defaultIDs = g
	defaultIDsMu.Unlock()

	return func() {
		defaultIDsMu.Lock()
		defaultIDs = prev
		defaultIDsMu.Unlock()
	}
}

func defaultIDGenerator() IDGenerator {
	defaultIDsMu.RLock()
	defer defaultIDsMu.RUnlock()
	return defaultIDs
}
