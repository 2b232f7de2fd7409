package hooks

// LoopResult is returned by loop hook taps.
type LoopResult int

const (
	// Continue moves on to the next tap.
	Continue LoopResult = iota
	// Restart starts the loop over from the first tap.
	Restart
)

func (r LoopResult) String() string {
	switch r {
	case Continue:
		return "continue"
	case Restart:
		return "restart"
	default:
		return "unknown"
	}
}
