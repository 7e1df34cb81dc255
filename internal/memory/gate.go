package memory

import "sync/atomic"

// Gate is the on/off switch for memory alerts. It is safe for concurrent
// use; a change may take effect on the tick in progress or on the next one.
type Gate struct {
	enabled  atomic.Bool
	observer Observer
}

// NewGate creates a gate in the given state.
func NewGate(enabled bool, obs Observer) *Gate {
	g := &Gate{observer: obs}
	g.enabled.Store(enabled)
	if obs != nil {
		obs.ObserveGate(enabled)
	}
	return g
}

// Enabled reports whether alerts are currently enabled.
func (g *Gate) Enabled() bool {
	return g.enabled.Load()
}

// SetEnabled switches alerts on or off and returns the previous state.
func (g *Gate) SetEnabled(enabled bool) bool {
	prev := g.enabled.Swap(enabled)
	if g.observer != nil {
		g.observer.ObserveGate(enabled)
	}
	return prev
}
