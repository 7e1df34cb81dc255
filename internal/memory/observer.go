package memory

// Observer records watch and cache activity. The metrics package provides
// the Prometheus implementation; a nil Observer records nothing.
type Observer interface {
	// ObserveRead records one underlying memory read. kind is "fill" for a
	// read-through population or "refresh" for a forced refresh.
	ObserveRead(kind string, durationSeconds float64, err error)

	// ObserveSnapshot records a snapshot that was stored in the cache.
	ObserveSnapshot(s Snapshot)

	// ObserveTick records one completed scheduler tick.
	ObserveTick()

	// ObserveNotify records a Notifier call. kind is "memory" or "self_error".
	ObserveNotify(kind string, err error)

	// ObserveGate records the alert gate state.
	ObserveGate(enabled bool)
}
