package handlers

import (
	"context"
	"time"

	"memwatch/internal/memory"
)

// SnapshotReader reads memory through the shared cache.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (memory.Snapshot, error)
	Cached() (memory.Snapshot, bool)
}

// AlertToggle switches alerts on and off.
type AlertToggle interface {
	Enabled() bool
	Set(ctx context.Context, enabled bool) error
}

// StatusProvider reports the watch status and configuration.
type StatusProvider interface {
	Status() memory.Status
	Config() memory.Config
}

// Handlers serves the query/control API and health endpoints.
type Handlers struct {
	memory    SnapshotReader
	alerts    AlertToggle
	watch     StatusProvider
	startTime time.Time
}

// New creates the HTTP handlers.
func New(reader SnapshotReader, alerts AlertToggle, watch StatusProvider) *Handlers {
	return &Handlers{
		memory:    reader,
		alerts:    alerts,
		watch:     watch,
		startTime: time.Now(),
	}
}
