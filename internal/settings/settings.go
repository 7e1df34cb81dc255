// Package settings ties the in-memory alert gate to its persisted value.
package settings

import (
	"context"
	"fmt"

	"memwatch/internal/logging"
	"memwatch/internal/memory"
)

// Store persists the alert gate state.
type Store interface {
	AlertsEnabled(ctx context.Context) (enabled, found bool, err error)
	SetAlertsEnabled(ctx context.Context, enabled bool) error
}

// Toggle switches alerts on and off for every front end (bot command,
// HTTP API) and keeps the store in step.
type Toggle struct {
	gate  *memory.Gate
	store Store
}

// NewToggle creates a toggle. store may be nil, in which case changes are
// kept in memory only.
func NewToggle(gate *memory.Gate, store Store) *Toggle {
	return &Toggle{gate: gate, store: store}
}

// Load seeds the gate from the store. A missing value leaves the gate as is.
func (t *Toggle) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}

	enabled, found, err := t.store.AlertsEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to load alert setting: %w", err)
	}
	if !found {
		logging.Debug("No persisted alert setting, keeping alerts enabled=%v", t.gate.Enabled())
		return nil
	}

	t.gate.SetEnabled(enabled)
	logging.Info("Restored alert setting: enabled=%v", enabled)
	return nil
}

// Enabled reports the current gate state.
func (t *Toggle) Enabled() bool {
	return t.gate.Enabled()
}

// Set changes the gate immediately, then persists the new value. If
// persisting fails the gate keeps the new value and the error is returned.
func (t *Toggle) Set(ctx context.Context, enabled bool) error {
	prev := t.gate.SetEnabled(enabled)
	if prev != enabled {
		logging.Info("Memory alerts %s", onOff(enabled))
	}

	if t.store == nil {
		return nil
	}
	if err := t.store.SetAlertsEnabled(ctx, enabled); err != nil {
		logging.Error("Failed to persist alert setting: %v", err)
		return fmt.Errorf("failed to persist alert setting: %w", err)
	}
	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
