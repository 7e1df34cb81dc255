package notify

import (
	"context"
	"errors"

	"memwatch/internal/memory"
)

// Multi delivers every call to all of its sinks in order. A failing sink
// does not prevent delivery to the rest.
type Multi []memory.Notifier

// NotifyMemory calls NotifyMemory on every sink and joins the failures.
func (m Multi) NotifyMemory(ctx context.Context, total, used uint64) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyMemory(ctx, total, used); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifySelfError calls NotifySelfError on every sink and joins the failures.
func (m Multi) NotifySelfError(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifySelfError(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
