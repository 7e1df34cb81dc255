package memory

import (
	"context"
)

// Source reads total and available memory from the operating system.
// Read may block; Cache runs it on its own goroutine so a hung read can be
// abandoned when a deadline is configured.
type Source interface {
	Read(ctx context.Context) (Snapshot, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (Snapshot, error)

// Read calls f(ctx).
func (f SourceFunc) Read(ctx context.Context) (Snapshot, error) {
	return f(ctx)
}

// NewSystemSource returns the Source for the current platform.
func NewSystemSource() Source {
	return newPlatformSource()
}
