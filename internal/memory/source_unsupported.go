//go:build !linux && !windows && !darwin && !freebsd

package memory

import (
	"context"
	"fmt"
	"runtime"
)

// UnsupportedSource is the fallback for platforms gopsutil cannot read.
type UnsupportedSource struct{}

func newPlatformSource() Source {
	return &UnsupportedSource{}
}

// Read always fails with ErrSourceUnavailable.
func (s *UnsupportedSource) Read(_ context.Context) (Snapshot, error) {
	return Snapshot{}, fmt.Errorf("%w: memory monitoring not supported on %s", ErrSourceUnavailable, runtime.GOOS)
}
