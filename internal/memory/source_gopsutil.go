//go:build linux || windows || darwin || freebsd

package memory

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
)

// SystemSource reads virtual memory statistics through gopsutil.
type SystemSource struct{}

func newPlatformSource() Source {
	return &SystemSource{}
}

// Read returns the current total and available memory.
func (s *SystemSource) Read(ctx context.Context) (Snapshot, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return NewSnapshot(vm.Total, vm.Available)
}
