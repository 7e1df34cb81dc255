package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is returned when system memory could not be read or
	// the reading made no sense (zero total, available above total).
	ErrSourceUnavailable = errors.New("memory source unavailable")

	// ErrNotifyFailed wraps any error returned by a Notifier.
	ErrNotifyFailed = errors.New("notify failed")

	// ErrInvalidConfig is returned by NewWatch for a Config that fails Validate.
	ErrInvalidConfig = errors.New("invalid memory watch config")
)

// Snapshot is a single point-in-time reading of system memory in bytes.
// Available is memory that is unused or reclaimable, not merely free.
type Snapshot struct {
	Total     uint64 `json:"total"`
	Available uint64 `json:"available"`
}

// NewSnapshot validates a raw reading. Readings with a zero total or with
// more available than total are rejected with ErrSourceUnavailable.
func NewSnapshot(total, available uint64) (Snapshot, error) {
	if total == 0 {
		return Snapshot{}, fmt.Errorf("%w: total memory reported as 0", ErrSourceUnavailable)
	}
	if available > total {
		return Snapshot{}, fmt.Errorf("%w: available %d exceeds total %d", ErrSourceUnavailable, available, total)
	}
	return Snapshot{Total: total, Available: available}, nil
}

// Used returns Total - Available.
func (s Snapshot) Used() uint64 {
	if s.Available > s.Total {
		return 0
	}
	return s.Total - s.Available
}

// UsedRatio returns Used / Total, or 0 for an empty snapshot.
func (s Snapshot) UsedRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Used()) / float64(s.Total)
}
