package memory

import (
	"fmt"
	"time"
)

const (
	// DefaultCheckInterval is how often the watch samples memory
	DefaultCheckInterval = 3 * time.Second

	// DefaultMaxUsedRatio is the used/total ratio above which an alert is raised
	DefaultMaxUsedRatio = 0.7
)

// Config holds memory watch configuration. It is fixed for the lifetime of a Watch.
type Config struct {
	// CheckInterval is how often to sample memory usage
	CheckInterval time.Duration

	// MaxUsedRatio is the alert threshold, in (0.0-1.0]
	MaxUsedRatio float64

	// ReadTimeout bounds one memory read (0 = wait indefinitely)
	ReadTimeout time.Duration

	// NotifyTimeout bounds one notifier call (0 = wait indefinitely)
	NotifyTimeout time.Duration
}

// DefaultConfig returns the default watch configuration
func DefaultConfig() Config {
	return Config{
		CheckInterval: DefaultCheckInterval,
		MaxUsedRatio:  DefaultMaxUsedRatio,
	}
}

// Validate checks the interval and ratio bounds.
func (c Config) Validate() error {
	if c.CheckInterval <= 0 {
		return fmt.Errorf("%w: check interval must be positive, got %s", ErrInvalidConfig, c.CheckInterval)
	}
	if !(c.MaxUsedRatio > 0 && c.MaxUsedRatio <= 1) {
		return fmt.Errorf("%w: max used ratio must be in (0, 1], got %v", ErrInvalidConfig, c.MaxUsedRatio)
	}
	if c.ReadTimeout < 0 || c.NotifyTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidConfig)
	}
	return nil
}

// FormatBytes formats bytes with binary units and two decimals, e.g. "7.66 GiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
