package memory

import "context"

// Notifier delivers alerts raised by the Watch. Implementations live outside
// this package (telegram bot, webhook, log).
type Notifier interface {
	// NotifyMemory reports memory usage above the configured ratio.
	NotifyMemory(ctx context.Context, total, used uint64) error

	// NotifySelfError reports a failure of the monitor itself.
	NotifySelfError(ctx context.Context, message string) error
}
