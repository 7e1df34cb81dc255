package notify

import (
	"context"

	"memwatch/internal/logging"
)

// Log is a Notifier that only writes to the application log.
type Log struct{}

// NewLog creates a logging notifier.
func NewLog() *Log {
	return &Log{}
}

// NotifyMemory logs a memory alert at Warn.
func (l *Log) NotifyMemory(_ context.Context, total, used uint64) error {
	logging.Warn("Memory alert: %s", MemoryText(total, used))
	return nil
}

// NotifySelfError logs a self error at Error.
func (l *Log) NotifySelfError(_ context.Context, message string) error {
	logging.Error("%s", SelfErrorText(message))
	return nil
}
