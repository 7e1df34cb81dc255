package metrics

import (
	"time"

	"memwatch/internal/memory"
)

// memoryObserver implements memory.Observer using the Prometheus metrics
// declared in this package.
type memoryObserver struct{}

// NewMemoryObserver creates an observer that records cache and watch activity
// into the gauges and counters declared in metrics.go.
func NewMemoryObserver() memory.Observer {
	return &memoryObserver{}
}

func (o *memoryObserver) ObserveRead(kind string, durationSeconds float64, err error) {
	MemoryReadDuration.WithLabelValues(kind).Observe(durationSeconds)
	MemoryReadsTotal.WithLabelValues(kind, statusLabel(err)).Inc()
}

func (o *memoryObserver) ObserveSnapshot(s memory.Snapshot) {
	MemoryTotalBytes.Set(float64(s.Total))
	MemoryAvailableBytes.Set(float64(s.Available))
	MemoryUsedBytes.Set(float64(s.Used()))
	MemoryUsedRatio.Set(s.UsedRatio())
}

func (o *memoryObserver) ObserveTick() {
	WatchTicksTotal.Inc()
	WatchLastTickTimestamp.Set(float64(time.Now().Unix()))
}

func (o *memoryObserver) ObserveNotify(kind string, err error) {
	NotificationsTotal.WithLabelValues(kind, statusLabel(err)).Inc()
}

func (o *memoryObserver) ObserveGate(enabled bool) {
	AlertsEnabled.Set(boolGauge(enabled))
}
