package metrics

import (
	"time"

	"memwatch/internal/logging"
	"memwatch/internal/memory"
)

// StatusProvider reports the watch status.
type StatusProvider interface {
	Status() memory.Status
}

// Collector periodically publishes watch status gauges that are not driven
// by observer events.
type Collector struct {
	provider StatusProvider
	interval time.Duration
	stopChan chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatusProvider, interval time.Duration) *Collector {
	return &Collector{
		provider: provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.provider == nil {
		return
	}

	status := c.provider.Status()
	WatchRunning.Set(boolGauge(status.State == memory.StateRunning))

	logging.Debug("Metrics collected: state=%s, ticks=%d", status.State, status.Ticks)
}
