// Package metrics provides Prometheus instrumentation for the memory watch service.
//
// All metrics are prefixed with "memwatch_" and registered on the default
// registry through promauto.
//
// # Metric Categories
//
// ## Memory Metrics
//
// Fed by [NewMemoryObserver], which implements memory.Observer:
//   - MemoryTotalBytes, MemoryAvailableBytes, MemoryUsedBytes: last snapshot
//   - MemoryUsedRatio: used/total from the last snapshot
//   - MemoryReadsTotal: underlying reads by kind (fill/refresh) and status
//   - MemoryReadDuration: histogram of underlying read time by kind
//
// ## Watch Metrics
//
//   - WatchTicksTotal: completed ticks
//   - WatchLastTickTimestamp: unix time of the last tick
//   - WatchRunning: 1 while the loop runs, published by [Collector]
//   - WatchMaxUsedRatio: configured alert threshold
//
// ## Alert Metrics
//
//   - AlertsEnabled: alert gate state
//   - NotificationsTotal: notifier calls by kind (memory/self_error) and status
//
// ## Other
//
//   - HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight: query API
//   - SettingsQueryTotal, SettingsQueryDuration: sqlite settings store
//   - TelegramUpdatesTotal: bot updates by type
//   - AppInfo: version, commit and Go version labels
//
// Call [InitializeMetrics] once at startup so labelled series exist before
// the first event.
package metrics
