package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memwatch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memwatch_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Memory metrics
var (
	MemoryTotalBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_memory_total_bytes",
			Help: "Total system memory from the last snapshot",
		},
	)

	MemoryAvailableBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_memory_available_bytes",
			Help: "Available system memory from the last snapshot",
		},
	)

	MemoryUsedBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_memory_used_bytes",
			Help: "Used system memory (total - available) from the last snapshot",
		},
	)

	MemoryUsedRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_memory_used_ratio",
			Help: "Used/total memory ratio from the last snapshot (0.0-1.0)",
		},
	)

	MemoryReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memwatch_memory_reads_total",
			Help: "Total number of underlying memory reads",
		},
		[]string{"kind", "status"}, // kind: "fill" or "refresh"
	)

	MemoryReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memwatch_memory_read_duration_seconds",
			Help:    "Duration of underlying memory reads in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"kind"},
	)
)

// Watch metrics
var (
	WatchTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memwatch_watch_ticks_total",
			Help: "Total number of completed watch ticks",
		},
	)

	WatchLastTickTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_watch_last_tick_timestamp",
			Help: "Unix timestamp of the last completed watch tick",
		},
	)

	WatchRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_watch_running",
			Help: "Whether the watch loop is running (1 = running, 0 = not running)",
		},
	)

	WatchMaxUsedRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_watch_max_used_ratio",
			Help: "Configured alert threshold for the used/total ratio",
		},
	)
)

// Alert metrics
var (
	AlertsEnabled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memwatch_alerts_enabled",
			Help: "Whether memory alerts are enabled (1 = enabled, 0 = disabled)",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memwatch_notifications_total",
			Help: "Total number of notifier calls",
		},
		[]string{"kind", "status"}, // kind: "memory" or "self_error"
	)
)

// Settings store metrics
var (
	SettingsQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memwatch_settings_queries_total",
			Help: "Total number of settings database queries",
		},
		[]string{"operation", "status"},
	)

	SettingsQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memwatch_settings_query_duration_seconds",
			Help:    "Settings database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)
)

// Telegram bot metrics
var (
	TelegramUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memwatch_telegram_updates_total",
			Help: "Total number of Telegram updates received",
		},
		[]string{"type"}, // "command", "callback", "ignored"
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "memwatch_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
