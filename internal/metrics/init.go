package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics(maxUsedRatio float64) {
	WatchMaxUsedRatio.Set(maxUsedRatio)

	for _, kind := range []string{"fill", "refresh"} {
		MemoryReadDuration.WithLabelValues(kind)
		for _, status := range []string{"success", "error"} {
			MemoryReadsTotal.WithLabelValues(kind, status)
		}
	}

	for _, kind := range []string{"memory", "self_error"} {
		for _, status := range []string{"success", "error"} {
			NotificationsTotal.WithLabelValues(kind, status)
		}
	}

	for _, op := range []string{"initialize_schema", "get_setting", "set_setting"} {
		SettingsQueryTotal.WithLabelValues(op, "success")
		SettingsQueryTotal.WithLabelValues(op, "error")
		SettingsQueryDuration.WithLabelValues(op)
	}

	for _, t := range []string{"command", "callback", "ignored"} {
		TelegramUpdatesTotal.WithLabelValues(t)
	}
}
