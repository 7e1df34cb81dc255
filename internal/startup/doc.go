// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - MEM_WATCH_INTERVAL: Memory sampling interval as Go duration (default: 3s)
//   - MEM_MAX_USAGE_RATIO: Used/total ratio above which alerts fire (default: 0.7)
//   - MEM_READ_TIMEOUT: Bound on one memory read, 0 disables (default: 0s)
//   - NOTIFY_TIMEOUT: Bound on one notifier call, 0 disables (default: 0s)
//   - BOT_TOKEN: Telegram bot token; the bot is disabled when empty
//   - GROUP_CHAT_ID: Telegram chat served by the bot (required with BOT_TOKEN)
//   - WEBHOOK_URL: Optional JSON webhook for alerts
//   - DATABASE_DIR: Directory for the settings database (default: /database)
//   - PORT: HTTP API port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable the metrics server (default: true)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - API_TOKEN_HASH: bcrypt hash of the bearer token guarding /api
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//
// Invalid durations fall back to their defaults with a warning. An
// out-of-range ratio or a missing GROUP_CHAT_ID is a startup error.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//   - [LogDatabaseInit]: Database initialization timing
//   - [LogWatchInit]: Watch interval, threshold and alert state
//   - [LogNotifierInit]: Active notification sinks
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated], [LogShutdownComplete]: Graceful shutdown
package startup
