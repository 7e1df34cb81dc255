package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"memwatch/internal/logging"
	"memwatch/internal/memory"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	Watch memory.Config

	// Telegram front end; disabled when BotToken is empty
	BotToken    string
	GroupChatID int64

	// Optional webhook sink for alerts
	WebhookURL string

	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	LogHealthChecks bool

	// APITokenHash is a bcrypt hash guarding /api; empty leaves /api open
	APITokenHash string

	DatabaseDir  string
	DatabasePath string
}

// BotEnabled reports whether the Telegram front end is configured.
func (c *Config) BotEnabled() bool {
	return c.BotToken != ""
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	defaults := memory.DefaultConfig()

	intervalStr := getEnv("MEM_WATCH_INTERVAL", defaults.CheckInterval.String())
	ratioStr := getEnv("MEM_MAX_USAGE_RATIO", strconv.FormatFloat(defaults.MaxUsedRatio, 'f', -1, 64))
	readTimeoutStr := getEnv("MEM_READ_TIMEOUT", "0s")
	notifyTimeoutStr := getEnv("NOTIFY_TIMEOUT", "0s")
	botToken := getEnv("BOT_TOKEN", "")
	groupChatIDStr := getEnv("GROUP_CHAT_ID", "")
	webhookURL := getEnv("WEBHOOK_URL", "")
	databaseDir := getEnv("DATABASE_DIR", "/database")
	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9090")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)
	apiTokenHash := getEnv("API_TOKEN_HASH", "")

	logging.Info("  MEM_WATCH_INTERVAL:  %s", intervalStr)
	logging.Info("  MEM_MAX_USAGE_RATIO: %s", ratioStr)
	logging.Info("  MEM_READ_TIMEOUT:    %s", readTimeoutStr)
	logging.Info("  NOTIFY_TIMEOUT:      %s", notifyTimeoutStr)
	logging.Info("  BOT_TOKEN:           %s", maskSecret(botToken))
	logging.Info("  GROUP_CHAT_ID:       %s", groupChatIDStr)
	logging.Info("  WEBHOOK_URL:         %s", maskSecret(webhookURL))
	logging.Info("  DATABASE_DIR:        %s", databaseDir)
	logging.Info("  PORT:                %s", port)
	logging.Info("  METRICS_PORT:        %s", metricsPort)
	logging.Info("  METRICS_ENABLED:     %v", metricsEnabled)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", logHealthChecks)
	logging.Info("  API_TOKEN_HASH:      %s", maskSecret(apiTokenHash))
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	watch := memory.Config{
		CheckInterval: parseDuration("MEM_WATCH_INTERVAL", intervalStr, defaults.CheckInterval),
		ReadTimeout:   parseDuration("MEM_READ_TIMEOUT", readTimeoutStr, 0),
		NotifyTimeout: parseDuration("NOTIFY_TIMEOUT", notifyTimeoutStr, 0),
	}

	ratio, err := strconv.ParseFloat(ratioStr, 64)
	if err != nil {
		logging.Warn("  Invalid MEM_MAX_USAGE_RATIO, using default: %v", defaults.MaxUsedRatio)
		ratio = defaults.MaxUsedRatio
	}
	watch.MaxUsedRatio = ratio

	if err := watch.Validate(); err != nil {
		return nil, err
	}

	var groupChatID int64
	if botToken != "" {
		if groupChatIDStr == "" {
			return nil, fmt.Errorf("GROUP_CHAT_ID is required when BOT_TOKEN is set")
		}
		groupChatID, err = strconv.ParseInt(groupChatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid GROUP_CHAT_ID %q: %w", groupChatIDStr, err)
		}
	}

	// Resolve paths
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	databaseDir, err = filepath.Abs(databaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}
	logging.Info("  Database directory (absolute): %s", databaseDir)

	if err := ensureDirectory(databaseDir, "database"); err != nil {
		return nil, fmt.Errorf("database directory error: %w", err)
	}

	logging.Debug("  Testing database directory write access...")
	if err := testWriteAccess(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory is not writable (required for database): %w", err)
	}
	logging.Info("  [OK] Database directory is writable")

	config := &Config{
		Watch:           watch,
		BotToken:        botToken,
		GroupChatID:     groupChatID,
		WebhookURL:      webhookURL,
		Port:            port,
		MetricsPort:     metricsPort,
		MetricsEnabled:  metricsEnabled,
		LogHealthChecks: logHealthChecks,
		APITokenHash:    apiTokenHash,
		DatabaseDir:     databaseDir,
		DatabasePath:    filepath.Join(databaseDir, "memwatch.db"),
	}

	// Summary
	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Telegram bot: %s", enabledString(config.BotEnabled()))
	logging.Info("    Webhook:      %s", enabledString(config.WebhookURL != ""))
	logging.Info("    API auth:     %s", enabledString(config.APITokenHash != ""))
	logging.Info("    Metrics:      %s", enabledString(config.MetricsEnabled))

	return config, nil
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogDatabaseInit logs database initialization
func LogDatabaseInit(duration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DATABASE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] Database initialized in %v", duration)
}

// LogWatchInit logs memory watch configuration
func LogWatchInit(config memory.Config, alertsEnabled bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("MEMORY WATCH INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Check interval:  %v", config.CheckInterval)
	logging.Info("  Max used ratio:  %.2f", config.MaxUsedRatio)
	logging.Info("  Alerts:          %s", enabledString(alertsEnabled))
	if config.ReadTimeout > 0 {
		logging.Info("  Read timeout:    %v", config.ReadTimeout)
	}
	if config.NotifyTimeout > 0 {
		logging.Info("  Notify timeout:  %v", config.NotifyTimeout)
	}
}

// LogNotifierInit logs which notification sinks are active
func LogNotifierInit(sinks []string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("NOTIFIER INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Sinks: %s", strings.Join(sinks, ", "))
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
			logging.Debug("")
		}
	}

	logging.Info("  HTTP logging enabled")
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	BotEnabled      bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    API:           http://0.0.0.0:%s/api/memory", config.Port)
	logging.Info("    Health:        http://0.0.0.0:%s/health", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("    Telegram bot:  %s", enabledString(config.BotEnabled))
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(reason string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (%s)", reason)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
   __  __                __        __    _       _
  |  \/  | ___ _ __ ___  \ \      / /_ _| |_ ___| |__
  | |\/| |/ _ \ '_ ' _ \  \ \ /\ / / _' | __/ __| '_ \
  | |  | |  __/ | | | | |  \ V  V / (_| | || (__| | | |
  |_|  |_|\___|_| |_| |_|   \_/\_/ \__,_|\__\___|_| |_|

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

func parseDuration(key, value string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		logging.Warn("  Invalid %s, using default: %v", key, defaultValue)
		return defaultValue
	}
	return d
}

// maskSecret hides all but the first four characters of a secret.
func maskSecret(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 8:
		return "****"
	default:
		return s[:4] + "****"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
