package startup

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"memwatch/internal/memory"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

// setConfigEnv points DATABASE_DIR at a temp dir and clears the rest
func setConfigEnv(t *testing.T, env map[string]string) {
	t.Helper()

	for _, key := range []string{
		"MEM_WATCH_INTERVAL", "MEM_MAX_USAGE_RATIO", "MEM_READ_TIMEOUT", "NOTIFY_TIMEOUT",
		"BOT_TOKEN", "GROUP_CHAT_ID", "WEBHOOK_URL", "PORT", "METRICS_PORT",
		"METRICS_ENABLED", "LOG_HEALTH_CHECKS", "API_TOKEN_HASH",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("DATABASE_DIR", filepath.Join(t.TempDir(), "db"))

	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setConfigEnv(t, nil)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Watch != memory.DefaultConfig() {
		t.Errorf("Expected default watch config, got %+v", config.Watch)
	}
	if config.Port != "8080" || config.MetricsPort != "9090" {
		t.Errorf("Unexpected ports %s/%s", config.Port, config.MetricsPort)
	}
	if !config.MetricsEnabled || !config.LogHealthChecks {
		t.Error("Expected metrics and health check logging to default on")
	}
	if config.BotEnabled() {
		t.Error("Expected bot to be disabled without BOT_TOKEN")
	}
	if filepath.Base(config.DatabasePath) != "memwatch.db" {
		t.Errorf("Unexpected database path %s", config.DatabasePath)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setConfigEnv(t, map[string]string{
		"MEM_WATCH_INTERVAL":  "10s",
		"MEM_MAX_USAGE_RATIO": "0.9",
		"MEM_READ_TIMEOUT":    "2s",
		"NOTIFY_TIMEOUT":      "5s",
		"BOT_TOKEN":           "123456:abcdef",
		"GROUP_CHAT_ID":       "-100987",
		"METRICS_ENABLED":     "false",
	})

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := memory.Config{
		CheckInterval: 10 * time.Second,
		MaxUsedRatio:  0.9,
		ReadTimeout:   2 * time.Second,
		NotifyTimeout: 5 * time.Second,
	}
	if config.Watch != want {
		t.Errorf("Expected %+v, got %+v", want, config.Watch)
	}
	if !config.BotEnabled() || config.GroupChatID != -100987 {
		t.Errorf("Unexpected bot config: enabled=%v chat=%d", config.BotEnabled(), config.GroupChatID)
	}
	if config.MetricsEnabled {
		t.Error("Expected metrics to be disabled")
	}
}

func TestLoadConfigInvalidDurationFallsBack(t *testing.T) {
	setConfigEnv(t, map[string]string{"MEM_WATCH_INTERVAL": "soon"})

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Watch.CheckInterval != memory.DefaultCheckInterval {
		t.Errorf("Expected default interval, got %v", config.Watch.CheckInterval)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Ratio above one", map[string]string{"MEM_MAX_USAGE_RATIO": "1.5"}},
		{"Negative ratio", map[string]string{"MEM_MAX_USAGE_RATIO": "-0.1"}},
		{"Negative interval", map[string]string{"MEM_WATCH_INTERVAL": "-3s"}},
		{"Bot without chat", map[string]string{"BOT_TOKEN": "123:abc"}},
		{"Bad chat id", map[string]string{"BOT_TOKEN": "123:abc", "GROUP_CHAT_ID": "group"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setConfigEnv(t, tt.env)

			if _, err := LoadConfig(); err == nil {
				t.Error("Expected LoadConfig to fail")
			}
		})
	}
}

func TestLoadConfigInvalidRatioIsConfigError(t *testing.T) {
	setConfigEnv(t, map[string]string{"MEM_MAX_USAGE_RATIO": "2"})

	_, err := LoadConfig()
	if !errors.Is(err, memory.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_SET_VAR", "custom")
	t.Setenv("TEST_EMPTY_VAR", "")

	tests := []struct {
		key  string
		want string
	}{
		{"TEST_SET_VAR", "custom"},
		{"TEST_EMPTY_VAR", "default"},
		{"TEST_NEVER_SET_VAR", "default"},
	}

	for _, tt := range tests {
		if got := getEnv(tt.key, "default"); got != tt.want {
			t.Errorf("getEnv(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"Unset uses default true", "", true, true},
		{"Unset uses default false", "", false, false},
		{"true", "true", false, true},
		{"false", "false", true, false},
		{"1", "1", false, true},
		{"0", "0", true, false},
		{"Invalid uses default", "yes-please", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL_VAR", tt.envValue)
			if got := getEnvBool("TEST_BOOL_VAR", tt.defaultValue); got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "(not set)"},
		{"short", "****"},
		{"123456:ABCDEFGH", "1234****"},
	}

	for _, tt := range tests {
		if got := maskSecret(tt.in); got != tt.want {
			t.Errorf("maskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/memory", "api/memory"},
		{"/api/alerts", "api/alerts"},
		{"/health", "health"},
		{"/", ""},
	}

	for _, tt := range tests {
		if got := getRouteGroup(tt.path); got != tt.want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGetRoutes(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/memory", nil).Methods("GET").Name("memory")
	r.HandleFunc("/api/alerts", nil).Methods("GET", "PUT")

	routes, err := GetRoutes(r)
	if err != nil {
		t.Fatalf("GetRoutes failed: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("Expected 3 routes, got %d: %+v", len(routes), routes)
	}
	if routes[0].Name != "memory" || routes[0].Method != "GET" {
		t.Errorf("Unexpected first route %+v", routes[0])
	}
}
