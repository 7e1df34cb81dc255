package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"memwatch/internal/memory"
	"memwatch/internal/startup"
)

// =============================================================================
// Mocks
// =============================================================================

type mockReader struct {
	snap   memory.Snapshot
	cached bool
	err    error
}

func (m *mockReader) Snapshot(context.Context) (memory.Snapshot, error) {
	return m.snap, m.err
}

func (m *mockReader) Cached() (memory.Snapshot, bool) {
	return m.snap, m.cached
}

type mockToggle struct {
	enabled bool
	err     error
	sets    []bool
}

func (m *mockToggle) Enabled() bool { return m.enabled }

func (m *mockToggle) Set(_ context.Context, enabled bool) error {
	m.enabled = enabled
	m.sets = append(m.sets, enabled)
	return m.err
}

type mockStatus struct {
	status memory.Status
	config memory.Config
}

func (m *mockStatus) Status() memory.Status { return m.status }

func (m *mockStatus) Config() memory.Config { return m.config }

func newTestHandlers() (*Handlers, *mockReader, *mockToggle, *mockStatus) {
	reader := &mockReader{snap: memory.Snapshot{Total: 8226545664, Available: 4113272832}, cached: true}
	toggle := &mockToggle{enabled: true}
	status := &mockStatus{
		status: memory.Status{State: memory.StateRunning, Ticks: 3, LastTick: time.Now()},
		config: memory.DefaultConfig(),
	}
	return New(reader, toggle, status), reader, toggle, status
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}

// =============================================================================
// Memory
// =============================================================================

func TestGetMemory(t *testing.T) {
	h, _, _, _ := newTestHandlers()
	rec := httptest.NewRecorder()

	h.GetMemory(rec, httptest.NewRequest(http.MethodGet, "/api/memory", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	resp := decode[MemoryResponse](t, rec)
	if resp.Total != 8226545664 || resp.Used != 4113272832 {
		t.Errorf("Unexpected totals %+v", resp)
	}
	if resp.UsedRatio != 0.5 {
		t.Errorf("Expected ratio 0.5, got %f", resp.UsedRatio)
	}
	if resp.TotalHuman != "7.66 GiB" || resp.UsedHuman != "3.83 GiB" {
		t.Errorf("Unexpected human sizes %q / %q", resp.TotalHuman, resp.UsedHuman)
	}
}

func TestGetMemoryErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Source unavailable", fmt.Errorf("%w: no meminfo", memory.ErrSourceUnavailable), http.StatusServiceUnavailable},
		{"Request cancelled", context.Canceled, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, reader, _, _ := newTestHandlers()
			reader.err = tt.err
			rec := httptest.NewRecorder()

			h.GetMemory(rec, httptest.NewRequest(http.MethodGet, "/api/memory", http.NoBody))

			if rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
			body := decode[map[string]string](t, rec)
			if body["error"] == "" {
				t.Error("Expected error message in body")
			}
		})
	}
}

// =============================================================================
// Alerts
// =============================================================================

func TestGetAlerts(t *testing.T) {
	h, _, toggle, _ := newTestHandlers()
	toggle.enabled = false
	rec := httptest.NewRecorder()

	h.GetAlerts(rec, httptest.NewRequest(http.MethodGet, "/api/alerts", http.NoBody))

	if resp := decode[AlertsResponse](t, rec); resp.Enabled {
		t.Error("Expected alerts to be reported disabled")
	}
}

func TestSetAlerts(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setErr      error
		wantStatus  int
		wantSets    int
		wantWarning bool
	}{
		{"Disable", `{"enabled": false}`, nil, http.StatusOK, 1, false},
		{"Enable", `{"enabled": true}`, nil, http.StatusOK, 1, false},
		{"Persist failure", `{"enabled": false}`, errors.New("db locked"), http.StatusOK, 1, true},
		{"Malformed body", `{"enabled":`, nil, http.StatusBadRequest, 0, false},
		{"Missing field", `{}`, nil, http.StatusBadRequest, 0, false},
		{"Wrong type", `{"enabled": "yes"}`, nil, http.StatusBadRequest, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, toggle, _ := newTestHandlers()
			toggle.err = tt.setErr
			rec := httptest.NewRecorder()

			h.SetAlerts(rec, httptest.NewRequest(http.MethodPut, "/api/alerts", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if len(toggle.sets) != tt.wantSets {
				t.Errorf("Expected %d toggle calls, got %d", tt.wantSets, len(toggle.sets))
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decode[AlertsResponse](t, rec)
			if resp.Enabled != toggle.enabled {
				t.Errorf("Expected response enabled=%v, got %v", toggle.enabled, resp.Enabled)
			}
			if (resp.Warning != "") != tt.wantWarning {
				t.Errorf("Unexpected warning %q", resp.Warning)
			}
		})
	}
}

// =============================================================================
// Health
// =============================================================================

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		cached     bool
		status     memory.Status
		wantCode   int
		wantStatus string
	}{
		{"Healthy", true, memory.Status{State: memory.StateRunning, Ticks: 1}, http.StatusOK, statusHealthy},
		{"Starting", false, memory.Status{State: memory.StateRunning}, http.StatusServiceUnavailable, statusStarting},
		{"Last tick failed", true, memory.Status{State: memory.StateRunning, LastError: "boom"}, http.StatusOK, statusDegraded},
		{"Watch stopped", true, memory.Status{State: memory.StateStopped}, http.StatusOK, statusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, reader, _, status := newTestHandlers()
			reader.cached = tt.cached
			status.status = tt.status
			rec := httptest.NewRecorder()

			h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			if rec.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d", tt.wantCode, rec.Code)
			}
			resp := decode[HealthResponse](t, rec)
			if resp.Status != tt.wantStatus {
				t.Errorf("Expected status %q, got %q", tt.wantStatus, resp.Status)
			}
			if resp.WatchState != tt.status.State.String() {
				t.Errorf("Expected watch state %q, got %q", tt.status.State, resp.WatchState)
			}
			if resp.Version != startup.Version {
				t.Errorf("Expected version %q, got %q", startup.Version, resp.Version)
			}
		})
	}
}

func TestLivenessCheck(t *testing.T) {
	h, _, _, _ := newTestHandlers()

	rec := httptest.NewRecorder()
	h.LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/livez", http.NoBody))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "alive") {
		t.Errorf("Unexpected GET response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.LivenessCheck(rec, httptest.NewRequest(http.MethodHead, "/livez", http.NoBody))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("Expected empty HEAD response, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestReadinessCheck(t *testing.T) {
	h, reader, _, _ := newTestHandlers()

	reader.cached = false
	rec := httptest.NewRecorder()
	h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before first snapshot, got %d", rec.Code)
	}

	reader.cached = true
	rec = httptest.NewRecorder()
	h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 once cached, got %d", rec.Code)
	}
}

// =============================================================================
// Version
// =============================================================================

func TestGetVersion(t *testing.T) {
	h, _, _, _ := newTestHandlers()
	rec := httptest.NewRecorder()

	h.GetVersion(rec, httptest.NewRequest(http.MethodGet, "/version", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	info := decode[VersionResponse](t, rec)
	if info.Version != startup.Version || info.GoVersion == "" {
		t.Errorf("Unexpected build info %+v", info.BuildInfo)
	}
	if info.Watch.CheckInterval != "3s" || info.Watch.MaxUsedRatio != 0.7 {
		t.Errorf("Unexpected watch settings %+v", info.Watch)
	}
	if info.Watch.ReadTimeout != "" || info.Watch.NotifyTimeout != "" {
		t.Errorf("Expected unbounded timeouts to be omitted, got %+v", info.Watch)
	}
}

func TestGetVersionReportsTimeouts(t *testing.T) {
	h, _, _, status := newTestHandlers()
	status.config.ReadTimeout = 2 * time.Second
	status.config.NotifyTimeout = 5 * time.Second
	rec := httptest.NewRecorder()

	h.GetVersion(rec, httptest.NewRequest(http.MethodGet, "/version", http.NoBody))

	info := decode[VersionResponse](t, rec)
	if info.Watch.ReadTimeout != "2s" || info.Watch.NotifyTimeout != "5s" {
		t.Errorf("Unexpected watch settings %+v", info.Watch)
	}
}

// =============================================================================
// Router
// =============================================================================

func TestRouterRegistersEndpoints(t *testing.T) {
	h, _, _, _ := newTestHandlers()
	r := h.NewRouter(RouterConfig{})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodHead, "/livez", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/version", "", http.StatusOK},
		{http.MethodGet, "/api/memory", "", http.StatusOK},
		{http.MethodGet, "/api/alerts", "", http.StatusOK},
		{http.MethodPut, "/api/alerts", `{"enabled": true}`, http.StatusOK},
		{http.MethodPost, "/api/alerts", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRouterAPIMiddlewareOnlyGuardsAPI(t *testing.T) {
	h, _, _, _ := newTestHandlers()
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	r := h.NewRouter(RouterConfig{APIMiddleware: []mux.MiddlewareFunc{deny}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/memory", http.NoBody))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected /api to be guarded, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected /livez to stay open, got %d", rec.Code)
	}
}

func TestMetricsRouter(t *testing.T) {
	r := NewMetricsRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/memory", http.NoBody))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected only /metrics on the metrics router, got %d", rec.Code)
	}
}
