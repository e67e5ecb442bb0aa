package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
)

// HealthChecker serves liveness and readiness probes for the HTTP transport.
type HealthChecker struct {
	ready         atomic.Bool
	serverContext *ServerContext
	startTime     time.Time
	version       string
}

// NewHealthChecker creates a HealthChecker that starts out ready.
// sc may be nil.
func NewHealthChecker(sc *ServerContext, version string) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
		version:       version,
	}
	h.ready.Store(true)
	return h
}

// SetReady sets the readiness state of the server.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady returns whether the server is ready to receive traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

func (h *HealthChecker) shuttingDown() bool {
	return h.serverContext != nil && h.serverContext.IsShutdown()
}

// HealthResponse is the body of /healthz and /readyz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse is the body of /healthz/detailed.
type DetailedHealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime"`
}

// LivenessHandler answers /healthz. It fails only if the process cannot respond.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeHealth(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler answers /readyz.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks := map[string]string{
			"ready":    healthStatusOK,
			"shutdown": healthStatusOK,
			"executor": healthStatusOK,
		}
		ok := true

		if !h.ready.Load() {
			checks["ready"] = healthStatusNotReady
			ok = false
		}
		if h.shuttingDown() {
			checks["shutdown"] = healthStatusShuttingDown
			ok = false
		}
		if h.serverContext != nil && h.serverContext.Executor() == nil {
			checks["executor"] = healthStatusNotReady
			ok = false
		}

		resp := HealthResponse{Status: healthStatusOK, Checks: checks}
		status := http.StatusOK
		if !ok {
			resp.Status = healthStatusNotReady
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, status, resp)
	})
}

// DetailedHealthHandler answers /healthz/detailed with version and uptime.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := DetailedHealthResponse{
			Status:  healthStatusOK,
			Version: h.version,
			Uptime:  time.Since(h.startTime).Truncate(time.Second).String(),
		}

		status := http.StatusOK
		switch {
		case !h.ready.Load():
			resp.Status = healthStatusNotReady
			status = http.StatusServiceUnavailable
		case h.shuttingDown():
			resp.Status = healthStatusShuttingDown
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, status, resp)
	})
}

// RegisterHealthEndpoints registers health check endpoints on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}

func writeHealth(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
