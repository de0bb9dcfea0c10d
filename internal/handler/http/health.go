// Package http provides HTTP handlers and middleware for the web application.
// It includes the news digest and subscription endpoints, health checks,
// metrics collection, authentication, and various middleware components.
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"neuradigest/internal/usecase/notify"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// StorePinger verifies connectivity to the subscriber row store.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoint requests.
// It verifies row store connectivity and reports mail channel circuit
// breaker state for operational monitoring.
type HealthHandler struct {
	Store   StorePinger
	Notify  notify.Service
	Version string
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	// 購読者ストアの接続チェック
	if h.Store != nil {
		storeCheck := h.checkStore(ctx)
		checks["subscriber_store"] = storeCheck
		if storeCheck.Status == "unhealthy" {
			allHealthy = false
		}
	} else {
		checks["subscriber_store"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
		allHealthy = false
	}

	// メールチャネルの状態は情報のみで、healthy 判定には影響しない
	if h.Notify != nil {
		checks["mail_channels"] = h.checkMailChannels()
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// checkStore verifies the row store responds within the health check budget.
func (h *HealthHandler) checkStore(ctx context.Context) CheckStatus {
	if err := h.Store.Ping(ctx); err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	}
	return CheckStatus{Status: "healthy"}
}

// checkMailChannels reports circuit breaker state per delivery channel.
// Mail is best-effort, so an open circuit never marks the service unhealthy.
func (h *HealthHandler) checkMailChannels() CheckStatus {
	details := make(map[string]interface{})
	for _, ch := range h.Notify.GetChannelHealth() {
		state := "closed"
		if ch.CircuitBreakerOpen {
			state = "open"
		}
		details[ch.Name] = map[string]interface{}{
			"enabled":         ch.Enabled,
			"circuit_breaker": state,
		}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: details,
	}
}

// ReadyHandler handles Kubernetes readiness probe requests.
// It checks that the subscriber store is reachable before accepting traffic.
type ReadyHandler struct {
	Store StorePinger
}

// ServeHTTP performs readiness checks and returns 200 OK if ready,
// or 503 Service Unavailable if the store is not reachable.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "subscriber store not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.Store.Ping(ctx); err != nil {
		http.Error(w, "subscriber store not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
