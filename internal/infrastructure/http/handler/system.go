package handler

import (
	"net/http"
	"time"

	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

// Version is reported by the root endpoint. Overridden at build time with
// -ldflags "-X github.com/rezkam/todos/internal/infrastructure/http/handler.Version=...".
var Version = "1.0.0"

// InfoResponse is the payload of GET /.
type InfoResponse struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse is the payload of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Info describes the API. GET /
func Info(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, InfoResponse{
		Message:   "Todo App API",
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Endpoints: map[string]string{
			"health":        "/api/health",
			"todos":         "/api/todos",
			"documentation": "Visit /api/todos for todo operations",
		},
	})
}

// Health is the liveness probe. GET /api/health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
