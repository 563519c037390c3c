// internal/handler/health_handler.go
package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthHandler reports whether the service can reach its store
type HealthHandler struct {
	Service string
	Ping    func(ctx context.Context) error
	Timeout time.Duration
}

func NewHealthHandler(service string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{Service: service, Ping: ping, Timeout: 2 * time.Second}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	status, code := "healthy", http.StatusOK
	if err := h.Ping(ctx); err != nil {
		log.Println("❌ Health check failed:", err)
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  status,
		"service": h.Service,
	}); err != nil {
		log.Println("⚠️ failed to encode health response:", err)
	}
}
