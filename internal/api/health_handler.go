package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/clinic-api/internal/api/shared"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/redact"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Driver  string `json:"driver"`
}

// DBHealthResponse is the body of GET /db/health.
type DBHealthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// HealthHandler serves liveness and database health.
type HealthHandler struct {
	service string
	driver  string
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. db may be nil for services
// without a database, in which case /db/health is not mounted.
func NewHealthHandler(service, driver string, db Pinger, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{service: service, driver: driver, db: db, timeout: timeout}
}

// Routes mounts the health endpoints on r.
func (h *HealthHandler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	if h.db != nil {
		r.Get("/db/health", h.DBHealth)
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: h.service,
		Driver:  h.driver,
	})
}

// DBHealth handles GET /db/health.
func (h *HealthHandler) DBHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("database health check failed")
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, DBHealthResponse{
			OK:    false,
			Error: redact.Error(err),
		})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DBHealthResponse{OK: true})
}
