package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthChecker is anything that can report whether a dependency is usable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	logger  *slog.Logger
	db      HealthChecker
	tables  HealthChecker
	cache   HealthChecker
	storage HealthChecker
}

// NewHealthHandler takes nil for any dependency that is not configured.
func NewHealthHandler(logger *slog.Logger, db, tables, cache, storage HealthChecker) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		db:      db,
		tables:  tables,
		cache:   cache,
		storage: storage,
	}
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz reports liveness and checks nothing.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz answers 503 unless every configured dependency responds. Failure
// details go to the log only.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	check := func(name string, c HealthChecker) {
		if c == nil {
			checks[name] = "not configured"
			return
		}
		if err := c.Ping(ctx); err != nil {
			h.logger.Error("readiness check failed",
				slog.String("check", name),
				slog.String("error", err.Error()),
			)
			checks[name] = "error"
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	check("database", h.db)
	check("tables", h.tables)
	check("redis", h.cache)
	check("storage", h.storage)

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{Status: status, Checks: checks})
}
