package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// Check tests one dependency; a nil error means healthy.
type Check func(ctx context.Context) error

// HealthHandler handles GET /health, the liveness check.
// Always returns 200 while the process is alive; the database field reports
// whether the primary store answered a ping.
type HealthHandler struct {
	database Check
}

func NewHealthHandler(database Check) *HealthHandler {
	return &HealthHandler{database: database}
}

type livenessResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	db := "Connected"
	if h.database != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.database(ctx); err != nil {
			db = "Disconnected"
		}
	}

	return c.JSON(http.StatusOK, livenessResponse{
		Status:    "OK",
		Message:   "Portfolio API running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  db,
	})
}

// HealthDependenciesHandler handles GET /health/ready, the readiness check.
// Checks every configured dependency before declaring the service ready.
type HealthDependenciesHandler struct {
	checks map[string]Check
}

func NewHealthDependenciesHandler(checks map[string]Check) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{checks: checks}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]dependencyStatus, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
