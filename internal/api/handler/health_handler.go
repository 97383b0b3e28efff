package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness godoc
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// AuthStateSource reports the auth store lifecycle state.
type AuthStateSource interface {
	State() domain.AuthState
}

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// The gateway is ready once the auth store has resolved its startup check and
// the projection store answers.
type HealthDependenciesHandler struct {
	auth        AuthStateSource
	projections Pinger
}

func NewHealthDependenciesHandler(auth AuthStateSource, projections Pinger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		auth:        auth,
		projections: projections,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness godoc
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  readinessResponse
// @Failure  503  {object}  readinessResponse
// @Router   /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- Auth store resolved ---
	if state := h.auth.State(); state == domain.AuthInitializing {
		deps["auth"] = dependencyStatus{Status: "initializing"}
		healthy = false
	} else {
		deps["auth"] = dependencyStatus{Status: "ok"}
	}

	// --- Projection store ping ---
	if err := h.projections.Ping(ctx); err != nil {
		deps["projection_store"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["projection_store"] = dependencyStatus{Status: "ok"}
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
