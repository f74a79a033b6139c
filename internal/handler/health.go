package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/storefront/internal/lib/healthcheck"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth probes every dependency and returns 200 when all required
// ones answer, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := healthcheck.Report{Healthy: true, Checks: map[string]healthcheck.Result{}}
	if h.server.Health != nil {
		report = h.server.Health.Run(c.Request().Context())
	}

	status := healthcheck.StatusHealthy
	code := http.StatusOK
	if !report.Healthy {
		status = healthcheck.StatusUnhealthy
		code = http.StatusServiceUnavailable
	}

	response := map[string]any{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      report.Checks,
	}

	if report.Healthy {
		logger.Info().Dur("total_duration", time.Since(start)).Msg("health check passed")
	} else {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	}

	if err := c.JSON(code, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
