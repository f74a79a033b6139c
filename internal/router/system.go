package router

import (
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the API:
// health, docs, their static assets and the Prometheus scrape endpoint.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	// openapi.json and openapi.html.
	r.Static("/static", s.Config.Server.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if m := s.Config.Observability.Metrics; m.Enabled && s.Metrics != nil {
		r.GET(m.Path, echo.WrapHandler(s.Metrics.Handler()))
	}
}
