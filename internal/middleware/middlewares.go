package middleware

import (
	"github.com/deppfellow/storefront/internal/server"
)

// Middlewares groups every middleware component used by the HTTP server so
// the router builds them once.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer installs the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing installs New Relic transactions and custom attributes.
	Tracing *TracingMiddleware

	// RateLimit enforces the per-IP request rate.
	RateLimit *RateLimitMiddleware

	// Metrics records Prometheus request metrics.
	Metrics *MetricsMiddleware
}

// NewMiddlewares constructs all middleware components from the application container.
// Without New Relic, the tracing middleware degrades into a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	nrApp := s.LoggerService.GetApplication()

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
		Metrics:         NewMetricsMiddleware(s.Metrics),
	}
}
