// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - background job worker server (asynq)
//   - metrics collector and periodic health checks
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/lib/healthcheck"
	"github.com/deppfellow/storefront/internal/lib/job"
	loggerPkg "github.com/deppfellow/storefront/internal/logger"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Server is the application container that holds shared resources.
// It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is the PostgreSQL pool and the sqlx handle the repositories use.
	DB *database.Database

	// Redis backs the lookup cache. Startup continues when it is down.
	Redis *redis.Client

	// Job runs background workers and enqueues tasks.
	Job *job.JobService

	Metrics *metrics.Collector
	Health  *healthcheck.Checker

	httpServer *http.Server
	stopHealth context.CancelFunc
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server. That is done in SetupHTTPServer + Start.
// A database failure aborts startup; a Redis failure is logged only.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, lookups will not be cached")
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)

	if err := jobService.Start(); err != nil {
		_ = db.Close()
		return nil, err
	}

	collector := metrics.NewCollector(cfg.Observability.Metrics, nil)

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
		Metrics:       collector,
	}

	server.Health = healthcheck.New(server.dependencyChecks(), healthcheck.Options{
		Interval:    cfg.Observability.HealthChecks.Interval,
		Timeout:     cfg.Observability.HealthChecks.Timeout,
		Logger:      logger,
		Reporter:    collector,
		Application: loggerService.GetApplication(),
	})

	if cfg.Observability.HealthChecks.Enabled {
		healthCtx, stop := context.WithCancel(context.Background())
		if err := server.Health.Start(healthCtx); err != nil {
			stop()
			logger.Error().Err(err).Msg("periodic health checks disabled")
		} else {
			server.stopHealth = stop
		}
	}

	return server, nil
}

// dependencyChecks returns the checks named in the health check config.
// The database is required; the service degrades without Redis.
func (s *Server) dependencyChecks() []healthcheck.Check {
	all := []healthcheck.Check{
		{Name: "database", Required: true, Probe: s.DB.Ping},
		{Name: "redis", Probe: func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}},
	}

	names := s.Config.Observability.HealthChecks.Checks
	if len(names) == 0 {
		return all
	}

	var checks []healthcheck.Check
	for _, check := range all {
		if slices.Contains(names, check.Name) {
			checks = append(checks, check)
		}
	}
	return checks
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server, then the workers, then the connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.stopHealth != nil {
		s.stopHealth()
		s.Health.Stop()
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if err := s.DB.Close(); err != nil {
		errList = append(errList, fmt.Errorf("failed to close database connection: %w", err))
	}

	return errors.Join(errList...)
}
