package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/deppfellow/storefront/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}, StaticDir: t.TempDir()},
		Listing:       config.DefaultListingConfig(),
		Observability: config.DefaultObservabilityConfig(),
	}
	s := &server.Server{
		Config:  cfg,
		Logger:  &logger,
		Metrics: metrics.NewCollector(cfg.Observability.Metrics, nil),
	}

	db := testutil.NewCatalogDB(t)
	testutil.SeedProducts(t, db, testutil.FixtureProducts(10))
	for _, table := range []string{"categories", "colors", "tags", "sizes"} {
		testutil.SeedLookups(t, db, table, []model.Lookup{{ID: 1, Name: table}})
	}
	repos := repository.NewRepositoriesWithDB(db)

	services := &service.Services{
		Products: service.NewProductService(repos.Products, cfg.Listing, 0, s.Metrics),
		News:     service.NewNewsService(repos.News, cfg.Listing.NewsCategoryIDs),
		Comments: service.NewCommentService(repos.Comments, nil, &logger),
		Lookups:  service.NewLookupService(repos.Lookups, nil, 0, s.Metrics, &logger),
	}

	return NewRouter(s, handler.NewHandlers(s, services))
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestProductRoutes(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/products/qs", http.StatusOK},
		{"/api/v1/products/qs?orderby=secret,asc", http.StatusBadRequest},
		{"/api/v1/products/categories", http.StatusOK},
		{"/api/v1/products/colors", http.StatusOK},
		{"/api/v1/products/tags", http.StatusOK},
		{"/api/v1/products/sizes", http.StatusOK},
		{"/api/v1/products/3", http.StatusOK},
		{"/api/v1/products/300", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(e, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLookupRoutesServeTheirOwnTable(t *testing.T) {
	e := newTestRouter(t)

	rec := get(e, "/api/v1/products/tags")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"tags"}]`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	e := newTestRouter(t)

	rec := get(e, "/api/v2/products")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestResponsesCarryRequestID(t *testing.T) {
	e := newTestRouter(t)

	rec := get(e, "/api/v1/products/qs")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestRouter(t)

	require.Equal(t, http.StatusBadRequest, get(e, "/api/v1/products/qs?cat_ids=x").Code)
	require.Equal(t, http.StatusOK, get(e, "/api/v1/products/qs").Code)

	rec := get(e, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `storefront_listing_requests_total{outcome="invalid"} 1`)
	assert.Contains(t, body, `storefront_listing_requests_total{outcome="ok"} 1`)
	assert.Contains(t, body, `route="/api/v1/products/qs"`)
}
