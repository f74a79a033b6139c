package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(enabled bool) *Collector {
	return NewCollector(config.MetricsConfig{Enabled: enabled, Namespace: "test"}, nil)
}

func TestRecordListing(t *testing.T) {
	c := newTestCollector(true)

	c.RecordListing(OutcomeOK, 42)
	c.RecordListing(OutcomeOK, 3)
	c.RecordListing(OutcomeInvalid, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.listingRequests.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.listingRequests.WithLabelValues(OutcomeInvalid)))
}

func TestDisabledCollectorRecordsNothing(t *testing.T) {
	c := newTestCollector(false)

	c.RecordLookupCache(CacheHit)
	c.SetDependencyUp("database", true)

	assert.Equal(t, 0, testutil.CollectAndCount(c.lookupCache))
	assert.Equal(t, 0, testutil.CollectAndCount(c.dependencyUp))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveHTTPRequest(http.MethodGet, "/api/v1/products/qs", http.StatusOK, time.Millisecond)
		c.RecordListing(OutcomeError, 0)
		c.ObserveListingQuery("count", time.Millisecond)
		c.RecordLookupCache(CacheMiss)
		c.SetDependencyUp("redis", false)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := newTestCollector(true)
	c.SetDependencyUp("database", true)
	c.ObserveHTTPRequest(http.MethodGet, "/api/v1/news", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `test_dependency_up{dependency="database"} 1`)
	assert.Contains(t, body, `test_http_requests_total{method="GET",route="/api/v1/news",status="200"} 1`)
}
