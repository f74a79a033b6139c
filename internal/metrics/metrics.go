// Package metrics exposes Prometheus metrics for the listing API.
//
// All metrics live on a private registry so tests can build as many
// collectors as they need. A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Listing outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Lookup cache results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Collector records request, listing, cache and dependency metrics.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	listingRequests *prometheus.CounterVec
	listingQueries  *prometheus.HistogramVec
	listingRows     prometheus.Histogram

	lookupCache  *prometheus.CounterVec
	dependencyUp *prometheus.GaugeVec
}

// NewCollector registers every metric on registry. A nil registry gets a
// fresh one.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = config.ServiceName
	}

	c := &Collector{
		enabled:  cfg.Enabled,
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		listingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "requests_total",
			Help:      "Filtered product listings by outcome.",
		}, []string{"outcome"}),
		listingQueries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "query_duration_seconds",
			Help:      "Latency of the count and page queries of a listing.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"query"}),
		listingRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "matched_rows",
			Help:      "Total rows matched by a listing predicate.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		lookupCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lookup",
			Name:      "cache_requests_total",
			Help:      "Lookup cache reads by result.",
		}, []string{"result"}),
		dependencyUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dependency_up",
			Help:      "1 when the last periodic check of a dependency succeeded.",
		}, []string{"dependency"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpRequests,
		c.httpDuration,
		c.listingRequests,
		c.listingQueries,
		c.listingRows,
		c.lookupCache,
		c.dependencyUp,
	)

	return c
}

func (c *Collector) active() bool {
	return c != nil && c.enabled
}

// ObserveHTTPRequest records one served request. route is the matched
// route pattern, never the raw path.
func (c *Collector) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if !c.active() {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordListing counts a listing request and, when it succeeded, the
// size of its matched set.
func (c *Collector) RecordListing(outcome string, total int) {
	if !c.active() {
		return
	}
	c.listingRequests.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		c.listingRows.Observe(float64(total))
	}
}

// ObserveListingQuery records the latency of the "count" or "page" query.
func (c *Collector) ObserveListingQuery(query string, d time.Duration) {
	if !c.active() {
		return
	}
	c.listingQueries.WithLabelValues(query).Observe(d.Seconds())
}

// RecordLookupCache counts a lookup cache read.
func (c *Collector) RecordLookupCache(result string) {
	if !c.active() {
		return
	}
	c.lookupCache.WithLabelValues(result).Inc()
}

// SetDependencyUp publishes the result of the last check of dependency.
func (c *Collector) SetDependencyUp(dependency string, up bool) {
	if !c.active() {
		return
	}
	value := 0.0
	if up {
		value = 1
	}
	c.dependencyUp.WithLabelValues(dependency).Set(value)
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
