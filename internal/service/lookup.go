package service

import (
	"context"
	"time"

	"github.com/deppfellow/storefront/internal/lib/cache"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/rs/zerolog"
)

// LookupStore reads the lookup tables.
type LookupStore interface {
	List(ctx context.Context, kind repository.LookupKind) ([]model.Lookup, error)
}

// LookupCache is a read-through cache of JSON values.
type LookupCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// LookupService serves the category, color, tag and size lists.
//
// Lists are cached for ttl. Cache failures are logged and the database
// answers instead.
type LookupService struct {
	store   LookupStore
	cache   LookupCache
	ttl     time.Duration
	metrics *metrics.Collector
	logger  *zerolog.Logger
}

func NewLookupService(store LookupStore, c LookupCache, ttl time.Duration, m *metrics.Collector, logger *zerolog.Logger) *LookupService {
	return &LookupService{store: store, cache: c, ttl: ttl, metrics: m, logger: logger}
}

// List returns every entry of kind.
func (s *LookupService) List(ctx context.Context, kind repository.LookupKind) ([]model.Lookup, error) {
	if s.cache == nil || s.ttl <= 0 {
		return s.store.List(ctx, kind)
	}

	key := cache.Key("lookup", string(kind))

	var entries []model.Lookup
	found, err := s.cache.Get(ctx, key, &entries)
	switch {
	case err != nil:
		s.metrics.RecordLookupCache(metrics.CacheError)
		s.logger.Warn().Err(err).Str("key", key).Msg("lookup cache read failed")
	case found:
		s.metrics.RecordLookupCache(metrics.CacheHit)
		return entries, nil
	default:
		s.metrics.RecordLookupCache(metrics.CacheMiss)
	}

	entries, err = s.store.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, entries, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("lookup cache write failed")
	}
	return entries, nil
}
