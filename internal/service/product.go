package service

import (
	"context"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/listing"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/rs/zerolog"
)

// ProductStore runs product queries built from a listing predicate.
type ProductStore interface {
	Count(ctx context.Context, pred listing.Predicate) (int, error)
	Find(ctx context.Context, pred listing.Predicate, sort listing.Sort, win listing.Window) ([]model.Product, error)
	GetByID(ctx context.Context, id int) (*model.Product, error)
}

// ProductService assembles filtered product pages.
type ProductService struct {
	store     ProductStore
	builder   *listing.Builder
	opts      listing.Options
	slowQuery time.Duration
	metrics   *metrics.Collector
}

func NewProductService(store ProductStore, cfg *config.ListingConfig, slowQuery time.Duration, m *metrics.Collector) *ProductService {
	opts := cfg.Options()
	return &ProductService{
		store:     store,
		builder:   listing.NewBuilder(opts.PriceFloor, opts.PriceCeiling),
		opts:      opts,
		slowQuery: slowQuery,
		metrics:   m,
	}
}

// ListingOptions returns the limits requests are parsed with.
func (s *ProductService) ListingOptions() listing.Options {
	return s.opts
}

// Search returns one page of the products matching spec together with the
// size of the whole matched set.
//
// The count and the page are two independent queries sharing one
// predicate. They are not run in a transaction, so a concurrent write can
// make Total disagree with the rows by a few items.
func (s *ProductService) Search(ctx context.Context, spec listing.FilterSpec) (*model.PageResult[model.Product], error) {
	pred := s.builder.Build(spec)
	win := listing.NewWindow(spec.Page, spec.PerPage)

	logger := zerolog.Ctx(ctx).With().
		Str("operation", "product_search").
		Int("dimensions", len(pred.Clauses)).
		Logger()

	start := time.Now()
	total, err := s.store.Count(ctx, pred)
	s.observeQuery(&logger, "count", time.Since(start), pred)
	if err != nil {
		s.metrics.RecordListing(metrics.OutcomeError, 0)
		return nil, err
	}

	start = time.Now()
	rows, err := s.store.Find(ctx, pred, spec.Sort, win)
	s.observeQuery(&logger, "page", time.Since(start), pred)
	if err != nil {
		s.metrics.RecordListing(metrics.OutcomeError, 0)
		return nil, err
	}
	if rows == nil {
		rows = []model.Product{}
	}

	s.metrics.RecordListing(metrics.OutcomeOK, total)

	return &model.PageResult[model.Product]{
		Total:   total,
		PerPage: spec.PerPage,
		Page:    spec.Page,
		Data:    rows,
	}, nil
}

// RecordInvalid counts a listing request rejected before reaching the store.
func (s *ProductService) RecordInvalid() {
	s.metrics.RecordListing(metrics.OutcomeInvalid, 0)
}

func (s *ProductService) observeQuery(logger *zerolog.Logger, query string, d time.Duration, pred listing.Predicate) {
	s.metrics.ObserveListingQuery(query, d)

	if s.slowQuery > 0 && d >= s.slowQuery {
		logger.Warn().
			Str("query", query).
			Str("where", pred.Where()).
			Int("args", len(pred.Args)).
			Dur("duration", d).
			Msg("slow listing query")
	}
}

// GetByID returns one product.
func (s *ProductService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	return s.store.GetByID(ctx, id)
}
