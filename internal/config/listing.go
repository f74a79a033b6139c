package config

import (
	"fmt"
	"time"

	"github.com/deppfellow/storefront/internal/listing"
)

// Price range modes decide what happens when a requested price range falls
// outside [PriceFloor, PriceCeiling].
const (
	// PriceRangeDrop silently ignores the price filter.
	PriceRangeDrop = listing.PriceRangeDrop
	// PriceRangeReject answers the request with 400.
	PriceRangeReject = listing.PriceRangeReject
	// PriceRangeClamp clamps both bounds into the allowed domain.
	PriceRangeClamp = listing.PriceRangeClamp
)

// ListingConfig tunes the filtered product listing and the lookup endpoints.
type ListingConfig struct {
	DefaultPerPage int `koanf:"default_per_page" validate:"min=0"`
	MaxPerPage     int `koanf:"max_per_page" validate:"min=0"`

	PriceFloor     int    `koanf:"price_floor" validate:"min=0"`
	PriceCeiling   int    `koanf:"price_ceiling" validate:"min=0"`
	PriceRangeMode string `koanf:"price_range_mode" validate:"omitempty,oneof=drop reject clamp"`

	// LookupCacheTTL is how long category/color/tag/size lists stay in Redis.
	// Zero disables caching.
	LookupCacheTTL time.Duration `koanf:"lookup_cache_ttl"`

	// NewsCategoryIDs maps the public news category number n (1-based) to
	// the category id NewsCategoryIDs[n-1] stored in the news table.
	NewsCategoryIDs []int `koanf:"news_category_ids"`
}

// DefaultListingConfig returns the listing settings used when none are configured.
// The parsing limits come from listing.DefaultOptions.
func DefaultListingConfig() *ListingConfig {
	opts := listing.DefaultOptions()
	return &ListingConfig{
		DefaultPerPage:  opts.DefaultPerPage,
		MaxPerPage:      opts.MaxPerPage,
		PriceFloor:      opts.PriceFloor,
		PriceCeiling:    opts.PriceCeiling,
		PriceRangeMode:  opts.PriceRangeMode,
		LookupCacheTTL:  10 * time.Minute,
		NewsCategoryIDs: []int{1, 2, 3},
	}
}

// Options returns the limits the listing parser runs with.
func (c *ListingConfig) Options() listing.Options {
	return listing.Options{
		DefaultPerPage: c.DefaultPerPage,
		MaxPerPage:     c.MaxPerPage,
		PriceFloor:     c.PriceFloor,
		PriceCeiling:   c.PriceCeiling,
		PriceRangeMode: c.PriceRangeMode,
	}
}

// applyDefaults fills zero values of a partially configured block.
func (c *ListingConfig) applyDefaults() {
	d := DefaultListingConfig()
	if c.DefaultPerPage == 0 {
		c.DefaultPerPage = d.DefaultPerPage
	}
	if c.MaxPerPage == 0 {
		c.MaxPerPage = d.MaxPerPage
	}
	if c.PriceFloor == 0 && c.PriceCeiling == 0 {
		c.PriceFloor = d.PriceFloor
		c.PriceCeiling = d.PriceCeiling
	}
	if c.PriceRangeMode == "" {
		c.PriceRangeMode = d.PriceRangeMode
	}
	if len(c.NewsCategoryIDs) == 0 {
		c.NewsCategoryIDs = d.NewsCategoryIDs
	}
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *ListingConfig) Validate() error {
	if c.DefaultPerPage > c.MaxPerPage {
		return fmt.Errorf("default_per_page (%d) exceeds max_per_page (%d)", c.DefaultPerPage, c.MaxPerPage)
	}
	if c.PriceFloor > c.PriceCeiling {
		return fmt.Errorf("price_floor (%d) exceeds price_ceiling (%d)", c.PriceFloor, c.PriceCeiling)
	}
	switch c.PriceRangeMode {
	case PriceRangeDrop, PriceRangeReject, PriceRangeClamp:
	default:
		return fmt.Errorf("invalid price_range_mode: %s (must be one of: drop, reject, clamp)", c.PriceRangeMode)
	}
	if c.LookupCacheTTL < 0 {
		return fmt.Errorf("lookup_cache_ttl must be non-negative")
	}
	for _, id := range c.NewsCategoryIDs {
		if id < 1 {
			return fmt.Errorf("news_category_ids must be positive, got %d", id)
		}
	}
	return nil
}
