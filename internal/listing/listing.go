// Package listing turns filter parameters of the product listing into SQL.
//
// A request's raw query parameters are parsed into a FilterSpec, which the
// Builder turns into a Predicate: one parenthesised sub-clause per active
// filter dimension, joined with AND. Sort and Window resolve the ORDER BY
// and LIMIT/OFFSET parts. Everything in this package is a pure function of
// its input and safe for concurrent use.
package listing

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min int
	Max int
}

// FilterSpec is the normalized input of one listing request.
//
// Id sets are sorted and free of duplicates, so building the same spec
// twice always yields the same SQL.
type FilterSpec struct {
	Keyword     string
	CategoryIDs []int
	ColorIDs    []int
	TagIDs      []int
	SizeIDs     []int
	PriceRange  *PriceRange
	Sort        Sort
	Page        int
	PerPage     int
}

// Price range modes decide what happens when a requested price range falls
// outside [PriceFloor, PriceCeiling].
const (
	// PriceRangeDrop keeps the range but leaves it out of the predicate.
	PriceRangeDrop = "drop"
	// PriceRangeReject fails parsing.
	PriceRangeReject = "reject"
	// PriceRangeClamp clamps both bounds into the allowed domain.
	PriceRangeClamp = "clamp"
)

// Options carries the configured limits used while parsing.
type Options struct {
	DefaultPerPage int
	MaxPerPage     int
	PriceFloor     int
	PriceCeiling   int
	// PriceRangeMode is one of PriceRangeDrop, PriceRangeReject or PriceRangeClamp.
	PriceRangeMode string
}

// DefaultOptions returns the listing limits used when none are configured.
func DefaultOptions() Options {
	return Options{
		DefaultPerPage: 10,
		MaxPerPage:     100,
		PriceFloor:     1500,
		PriceCeiling:   10000,
		PriceRangeMode: PriceRangeDrop,
	}
}
