package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

// LookupKind names one categorical lookup table.
type LookupKind string

const (
	LookupCategories LookupKind = "categories"
	LookupColors     LookupKind = "colors"
	LookupTags       LookupKind = "tags"
	LookupSizes      LookupKind = "sizes"
)

// Valid reports whether k names a known lookup table.
func (k LookupKind) Valid() bool {
	switch k {
	case LookupCategories, LookupColors, LookupTags, LookupSizes:
		return true
	}
	return false
}

// LookupRepository reads the lookup tables behind the product filters.
type LookupRepository struct {
	db *sqlx.DB
}

func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// List returns every entry of the table named by kind, ordered by id.
func (r *LookupRepository) List(ctx context.Context, kind LookupKind) ([]model.Lookup, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown lookup kind %q", kind)
	}

	entries := []model.Lookup{}
	query := statement("SELECT id, name FROM", string(kind), "ORDER BY id")
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	return entries, nil
}
