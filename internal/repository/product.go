package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/deppfellow/storefront/internal/listing"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/sqlerr"
	"github.com/jmoiron/sqlx"
)

const (
	productTable   = "products"
	productColumns = "id, name, cat_id, price, color, tag, size, image, description"
)

// ProductRepository reads the products table.
type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Count returns how many products match pred.
func (r *ProductRepository) Count(ctx context.Context, pred listing.Predicate) (int, error) {
	query := r.db.Rebind(statement("SELECT COUNT(*) FROM", productTable, pred.Where()))

	var total int
	if err := r.db.GetContext(ctx, &total, query, pred.Args...); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return total, nil
}

// Find returns the products matching pred inside win, ordered by sort.
func (r *ProductRepository) Find(ctx context.Context, pred listing.Predicate, sort listing.Sort, win listing.Window) ([]model.Product, error) {
	query := r.db.Rebind(statement(
		"SELECT", productColumns, "FROM", productTable,
		pred.Where(),
		sort.Clause(),
		"LIMIT ? OFFSET ?",
	))

	args := append(slices.Clone(pred.Args), win.Limit, win.Offset)

	products := []model.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// GetByID returns one product. A missing row yields a no-rows error tagged
// with the table name.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*model.Product, error) {
	query := r.db.Rebind(statement("SELECT", productColumns, "FROM", productTable, "WHERE id = ?"))

	var product model.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sqlerr.WrapNoRows(productTable, err)
		}
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return &product, nil
}
