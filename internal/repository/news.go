package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/sqlerr"
	"github.com/jmoiron/sqlx"
)

const (
	newsTable   = "news"
	newsColumns = "id, category_id, title, summary, content, image, published_at"
	newsOrder   = "ORDER BY published_at DESC, id DESC"
)

// NewsRepository reads the news table.
type NewsRepository struct {
	db *sqlx.DB
}

func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// ListAll loads every news row, newest first. The table is small and the
// listing paginates in memory.
func (r *NewsRepository) ListAll(ctx context.Context) ([]model.News, error) {
	news := []model.News{}
	query := statement("SELECT", newsColumns, "FROM", newsTable, newsOrder)
	if err := r.db.SelectContext(ctx, &news, query); err != nil {
		return nil, fmt.Errorf("listing news: %w", err)
	}
	return news, nil
}

// ListByCategory returns the news of one category, newest first.
func (r *NewsRepository) ListByCategory(ctx context.Context, categoryID int) ([]model.News, error) {
	query := r.db.Rebind(statement("SELECT", newsColumns, "FROM", newsTable, "WHERE category_id = ?", newsOrder))

	news := []model.News{}
	if err := r.db.SelectContext(ctx, &news, query, categoryID); err != nil {
		return nil, fmt.Errorf("listing news of category %d: %w", categoryID, err)
	}
	return news, nil
}

// GetByID returns one news row.
func (r *NewsRepository) GetByID(ctx context.Context, id int) (*model.News, error) {
	query := r.db.Rebind(statement("SELECT", newsColumns, "FROM", newsTable, "WHERE id = ?"))

	var news model.News
	if err := r.db.GetContext(ctx, &news, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sqlerr.WrapNoRows(newsTable, err)
		}
		return nil, fmt.Errorf("getting news %d: %w", id, err)
	}
	return &news, nil
}
