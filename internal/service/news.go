package service

import (
	"context"
	"net/http"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/listing"
	"github.com/deppfellow/storefront/internal/model"
)

// NewsStore reads news rows.
type NewsStore interface {
	ListAll(ctx context.Context) ([]model.News, error)
	ListByCategory(ctx context.Context, categoryID int) ([]model.News, error)
	GetByID(ctx context.Context, id int) (*model.News, error)
}

// NewsService serves the news listing. News pages are cut in memory from
// the full list.
type NewsService struct {
	store       NewsStore
	categoryIDs []int
}

// NewNewsService maps public category numbers 1..len(categoryIDs) onto the
// stored category ids.
func NewNewsService(store NewsStore, categoryIDs []int) *NewsService {
	return &NewsService{store: store, categoryIDs: categoryIDs}
}

// List returns the requested page of all news.
func (s *NewsService) List(ctx context.Context, page, perPage int) (*model.NewsPage, error) {
	news, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return paginateNews(news, page, perPage), nil
}

// ListByCategory returns the requested page of one category. Unknown
// categories and categories without news are both reported as not found.
func (s *NewsService) ListByCategory(ctx context.Context, category, page, perPage int) (*model.NewsPage, error) {
	if category < 1 || category > len(s.categoryIDs) {
		return nil, errs.NewNotFoundError("News category not found", true, nil)
	}

	news, err := s.store.ListByCategory(ctx, s.categoryIDs[category-1])
	if err != nil {
		return nil, err
	}
	if len(news) == 0 {
		return nil, errs.NewNotFoundError("No news found in this category", true, nil)
	}

	return paginateNews(news, page, perPage), nil
}

// GetByID returns one news item.
func (s *NewsService) GetByID(ctx context.Context, id int) (*model.News, error) {
	return s.store.GetByID(ctx, id)
}

func paginateNews(news []model.News, page, perPage int) *model.NewsPage {
	win := listing.NewWindow(page, perPage)
	return &model.NewsPage{
		Message:     "success",
		Code:        http.StatusOK,
		News:        listing.Slice(news, win),
		CurrentPage: max(page, 1),
		TotalPages:  listing.TotalPages(len(news), win.Limit),
	}
}
