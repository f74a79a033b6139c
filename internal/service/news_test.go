package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNewsStore struct {
	news []model.News
	err  error

	requestedCategory int
}

func (f *fakeNewsStore) ListAll(context.Context) ([]model.News, error) {
	return f.news, f.err
}

func (f *fakeNewsStore) ListByCategory(_ context.Context, categoryID int) ([]model.News, error) {
	f.requestedCategory = categoryID
	var out []model.News
	for _, n := range f.news {
		if n.CategoryID == categoryID {
			out = append(out, n)
		}
	}
	return out, f.err
}

func (f *fakeNewsStore) GetByID(_ context.Context, id int) (*model.News, error) {
	for _, n := range f.news {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, errors.New("not found")
}

func newsFixture(n int, categoryID int) []model.News {
	news := make([]model.News, n)
	for i := range news {
		news[i] = model.News{ID: i + 1, CategoryID: categoryID}
	}
	return news
}

func TestNewsList(t *testing.T) {
	svc := NewNewsService(&fakeNewsStore{news: newsFixture(12, 10)}, []int{10, 20, 30})

	tests := []struct {
		name       string
		page       int
		perPage    int
		ids        []int
		totalPages int
	}{
		{name: "first page", page: 1, perPage: 5, ids: []int{1, 2, 3, 4, 5}, totalPages: 3},
		{name: "last partial page", page: 3, perPage: 5, ids: []int{11, 12}, totalPages: 3},
		{name: "past the end", page: 4, perPage: 5, ids: []int{}, totalPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(context.Background(), tt.page, tt.perPage)
			require.NoError(t, err)

			ids := make([]int, len(page.News))
			for i, n := range page.News {
				ids[i] = n.ID
			}
			assert.Equal(t, tt.ids, ids)
			assert.Equal(t, tt.page, page.CurrentPage)
			assert.Equal(t, tt.totalPages, page.TotalPages)
			assert.Equal(t, http.StatusOK, page.Code)
			assert.Equal(t, "success", page.Message)
		})
	}
}

func TestNewsListByCategory(t *testing.T) {
	store := &fakeNewsStore{news: append(newsFixture(3, 20), model.News{ID: 9, CategoryID: 30})}
	svc := NewNewsService(store, []int{10, 20, 30})

	page, err := svc.ListByCategory(context.Background(), 2, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, store.requestedCategory)
	assert.Len(t, page.News, 3)
	assert.Equal(t, 1, page.TotalPages)
}

func TestNewsListByCategoryNotFound(t *testing.T) {
	svc := NewNewsService(&fakeNewsStore{news: newsFixture(3, 20)}, []int{10, 20, 30})

	for _, category := range []int{0, 4, 1} {
		_, err := svc.ListByCategory(context.Background(), category, 1, 10)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr, "category %d", category)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	}
}

func TestNewsListStoreError(t *testing.T) {
	boom := errors.New("timeout")
	svc := NewNewsService(&fakeNewsStore{err: boom}, []int{1})

	_, err := svc.List(context.Background(), 1, 10)
	assert.ErrorIs(t, err, boom)
}
