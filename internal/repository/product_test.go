package repository

import (
	"cmp"
	"context"
	"database/sql"
	"slices"
	"testing"

	"github.com/deppfellow/storefront/internal/listing"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductRepo(t *testing.T, n int) (*ProductRepository, []model.Product) {
	t.Helper()
	db := testutil.NewCatalogDB(t)
	products := testutil.FixtureProducts(n)
	testutil.SeedProducts(t, db, products)
	return NewProductRepository(db), products
}

// search runs the same steps as the product service: parse, build, count, find.
func search(t *testing.T, repo *ProductRepository, raw listing.RawParams) (int, []model.Product) {
	t.Helper()
	opts := listing.DefaultOptions()

	spec, err := listing.Parse(raw, opts)
	require.NoError(t, err)
	pred := listing.NewBuilder(opts.PriceFloor, opts.PriceCeiling).Build(spec)

	ctx := context.Background()
	total, err := repo.Count(ctx, pred)
	require.NoError(t, err)
	rows, err := repo.Find(ctx, pred, spec.Sort, listing.NewWindow(spec.Page, spec.PerPage))
	require.NoError(t, err)
	return total, rows
}

func ids(products []model.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestProductSearchEndToEnd(t *testing.T) {
	repo, products := newProductRepo(t, 60)

	var expected []model.Product
	for _, p := range products {
		if (p.CategoryID == 1 || p.CategoryID == 2) && testutil.ContainsID(p.Color, 3) {
			expected = append(expected, p)
		}
	}
	slices.SortFunc(expected, func(a, b model.Product) int {
		if c := cmp.Compare(b.Price, a.Price); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	require.Greater(t, len(expected), 10, "fixture must fill two pages")

	total, rows := search(t, repo, listing.RawParams{
		CategoryIDs: "1,2",
		Colors:      "3",
		OrderBy:     "price,desc",
		Page:        "2",
		PerPage:     "5",
	})

	assert.Equal(t, len(expected), total)
	assert.Equal(t, ids(expected[5:10]), ids(rows))
}

func TestProductSearchNoFilters(t *testing.T) {
	repo, products := newProductRepo(t, 25)

	total, rows := search(t, repo, listing.RawParams{})

	assert.Equal(t, len(products), total)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(rows))
}

func TestProductSearchPageBeyondEnd(t *testing.T) {
	repo, products := newProductRepo(t, 12)

	total, rows := search(t, repo, listing.RawParams{Page: "4", PerPage: "5"})

	assert.Equal(t, len(products), total)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

func TestProductSearchSetFiltersMatchAnyID(t *testing.T) {
	repo, products := newProductRepo(t, 40)

	var expected []int
	for _, p := range products {
		if testutil.ContainsID(p.Size, 1) || testutil.ContainsID(p.Size, 6) {
			expected = append(expected, p.ID)
		}
	}

	total, rows := search(t, repo, listing.RawParams{Sizes: "6,1", PerPage: "100"})

	assert.Equal(t, len(expected), total)
	assert.Equal(t, expected, ids(rows))
}

func TestProductSearchPriceRange(t *testing.T) {
	repo, products := newProductRepo(t, 40)

	t.Run("in range filters", func(t *testing.T) {
		var expected []int
		for _, p := range products {
			if p.Price >= 3000 && p.Price <= 6000 {
				expected = append(expected, p.ID)
			}
		}

		total, rows := search(t, repo, listing.RawParams{PriceRange: "3000,6000", PerPage: "100"})

		assert.Equal(t, len(expected), total)
		assert.Equal(t, expected, ids(rows))
	})

	t.Run("out of range is dropped", func(t *testing.T) {
		total, _ := search(t, repo, listing.RawParams{PriceRange: "100,6000", PerPage: "100"})
		assert.Equal(t, len(products), total)
	})
}

func TestProductSearchKeywordIsLiteral(t *testing.T) {
	repo, _ := newProductRepo(t, 10)

	tests := []struct {
		name     string
		keyword  string
		expected []int
	}{
		{name: "percent", keyword: "100%", expected: []int{1}},
		{name: "underscore", keyword: "n_t", expected: []int{1}},
		{name: "quote", keyword: "' OR '1'='1", expected: []int{}},
		{name: "plain", keyword: "Product 1", expected: []int{10}},
		{name: "lower case", keyword: "cotton", expected: []int{1, 2}},
		{name: "upper case", keyword: "COTTON TEE", expected: []int{2}},
		{name: "mixed case", keyword: "pRoDuCt 03", expected: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, rows := search(t, repo, listing.RawParams{Keyword: tt.keyword})
			assert.Equal(t, len(tt.expected), total)
			assert.Equal(t, tt.expected, ids(rows))
		})
	}
}

func TestProductGetByID(t *testing.T) {
	repo, products := newProductRepo(t, 5)
	ctx := context.Background()

	p, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, products[2], *p)

	_, err = repo.GetByID(ctx, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Contains(t, err.Error(), "table:products")
}
