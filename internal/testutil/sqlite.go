// Package testutil provides an in-memory SQLite catalog for tests that
// exercise the repositories' SQL without a PostgreSQL server.
package testutil

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"modernc.org/sqlite"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction("find_in_set", 2, findInSet)
}

// findInSet mirrors the find_in_set SQL function of the postgres migrations.
func findInSet(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	needle := fmt.Sprint(args[0])

	var haystack string
	switch v := args[1].(type) {
	case string:
		haystack = v
	case []byte:
		haystack = string(v)
	case nil:
		return int64(0), nil
	default:
		haystack = fmt.Sprint(v)
	}

	// Items are compared verbatim, like string_to_array in postgres.
	for _, item := range strings.Split(haystack, ",") {
		if item == needle {
			return int64(1), nil
		}
	}
	return int64(0), nil
}

const catalogSchema = `
CREATE TABLE categories (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE colors (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE tags (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE sizes (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE products (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    cat_id      INTEGER NOT NULL,
    price       INTEGER NOT NULL,
    color       TEXT NOT NULL DEFAULT '',
    tag         TEXT NOT NULL DEFAULT '',
    size        TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT ''
);
`

// NewCatalogDB opens a fresh in-memory database with the catalog schema.
// It is closed when t finishes.
func NewCatalogDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(catalogSchema)
	require.NoError(t, err)
	return db
}

// SeedProducts inserts products as given.
func SeedProducts(t *testing.T, db *sqlx.DB, products []model.Product) {
	t.Helper()

	for _, p := range products {
		_, err := db.NamedExec(`INSERT INTO products (id, name, cat_id, price, color, tag, size, image, description)
			VALUES (:id, :name, :cat_id, :price, :color, :tag, :size, :image, :description)`, p)
		require.NoError(t, err)
	}
}

// SeedLookups inserts entries into the lookup table named table.
func SeedLookups(t *testing.T, db *sqlx.DB, table string, entries []model.Lookup) {
	t.Helper()

	for _, e := range entries {
		_, err := db.Exec("INSERT INTO "+table+" (id, name) VALUES (?, ?)", e.ID, e.Name)
		require.NoError(t, err)
	}
}

// FixtureProducts returns a deterministic catalog of n products spread over
// four categories with overlapping packed color, tag and size sets.
func FixtureProducts(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		id := i + 1
		products[i] = model.Product{
			ID:         id,
			Name:       fmt.Sprintf("Product %02d", id),
			CategoryID: id%4 + 1,
			Price:      1000 + (id*733)%9500,
			Color:      packIDs(id%5+1, id%3+1),
			Tag:        packIDs(id%6 + 1),
			Size:       packIDs(id%2+1, id%4+3),
		}
	}
	products[0].Name = "100% cotton_tee"
	products[1].Name = "Cotton tee"
	return products
}

// ContainsID reports whether the packed column value packed holds id.
func ContainsID(packed string, id int) bool {
	for _, item := range strings.Split(packed, ",") {
		if item == strconv.Itoa(id) {
			return true
		}
	}
	return false
}

func packIDs(ids ...int) string {
	seen := map[int]bool{}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
