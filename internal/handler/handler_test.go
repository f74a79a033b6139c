package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/lib/healthcheck"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/deppfellow/storefront/internal/sqlerr"
	"github.com/deppfellow/storefront/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryNews struct {
	news []model.News
}

func (m *memoryNews) ListAll(context.Context) ([]model.News, error) {
	return m.news, nil
}

func (m *memoryNews) ListByCategory(_ context.Context, categoryID int) ([]model.News, error) {
	var out []model.News
	for _, n := range m.news {
		if n.CategoryID == categoryID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memoryNews) GetByID(_ context.Context, id int) (*model.News, error) {
	for _, n := range m.news {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, sqlerr.WrapNoRows("news", sql.ErrNoRows)
}

type memoryComments struct {
	mu       sync.Mutex
	comments []model.Comment
}

func (m *memoryComments) CreateIfAbsent(_ context.Context, c model.Comment) (*model.Comment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.comments {
		if existing.UserID == c.UserID && existing.CourseID == c.CourseID && existing.CommentDate.Equal(c.CommentDate) {
			return nil, false, nil
		}
	}
	c.ID = len(m.comments) + 1
	m.comments = append(m.comments, c)
	return &c, true, nil
}

func (m *memoryComments) ListByCourse(_ context.Context, courseID int) ([]model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Comment
	for _, c := range m.comments {
		if c.CourseID == courseID {
			out = append(out, c)
		}
	}
	return out, nil
}

type testApp struct {
	echo     *echo.Echo
	server   *server.Server
	comments *memoryComments
}

func newTestApp(t *testing.T, checks ...healthcheck.Check) *testApp {
	t.Helper()

	logger := zerolog.Nop()
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "openapi.html"), []byte("<html>docs</html>"), 0o600))

	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}, StaticDir: staticDir},
		Listing:       config.DefaultListingConfig(),
		Observability: config.DefaultObservabilityConfig(),
	}
	s := &server.Server{
		Config:  cfg,
		Logger:  &logger,
		Metrics: metrics.NewCollector(cfg.Observability.Metrics, nil),
		Health:  healthcheck.New(checks, healthcheck.Options{Timeout: time.Second}),
	}

	db := testutil.NewCatalogDB(t)
	testutil.SeedProducts(t, db, testutil.FixtureProducts(30))
	testutil.SeedLookups(t, db, "colors", []model.Lookup{{ID: 2, Name: "blue"}, {ID: 1, Name: "red"}})

	news := &memoryNews{news: []model.News{
		{ID: 1, CategoryID: 1, Title: "a"},
		{ID: 2, CategoryID: 1, Title: "b"},
		{ID: 3, CategoryID: 2, Title: "c"},
	}}
	comments := &memoryComments{}

	services := &service.Services{
		Products: service.NewProductService(repository.NewProductRepository(db), cfg.Listing, 0, s.Metrics),
		News:     service.NewNewsService(news, cfg.Listing.NewsCategoryIDs),
		Comments: service.NewCommentService(comments, nil, &logger),
		Lookups:  service.NewLookupService(repository.NewLookupRepository(db), nil, 0, s.Metrics, &logger),
	}
	h := NewHandlers(s, services)

	e := echo.New()
	mw := middleware.NewMiddlewares(s)
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(mw.ContextEnhancer.EnhanceContext())

	e.GET("/status", h.Health.CheckHealth)
	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	v1 := e.Group("/api/v1")
	v1.GET("/products/qs", h.Products.Search())
	v1.GET("/products/colors", h.Lookups.List(repository.LookupColors))
	v1.GET("/products/:id", h.Products.Get())
	v1.GET("/news", h.News.List())
	v1.GET("/news/category/:cid", h.News.ListByCategory())
	v1.GET("/news/:nid", h.News.Get())
	v1.POST("/comments", h.Comments.Create())
	v1.GET("/courses/:course_id/comments", h.Comments.ListByCourse())

	return &testApp{echo: e, server: s, comments: comments}
}

func (a *testApp) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func productIDs(rows []model.Product) []int {
	out := make([]int, len(rows))
	for i, p := range rows {
		out[i] = p.ID
	}
	return out
}

func fieldNames(e errs.HTTPError) []string {
	var out []string
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func TestSearchProducts(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/products/qs?cat_ids=1&perpage=3", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	page := decode[model.PageResult[model.Product]](t, rec)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.PerPage)
	assert.Equal(t, []int{4, 8, 12}, productIDs(page.Data))
}

func TestSearchProductsSortAndPage(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/products/qs?cat_ids=1&orderby=id,desc&page=2&perpage=3", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	page := decode[model.PageResult[model.Product]](t, rec)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, []int{16, 12, 8}, productIDs(page.Data))
}

func TestSearchProductsEmptyPageHasEmptyData(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/products/qs?page=99", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestHugePageIsAnEmptyPage(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/products/qs?page=9223372036854775807&perpage=2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	products := decode[model.PageResult[model.Product]](t, rec)
	assert.Equal(t, 30, products.Total)
	assert.Empty(t, products.Data)

	rec = app.do(http.MethodGet, "/api/v1/news?page=9223372036854775807&perpage=2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	news := decode[model.NewsPage](t, rec)
	assert.Empty(t, news.News)
	assert.Equal(t, 2, news.TotalPages)
}

func TestSearchProductsRejectsMalformedParameters(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/products/qs?cat_ids=1,x&orderby=name,sideways&page=0", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.ElementsMatch(t, []string{"cat_ids", "orderby", "page"}, fieldNames(body))
}

func TestSearchProductsConcurrentRequestsDoNotShareState(t *testing.T) {
	app := newTestApp(t)

	var wg sync.WaitGroup
	results := make([][]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := "/api/v1/products/qs?perpage=1&page=" + string(rune('1'+i))
			rec := app.do(http.MethodGet, target, "")
			var page model.PageResult[model.Product]
			if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page)) {
				results[i] = productIDs(page.Data)
			}
		}(i)
	}
	wg.Wait()

	for i, ids := range results {
		assert.Equal(t, []int{i + 1}, ids)
	}
}

func TestGetProduct(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/products/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[model.Product](t, rec).ID)

	rec = app.do(http.MethodGet, "/api/v1/products/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLookups(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/products/colors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []model.Lookup{{ID: 1, Name: "red"}, {ID: 2, Name: "blue"}}, decode[[]model.Lookup](t, rec))
}

func TestNewsEndpoints(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "list", target: "/api/v1/news?perpage=2", status: http.StatusOK},
		{name: "list bad perpage", target: "/api/v1/news?perpage=101", status: http.StatusBadRequest},
		{name: "category", target: "/api/v1/news/category/1", status: http.StatusOK},
		{name: "unknown category", target: "/api/v1/news/category/9", status: http.StatusNotFound},
		{name: "empty category", target: "/api/v1/news/category/3", status: http.StatusNotFound},
		{name: "non-numeric category", target: "/api/v1/news/category/x", status: http.StatusBadRequest},
		{name: "item", target: "/api/v1/news/3", status: http.StatusOK},
		{name: "missing item", target: "/api/v1/news/42", status: http.StatusNotFound},
		{name: "non-numeric item", target: "/api/v1/news/abc", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestNewsListPayload(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/news?page=2&perpage=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[model.NewsPage](t, rec)
	assert.Equal(t, "success", page.Message)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.News, 1)
	assert.Equal(t, 3, page.News[0].ID)
}

func TestCreateComment(t *testing.T) {
	app := newTestApp(t)
	body := `{"user_id":1,"course_id":7,"content":"great course","rating":5,"comment_date":"2024-03-01"}`

	rec := app.do(http.MethodPost, "/api/v1/comments", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[model.Comment](t, rec)
	assert.Equal(t, 1, created.ID)
	assert.True(t, created.CommentDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	rec = app.do(http.MethodPost, "/api/v1/comments", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "COMMENT_ALREADY_EXISTS", decode[errs.HTTPError](t, rec).Code)

	rec = app.do(http.MethodGet, "/api/v1/courses/7/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Comment](t, rec), 1)
}

func TestCreateCommentValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/comments", `{"user_id":1,"course_id":7,"rating":9,"comment_date":"01/03/2024"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.ElementsMatch(t, []string{"content", "rating", "comment_date"}, fieldNames(body))
	assert.Empty(t, app.comments.comments)
}

func TestListCourseCommentsEmpty(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/courses/3/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCheckHealth(t *testing.T) {
	down := func(context.Context) error { return context.DeadlineExceeded }
	up := func(context.Context) error { return nil }

	t.Run("healthy", func(t *testing.T) {
		app := newTestApp(t, healthcheck.Check{Name: "database", Required: true, Probe: up})
		rec := app.do(http.MethodGet, "/status", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"environment":"test"`)
	})

	t.Run("optional dependency down", func(t *testing.T) {
		app := newTestApp(t,
			healthcheck.Check{Name: "database", Required: true, Probe: up},
			healthcheck.Check{Name: "redis", Probe: down},
		)
		rec := app.do(http.MethodGet, "/status", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("required dependency down", func(t *testing.T) {
		app := newTestApp(t, healthcheck.Check{Name: "database", Required: true, Probe: down})
		rec := app.do(http.MethodGet, "/status", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	})
}

func TestServeOpenAPIUI(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "docs")
}

func TestNewRequestCopiesPrototype(t *testing.T) {
	called := 0
	proto := &SearchProductsRequest{Keyword: "x", rejected: func() { called++ }}

	clone := newRequest(proto)
	require.NotSame(t, proto, clone)
	assert.Equal(t, "x", clone.Keyword)

	clone.Keyword = "y"
	clone.rejected()
	assert.Equal(t, "x", proto.Keyword)
	assert.Equal(t, 1, called)
}
