// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance serving every route of the service.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Order matters: the request id and the transaction must exist before
	// the context logger is built from them.
	router.Use(
		mw.RateLimit.Limit(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		middleware.RequestID(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Metrics.Observe(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.CORS(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/api/v1")
	registerProductRoutes(v1, h)
	registerNewsRoutes(v1, h)
	registerCommentRoutes(v1, h)

	return router
}

func registerProductRoutes(g *echo.Group, h *handler.Handlers) {
	products := g.Group("/products")
	products.GET("/qs", h.Products.Search())
	products.GET("/categories", h.Lookups.List(repository.LookupCategories))
	products.GET("/colors", h.Lookups.List(repository.LookupColors))
	products.GET("/tags", h.Lookups.List(repository.LookupTags))
	products.GET("/sizes", h.Lookups.List(repository.LookupSizes))
	products.GET("/:id", h.Products.Get())
}

func registerNewsRoutes(g *echo.Group, h *handler.Handlers) {
	news := g.Group("/news")
	news.GET("", h.News.List())
	news.GET("/category/:cid", h.News.ListByCategory())
	news.GET("/:nid", h.News.Get())
}

func registerCommentRoutes(g *echo.Group, h *handler.Handlers) {
	g.POST("/comments", h.Comments.Create())
	g.GET("/courses/:course_id/comments", h.Comments.ListByCourse())
}
