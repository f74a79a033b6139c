package handler

import (
	"net/http"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/deppfellow/storefront/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewsPageQuery is the in-memory page window shared by the news listings.
type NewsPageQuery struct {
	Page    int `query:"page" validate:"omitempty,min=1"`
	PerPage int `query:"perpage" validate:"omitempty,min=1,max=100"`
}

func (q NewsPageQuery) window(defaultPerPage int) (int, int) {
	page, perPage := q.Page, q.PerPage
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = defaultPerPage
	}
	return page, perPage
}

type ListNewsRequest struct {
	NewsPageQuery
}

func (r *ListNewsRequest) Validate() error {
	return validation.Struct(r)
}

// NewsByCategoryRequest takes the public category number. Unknown numbers
// are a not-found rather than a validation error.
type NewsByCategoryRequest struct {
	NewsPageQuery
	CategoryID int `param:"cid"`
}

func (r *NewsByCategoryRequest) Validate() error {
	return validation.Struct(r)
}

type GetNewsRequest struct {
	ID int `param:"nid" validate:"required,min=1"`
}

func (r *GetNewsRequest) Validate() error {
	return validation.Struct(r)
}

type NewsHandler struct {
	Handler
	news *service.NewsService
}

func NewNewsHandler(s *server.Server, news *service.NewsService) *NewsHandler {
	return &NewsHandler{Handler: NewHandler(s), news: news}
}

func (h *NewsHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *ListNewsRequest) (*model.NewsPage, error) {
		page, perPage := req.window(h.server.Config.Listing.DefaultPerPage)
		return h.news.List(c.Request().Context(), page, perPage)
	}, http.StatusOK, &ListNewsRequest{})
}

func (h *NewsHandler) ListByCategory() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *NewsByCategoryRequest) (*model.NewsPage, error) {
		page, perPage := req.window(h.server.Config.Listing.DefaultPerPage)
		return h.news.ListByCategory(c.Request().Context(), req.CategoryID, page, perPage)
	}, http.StatusOK, &NewsByCategoryRequest{})
}

func (h *NewsHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *GetNewsRequest) (*model.News, error) {
		return h.news.GetByID(c.Request().Context(), req.ID)
	}, http.StatusOK, &GetNewsRequest{})
}
