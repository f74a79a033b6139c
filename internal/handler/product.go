package handler

import (
	"errors"
	"net/http"

	"github.com/deppfellow/storefront/internal/listing"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/deppfellow/storefront/internal/validation"
	"github.com/labstack/echo/v4"
)

// SearchProductsRequest carries the listing query parameters as raw
// strings. Validate parses them into a FilterSpec so malformed values are
// reported per field instead of failing the bind.
type SearchProductsRequest struct {
	Keyword    string `query:"keyword"`
	CatIDs     string `query:"cat_ids"`
	Colors     string `query:"colors"`
	Tags       string `query:"tags"`
	Sizes      string `query:"sizes"`
	OrderBy    string `query:"orderby"`
	PriceRange string `query:"price_range"`
	Page       string `query:"page"`
	PerPage    string `query:"perpage"`

	opts     listing.Options
	rejected func()
	spec     listing.FilterSpec
}

func (r *SearchProductsRequest) Validate() error {
	spec, err := listing.Parse(listing.RawParams{
		Keyword:     r.Keyword,
		CategoryIDs: r.CatIDs,
		Colors:      r.Colors,
		Tags:        r.Tags,
		Sizes:       r.Sizes,
		OrderBy:     r.OrderBy,
		PriceRange:  r.PriceRange,
		Page:        r.Page,
		PerPage:     r.PerPage,
	}, r.opts)
	if err != nil {
		if r.rejected != nil {
			r.rejected()
		}
		var fieldErrs listing.ValidationErrors
		if errors.As(err, &fieldErrs) {
			out := make(validation.CustomValidationErrors, len(fieldErrs))
			for i, fe := range fieldErrs {
				out[i] = validation.CustomValidationError{Field: fe.Field, Message: fe.Message}
			}
			return out
		}
		return err
	}
	r.spec = spec
	return nil
}

type GetProductRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

func (r *GetProductRequest) Validate() error {
	return validation.Struct(r)
}

type ProductHandler struct {
	Handler
	products *service.ProductService
}

func NewProductHandler(s *server.Server, products *service.ProductService) *ProductHandler {
	return &ProductHandler{Handler: NewHandler(s), products: products}
}

// Search serves GET /products/qs.
func (h *ProductHandler) Search() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *SearchProductsRequest) (*model.PageResult[model.Product], error) {
		return h.products.Search(c.Request().Context(), req.spec)
	}, http.StatusOK, &SearchProductsRequest{
		opts:     h.products.ListingOptions(),
		rejected: h.products.RecordInvalid,
	})
}

// Get serves GET /products/:id.
func (h *ProductHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *GetProductRequest) (*model.Product, error) {
		return h.products.GetByID(c.Request().Context(), req.ID)
	}, http.StatusOK, &GetProductRequest{})
}
