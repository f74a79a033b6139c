package handler

import (
	"net/http"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
)

// ListLookupsRequest has no parameters.
type ListLookupsRequest struct{}

func (r *ListLookupsRequest) Validate() error {
	return nil
}

type LookupHandler struct {
	Handler
	lookups *service.LookupService
}

func NewLookupHandler(s *server.Server, lookups *service.LookupService) *LookupHandler {
	return &LookupHandler{Handler: NewHandler(s), lookups: lookups}
}

// List serves the entries of one lookup table.
func (h *LookupHandler) List(kind repository.LookupKind) echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *ListLookupsRequest) ([]model.Lookup, error) {
		entries, err := h.lookups.List(c.Request().Context(), kind)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []model.Lookup{}
		}
		return entries, nil
	}, http.StatusOK, &ListLookupsRequest{})
}
