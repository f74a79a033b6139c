package handler

import (
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Products *ProductHandler
	Lookups  *LookupHandler
	News     *NewsHandler
	Comments *CommentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Products: NewProductHandler(s, services.Products),
		Lookups:  NewLookupHandler(s, services.Lookups),
		News:     NewNewsHandler(s, services.News),
		Comments: NewCommentHandler(s, services.Comments),
	}
}
