// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data. Each service declares the narrow store interface
// it needs, so tests can run it against fakes.
package service

import (
	"github.com/deppfellow/storefront/internal/lib/cache"
	"github.com/deppfellow/storefront/internal/lib/job"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
)

type Services struct {
	Products *ProductService
	News     *NewsService
	Comments *CommentService
	Lookups  *LookupService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	listingCfg := s.Config.Listing
	logger := s.Logger

	return &Services{
		Products: NewProductService(repos.Products, listingCfg, s.Config.Observability.Logging.SlowQueryThreshold, s.Metrics),
		News:     NewNewsService(repos.News, listingCfg.NewsCategoryIDs),
		Comments: NewCommentService(repos.Comments, s.Job, logger),
		Lookups:  NewLookupService(repos.Lookups, cache.New(s.Redis), listingCfg.LookupCacheTTL, s.Metrics, logger),
		Job:      s.Job,
	}, nil
}
