package services

import (
	"github.com/bookmountain/adelaide-uni-market-place/pkg/app"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the catalog context.
type Services struct {
	Item  *ItemService
	Image *ImageService
}

// New wires the catalog services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewCatalogRepository(a.Db, a.EventBus)

	var listingCache ListingCache
	if a.Redis != nil {
		listingCache = cache.NewListingCache(a.Redis)
	}

	return &Services{
		Item:  NewItemService(repo, listingCache, a.Storage, a.Metrics, a.Logger),
		Image: NewImageService(repo, a.Storage, listingCache, a.Metrics, a.Logger),
	}
}
