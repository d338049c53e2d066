package services

import (
	"github.com/bookmountain/adelaide-uni-market-place/pkg/app"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the ordering context.
type Services struct {
	Order *OrderService
}

// New wires the ordering services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewOrderRepository(a.Db, a.EventBus)

	var evictor ListingEvictor
	if a.Redis != nil {
		evictor = cache.NewListingCache(a.Redis)
	}

	return &Services{
		Order: NewOrderService(repo, evictor, a.Metrics, a.Logger),
	}
}
