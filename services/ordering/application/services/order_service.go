package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/telemetry"
	orderingdomain "github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/repositories"
	domainsvcs "github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/services"
)

// ListingEvictor drops a cached listing. *cache.ListingCache satisfies it.
type ListingEvictor interface {
	Delete(ctx context.Context, itemID uuid.UUID) error
}

// OrderService places and reads orders.
type OrderService struct {
	repo    repositories.OrderRepository
	cache   ListingEvictor
	metrics *telemetry.Marketplace
	log     logger.Logger
	now     func() time.Time
}

// NewOrderService wires an OrderService. cache and metrics may be nil.
func NewOrderService(repo repositories.OrderRepository, listingCache ListingEvictor, metrics *telemetry.Marketplace, log logger.Logger) *OrderService {
	return &OrderService{
		repo:    repo,
		cache:   listingCache,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// CreateOrder buys one Active item for buyerID. The item row is locked for
// the whole transaction, so of two concurrent buyers exactly one succeeds
// and the other sees ErrItemNotAvailable. The order insert, the flip to Sold
// and the ordering.order.created event commit together.
func (s *OrderService) CreateOrder(ctx context.Context, buyerID uuid.UUID, in domainsvcs.OrderInput) (*models.Order, error) {
	var (
		order  *models.Order
		seller uuid.UUID
	)
	err := s.repo.InTx(ctx, func(tx repositories.OrderTx) error {
		listing, err := tx.LockListing(ctx, in.ItemID)
		if err != nil {
			return err
		}
		seller = listing.SellerID
		// Snapshot before ReserveListing flips the status.
		order = domainsvcs.NewOrder(buyerID, *listing, in, s.now())

		if err := domainsvcs.ReserveListing(listing, buyerID); err != nil {
			return err
		}
		if err := tx.SaveListingStatus(ctx, listing, order.CreatedAt); err != nil {
			return err
		}
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}
		return tx.Publish(ctx, events.TopicOrderCreated, events.OrderCreatedEvent{
			EventID:    uuid.New(),
			Version:    events.Version,
			OrderID:    order.ID,
			BuyerID:    buyerID,
			SellerID:   listing.SellerID,
			ItemID:     listing.ID,
			Total:      order.Total,
			OccurredAt: order.CreatedAt,
		})
	})
	if err != nil {
		if reason, ok := rejectReason(err); ok {
			s.metrics.OrderRejected(ctx, reason)
			s.log.InfoContext(ctx, "order rejected", "item_id", in.ItemID, "buyer_id", buyerID, "reason", reason)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, in.ItemID); err != nil {
			s.log.WarnContext(ctx, "listing cache evict failed", "item_id", in.ItemID, "error", err)
		}
	}
	s.metrics.OrderCreated(ctx)
	s.log.InfoContext(ctx, "order created", "order_id", order.ID, "item_id", in.ItemID, "buyer_id", buyerID, "seller_id", seller)
	return order, nil
}

// ListOrders returns the buyer's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, buyerID uuid.UUID) ([]*models.Order, error) {
	orders, err := s.repo.ListOrders(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one of the buyer's orders. Another buyer's order is
// reported as ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, orderID, buyerID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID, buyerID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func rejectReason(err error) (string, bool) {
	switch {
	case errors.Is(err, orderingdomain.ErrItemNotFound):
		return telemetry.RejectItemNotFound, true
	case errors.Is(err, orderingdomain.ErrItemNotAvailable):
		return telemetry.RejectItemNotAvailable, true
	case errors.Is(err, orderingdomain.ErrSelfPurchase):
		return telemetry.RejectSelfPurchase, true
	}
	return "", false
}
