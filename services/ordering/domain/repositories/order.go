package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/models"
)

// OrderRepository is the persistence interface for orders.
type OrderRepository interface {
	// ListOrders returns the buyer's orders, newest first, with their lines.
	ListOrders(ctx context.Context, buyerID uuid.UUID) ([]*models.Order, error)

	// GetOrder returns ErrOrderNotFound when the order is absent or belongs
	// to another buyer.
	GetOrder(ctx context.Context, orderID, buyerID uuid.UUID) (*models.Order, error)

	// InTx runs fn in a single database transaction. fn's error rolls back.
	InTx(ctx context.Context, fn func(OrderTx) error) error
}

// OrderTx is the transaction-scoped view used to place an order.
type OrderTx interface {
	// LockListing reads the item row FOR UPDATE so concurrent buyers of the
	// same item serialize. Returns ErrItemNotFound when absent.
	LockListing(ctx context.Context, itemID uuid.UUID) (*models.ListingSnapshot, error)

	// SaveListingStatus writes listing.Status back to the item row.
	SaveListingStatus(ctx context.Context, listing *models.ListingSnapshot, at time.Time) error

	// InsertOrder writes the order and its lines.
	InsertOrder(ctx context.Context, order *models.Order) error

	Publish(ctx context.Context, topic string, e pkgevents.Event) error
}
