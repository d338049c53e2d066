// Package services holds the ordering rules. They operate on values the
// caller loaded inside its transaction.
package services

import (
	"time"

	"github.com/google/uuid"

	orderingdomain "github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/models"
)

// OrderInput is what a buyer supplies when placing an order.
type OrderInput struct {
	ItemID             uuid.UUID
	MeetingLocation    string
	MeetingScheduledAt *time.Time
}

// ReserveListing marks listing Sold for buyerID. A listing that is not
// Active fails ErrItemNotAvailable; buying your own listing fails
// ErrSelfPurchase. On error the listing is left unchanged.
func ReserveListing(listing *models.ListingSnapshot, buyerID uuid.UUID) error {
	if listing.Status != models.ListingActive {
		return orderingdomain.ErrItemNotAvailable
	}
	if listing.SellerID == buyerID {
		return orderingdomain.ErrSelfPurchase
	}
	listing.Status = models.ListingSold
	return nil
}

// NewOrder builds a Pending in-person order for one unit of listing at its
// current price.
func NewOrder(buyerID uuid.UUID, listing models.ListingSnapshot, in OrderInput, now time.Time) *models.Order {
	var scheduled *time.Time
	if in.MeetingScheduledAt != nil {
		t := in.MeetingScheduledAt.UTC()
		scheduled = &t
	}
	return &models.Order{
		ID:                 uuid.New(),
		BuyerID:            buyerID,
		Total:              listing.Price,
		Status:             models.OrderPending,
		DeliveryMethod:     models.DeliveryInPerson,
		PaymentProvider:    models.PaymentNone,
		MeetingLocation:    in.MeetingLocation,
		MeetingScheduledAt: scheduled,
		CreatedAt:          now.UTC(),
		Lines: []models.OrderLine{{
			ItemID:    listing.ID,
			ItemTitle: listing.Title,
			Price:     listing.Price,
			Quantity:  1,
		}},
	}
}
