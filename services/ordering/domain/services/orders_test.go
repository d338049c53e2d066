package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderingdomain "github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/models"
)

func activeListing(seller uuid.UUID) models.ListingSnapshot {
	return models.ListingSnapshot{
		ID:       uuid.New(),
		SellerID: seller,
		Title:    "Calculus II Textbook",
		Price:    decimal.RequireFromString("45.00"),
		Status:   models.ListingActive,
	}
}

func TestReserveListing(t *testing.T) {
	seller, buyer := uuid.New(), uuid.New()

	t.Run("active listing becomes sold", func(t *testing.T) {
		l := activeListing(seller)
		require.NoError(t, ReserveListing(&l, buyer))
		assert.Equal(t, models.ListingSold, l.Status)
	})

	for _, status := range []string{"Draft", "Sold", "Archived"} {
		t.Run(status+" is unavailable", func(t *testing.T) {
			l := activeListing(seller)
			l.Status = status
			assert.ErrorIs(t, ReserveListing(&l, buyer), orderingdomain.ErrItemNotAvailable)
			assert.Equal(t, status, l.Status)
		})
	}

	t.Run("seller cannot buy own listing", func(t *testing.T) {
		l := activeListing(seller)
		assert.ErrorIs(t, ReserveListing(&l, seller), orderingdomain.ErrSelfPurchase)
		assert.Equal(t, models.ListingActive, l.Status)
	})

	t.Run("availability is checked before ownership", func(t *testing.T) {
		l := activeListing(seller)
		l.Status = models.ListingSold
		assert.ErrorIs(t, ReserveListing(&l, seller), orderingdomain.ErrItemNotAvailable)
	})
}

func TestNewOrder(t *testing.T) {
	buyer := uuid.New()
	l := activeListing(uuid.New())
	now := time.Date(2025, 5, 2, 3, 0, 0, 0, time.FixedZone("ACST", 34200))
	meet := now.Add(48 * time.Hour)

	o := NewOrder(buyer, l, OrderInput{ItemID: l.ID, MeetingLocation: "Barr Smith Library", MeetingScheduledAt: &meet}, now)

	assert.Equal(t, buyer, o.BuyerID)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, models.DeliveryInPerson, o.DeliveryMethod)
	assert.Equal(t, models.PaymentNone, o.PaymentProvider)
	assert.Empty(t, o.PaymentReference)
	assert.True(t, l.Price.Equal(o.Total))
	assert.Equal(t, time.UTC, o.CreatedAt.Location())
	require.NotNil(t, o.MeetingScheduledAt)
	assert.True(t, meet.Equal(*o.MeetingScheduledAt))
	require.Len(t, o.Lines, 1)
	assert.Equal(t, l.ID, o.Lines[0].ItemID)
	assert.Equal(t, 1, o.Lines[0].Quantity)
	assert.True(t, l.Price.Equal(o.Lines[0].Price))
}

func TestNewOrder_NoMeetingTime(t *testing.T) {
	l := activeListing(uuid.New())
	o := NewOrder(uuid.New(), l, OrderInput{ItemID: l.ID, MeetingLocation: "Hub Central"}, time.Now())
	assert.Nil(t, o.MeetingScheduledAt)
}
