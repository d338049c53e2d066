package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TopicOrderCreated = "ordering.order.created"

// Version is the current schema version of ordering event payloads.
const Version = 1

// OrderCreatedEvent is published in the same transaction that places an
// order and marks its item Sold.
type OrderCreatedEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Version    int             `json:"version"`
	OrderID    uuid.UUID       `json:"order_id"`
	BuyerID    uuid.UUID       `json:"buyer_id"`
	SellerID   uuid.UUID       `json:"seller_id"`
	ItemID     uuid.UUID       `json:"item_id"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e OrderCreatedEvent) EventMeta() (uuid.UUID, int) { return e.EventID, e.Version }
