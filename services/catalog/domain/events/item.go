package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Topics published by the catalog context.
const (
	TopicItemCreated = "catalog.item.created"
	TopicItemUpdated = "catalog.item.updated"
	TopicItemDeleted = "catalog.item.deleted"
)

// Version is the current schema version of every catalog event payload.
const Version = 1

// ItemCreatedEvent is published after a new listing is persisted.
type ItemCreatedEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Version    int             `json:"version"`
	ItemID     uuid.UUID       `json:"item_id"`
	SellerID   uuid.UUID       `json:"seller_id"`
	CategoryID uuid.UUID       `json:"category_id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ItemUpdatedEvent is published when listing fields or its image set change.
type ItemUpdatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after a listing and its images are removed.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	SellerID   uuid.UUID `json:"seller_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ItemCreatedEvent) EventMeta() (uuid.UUID, int) { return e.EventID, e.Version }
func (e ItemUpdatedEvent) EventMeta() (uuid.UUID, int) { return e.EventID, e.Version }
func (e ItemDeletedEvent) EventMeta() (uuid.UUID, int) { return e.EventID, e.Version }
