package main

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	catalogsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
	catalogdomain "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain"
	catalogevents "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
	identityevents "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/events"
	orderingevents "github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/events"
)

// listingReader loads a listing with its images. *postgres.CatalogRepository
// satisfies it.
type listingReader interface {
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

type listingStore interface {
	Generation(ctx context.Context, itemID uuid.UUID) (string, error)
	Fill(ctx context.Context, l *cache.CachedListing, gen string) (bool, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

// subscribers holds the worker's event handlers. Every handler is
// idempotent: the bus redelivers on error.
type subscribers struct {
	listings listingReader
	cache    listingStore
	log      logger.Logger
}

// routes maps each subscribed topic to its handler.
func (s *subscribers) routes() map[string]events.Handler {
	return map[string]events.Handler{
		catalogevents.TopicItemCreated:     s.rewarmListing,
		catalogevents.TopicItemUpdated:     s.rewarmListing,
		catalogevents.TopicItemDeleted:     s.evictDeletedListing,
		orderingevents.TopicOrderCreated:   s.markListingSold,
		identityevents.TopicUserRegistered: s.auditRegistration,
	}
}

// rewarmListing reloads the listing named by an item.created or item.updated
// event and writes it to the cache.
func (s *subscribers) rewarmListing(ctx context.Context, msg *message.Message) error {
	var evt struct {
		ItemID uuid.UUID `json:"item_id"`
	}
	if err := events.Decode(msg, &evt); err != nil {
		return err
	}
	return s.warm(ctx, evt.ItemID)
}

// warm caches the committed row for itemID. A listing deleted in the
// meantime is evicted instead, and a fill that lost a race with a newer
// eviction is dropped. Only database errors are returned; cache writes are
// best-effort.
func (s *subscribers) warm(ctx context.Context, itemID uuid.UUID) error {
	gen, err := s.cache.Generation(ctx, itemID)
	if err != nil {
		s.log.WarnContext(ctx, "listing cache generation read failed", "item_id", itemID, "error", err)
		return nil
	}

	item, err := s.listings.GetItem(ctx, itemID)
	if errors.Is(err, catalogdomain.ErrItemNotFound) {
		s.evict(ctx, itemID)
		return nil
	}
	if err != nil {
		return err
	}

	written, err := s.cache.Fill(ctx, catalogsvcs.ToCache(item), gen)
	switch {
	case err != nil:
		s.log.WarnContext(ctx, "listing cache warm failed", "item_id", itemID, "error", err)
	case !written:
		s.log.InfoContext(ctx, "listing changed during warm, fill skipped", "item_id", itemID)
	default:
		s.log.InfoContext(ctx, "listing cache warmed", "item_id", itemID, "status", item.Status)
	}
	return nil
}

func (s *subscribers) evictDeletedListing(ctx context.Context, msg *message.Message) error {
	var evt catalogevents.ItemDeletedEvent
	if err := events.Decode(msg, &evt); err != nil {
		return err
	}
	s.evict(ctx, evt.ItemID)
	return nil
}

func (s *subscribers) markListingSold(ctx context.Context, msg *message.Message) error {
	var evt orderingevents.OrderCreatedEvent
	if err := events.Decode(msg, &evt); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "item sold",
		"order_id", evt.OrderID,
		"item_id", evt.ItemID,
		"buyer_id", evt.BuyerID,
		"seller_id", evt.SellerID,
		"total", evt.Total.StringFixed(2),
	)
	// Evict first so a stale Active entry is gone even if the reload fails,
	// then cache the committed Sold row.
	s.evict(ctx, evt.ItemID)
	return s.warm(ctx, evt.ItemID)
}

func (s *subscribers) auditRegistration(ctx context.Context, msg *message.Message) error {
	var evt identityevents.UserRegisteredEvent
	if err := events.Decode(msg, &evt); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "audit: user registered",
		"user_id", evt.UserID,
		"email", evt.Email,
		"department", evt.Department,
		"event_id", evt.EventID,
	)
	return nil
}

func (s *subscribers) evict(ctx context.Context, itemID uuid.UUID) {
	if err := s.cache.Delete(ctx, itemID); err != nil {
		s.log.WarnContext(ctx, "listing cache evict failed", "item_id", itemID, "error", err)
	}
}
