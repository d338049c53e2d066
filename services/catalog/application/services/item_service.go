package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/telemetry"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/repositories"
	domainsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/services"
)

// ItemService manages the listing lifecycle. Writes run in one transaction
// each and publish through the outbox; single-item reads go through the
// Redis cache when one is configured.
type ItemService struct {
	repo    repositories.CatalogRepository
	cache   ListingCache
	store   ObjectStore
	metrics *telemetry.Marketplace
	log     logger.Logger
	now     func() time.Time
}

// NewItemService wires an ItemService. cache and metrics may be nil.
func NewItemService(repo repositories.CatalogRepository, listingCache ListingCache, store ObjectStore, metrics *telemetry.Marketplace, log logger.Logger) *ItemService {
	return &ItemService{
		repo:    repo,
		cache:   listingCache,
		store:   store,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// CreateItem lists a new Active item for sellerID.
func (s *ItemService) CreateItem(ctx context.Context, sellerID uuid.UUID, in domainsvcs.ListingInput) (*models.Item, error) {
	var item *models.Item
	err := s.repo.InTx(ctx, func(tx repositories.CatalogTx) error {
		category, err := tx.GetCategory(ctx, in.CategoryID)
		if err != nil {
			return err
		}

		item, err = domainsvcs.NewListing(sellerID, in, s.now())
		if err != nil {
			return err
		}
		item.CategoryName = category.Name

		if err := tx.InsertItem(ctx, item); err != nil {
			return err
		}
		return tx.Publish(ctx, events.TopicItemCreated, events.ItemCreatedEvent{
			EventID:    uuid.New(),
			Version:    events.Version,
			ItemID:     item.ID,
			SellerID:   item.SellerID,
			CategoryID: item.CategoryID,
			Title:      item.Title.String(),
			Price:      item.Price,
			OccurredAt: item.CreatedAt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.metrics.ItemCreated(ctx)
	s.log.InfoContext(ctx, "item created", "item_id", item.ID, "seller_id", sellerID)
	return item, nil
}

// UpdateItem overwrites the editable fields of an item owned by sellerID.
// A missing item and a foreign item both fail with ErrItemNotFound.
func (s *ItemService) UpdateItem(ctx context.Context, itemID, sellerID uuid.UUID, upd domainsvcs.ItemUpdate) (*models.Item, error) {
	var item *models.Item
	err := s.repo.InTx(ctx, func(tx repositories.CatalogTx) error {
		var err error
		item, err = tx.LockSellerItem(ctx, itemID, sellerID)
		if err != nil {
			return err
		}

		category, err := tx.GetCategory(ctx, upd.CategoryID)
		if err != nil {
			return err
		}
		if err := domainsvcs.ApplyItemUpdate(item, upd, s.now()); err != nil {
			return err
		}
		item.CategoryName = category.Name

		if err := tx.UpdateItem(ctx, item); err != nil {
			return err
		}
		if item.Images, err = tx.ListImages(ctx, item.ID); err != nil {
			return err
		}
		return tx.Publish(ctx, events.TopicItemUpdated, events.ItemUpdatedEvent{
			EventID:    uuid.New(),
			Version:    events.Version,
			ItemID:     item.ID,
			Status:     item.Status.String(),
			OccurredAt: *item.UpdatedAt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.evict(ctx, item.ID)
	s.log.InfoContext(ctx, "item updated", "item_id", item.ID, "status", item.Status)
	return item, nil
}

// DeleteItem removes an item owned by sellerID together with its images.
// Blobs are removed after commit; failures there are logged only.
func (s *ItemService) DeleteItem(ctx context.Context, itemID, sellerID uuid.UUID) error {
	var keys []string
	err := s.repo.InTx(ctx, func(tx repositories.CatalogTx) error {
		item, err := tx.LockSellerItem(ctx, itemID, sellerID)
		if err != nil {
			return err
		}
		images, err := tx.ListImages(ctx, item.ID)
		if err != nil {
			return err
		}
		for _, img := range images {
			if img.StorageKey != "" {
				keys = append(keys, img.StorageKey)
			}
		}
		if err := tx.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		return tx.Publish(ctx, events.TopicItemDeleted, events.ItemDeletedEvent{
			EventID:    uuid.New(),
			Version:    events.Version,
			ItemID:     item.ID,
			SellerID:   item.SellerID,
			OccurredAt: s.now().UTC(),
		})
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	for _, key := range keys {
		removeBlob(ctx, s.store, key, s.metrics, s.log)
	}
	s.evict(ctx, itemID)
	s.log.InfoContext(ctx, "item deleted", "item_id", itemID, "images", len(keys))
	return nil
}

// GetItem returns a listing with its images, reading through the cache:
//  1. Check Redis first.
//  2. On a miss (or cache error), note the listing's cache generation and
//     query Postgres.
//  3. Write the row back unless a writer evicted the listing meanwhile.
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	gen, fill := "", false
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCache(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "listing cache read failed", "item_id", id, "error", err)
		}
		if gen, err = s.cache.Generation(ctx, id); err != nil {
			s.log.WarnContext(ctx, "listing cache generation read failed", "item_id", id, "error", err)
		} else {
			fill = true
		}
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if fill {
		written, err := s.cache.Fill(ctx, ToCache(item), gen)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "listing cache write failed", "item_id", id, "error", err)
		case !written:
			s.log.DebugContext(ctx, "listing changed during read, cache fill skipped", "item_id", id)
		}
	}
	return item, nil
}

// ListItems returns a page of listings, newest first, plus the total count.
func (s *ItemService) ListItems(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	items, total, err := s.repo.ListItems(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return items, total, nil
}

// ListCategories returns every category ordered by name.
func (s *ItemService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *ItemService) evict(ctx context.Context, id uuid.UUID) {
	evictListing(ctx, s.cache, id, s.log)
}

func evictListing(ctx context.Context, c ListingCache, id uuid.UUID, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, id); err != nil {
		log.WarnContext(ctx, "listing cache evict failed", "item_id", id, "error", err)
	}
}

func removeBlob(ctx context.Context, store ObjectStore, key string, metrics *telemetry.Marketplace, log logger.Logger) {
	if err := store.Delete(ctx, key); err != nil {
		metrics.StorageCleanupFailed(ctx)
		log.WarnContext(ctx, "failed to delete image blob", "storage_key", key, "error", err)
	}
}

// ToCache converts a listing to its cached read model.
func ToCache(item *models.Item) *cache.CachedListing {
	images := make([]cache.CachedImage, len(item.Images))
	for i, img := range item.Images {
		images[i] = cache.CachedImage{ID: img.ID, URL: img.URL, SortOrder: img.SortOrder}
	}
	return &cache.CachedListing{
		ID:           item.ID,
		SellerID:     item.SellerID,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
		Title:        item.Title.String(),
		Description:  item.Description,
		Price:        item.Price,
		Status:       item.Status.String(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
		Images:       images,
	}
}

func fromCache(c *cache.CachedListing) *models.Item {
	images := make([]models.Image, len(c.Images))
	for i, img := range c.Images {
		images[i] = models.Image{ID: img.ID, ItemID: c.ID, URL: img.URL, SortOrder: img.SortOrder}
	}
	return &models.Item{
		ID:           c.ID,
		SellerID:     c.SellerID,
		CategoryID:   c.CategoryID,
		CategoryName: c.CategoryName,
		Title:        models.Title(c.Title),
		Description:  c.Description,
		Price:        c.Price,
		Status:       models.ItemStatus(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Images:       images,
	}
}
