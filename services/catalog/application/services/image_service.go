package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/apperr"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/telemetry"
	catalogdomain "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/repositories"
	domainsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/services"
)

// Upload is one image file to attach to a listing.
type Upload struct {
	Content     io.Reader
	Size        int64 // -1 when unknown
	FileName    string
	ContentType string
}

// ImageService manages the ordered image collection of a listing.
type ImageService struct {
	repo    repositories.CatalogRepository
	store   ObjectStore
	cache   ListingCache
	metrics *telemetry.Marketplace
	log     logger.Logger
	now     func() time.Time
}

// NewImageService wires an ImageService. cache and metrics may be nil.
func NewImageService(repo repositories.CatalogRepository, store ObjectStore, listingCache ListingCache, metrics *telemetry.Marketplace, log logger.Logger) *ImageService {
	return &ImageService{
		repo:    repo,
		store:   store,
		cache:   listingCache,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// UploadImage stores the file and appends it to the item's images with the
// next sort order. Checks run in this order: format, item existence, owner.
// Nothing is written to storage unless all three pass.
func (s *ImageService) UploadImage(ctx context.Context, itemID, sellerID uuid.UUID, up Upload) (*models.Image, error) {
	if !domainsvcs.IsSupportedImageType(up.ContentType) {
		return nil, catalogdomain.ErrUnsupportedFormat
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	if err := auth.Authorize(sellerID, item.SellerID); err != nil {
		return nil, err
	}

	key, url, err := s.store.Upload(ctx, "items/"+itemID.String(), up.Content, up.Size, up.FileName, up.ContentType)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "upload image", err)
	}

	img := &models.Image{
		ID:         uuid.New(),
		ItemID:     itemID,
		URL:        url,
		StorageKey: key,
	}
	err = s.repo.InTx(ctx, func(tx repositories.CatalogTx) error {
		locked, err := tx.LockItem(ctx, itemID)
		if err != nil {
			return err
		}
		existing, err := tx.ListImages(ctx, itemID)
		if err != nil {
			return err
		}
		img.SortOrder = domainsvcs.NextSortOrder(existing)
		if err := tx.InsertImage(ctx, img); err != nil {
			return err
		}
		return tx.Publish(ctx, events.TopicItemUpdated, events.ItemUpdatedEvent{
			EventID:    uuid.New(),
			Version:    events.Version,
			ItemID:     itemID,
			Status:     locked.Status.String(),
			OccurredAt: s.now().UTC(),
		})
	})
	if err != nil {
		removeBlob(ctx, s.store, key, s.metrics, s.log)
		return nil, fmt.Errorf("upload image: %w", err)
	}

	evictListing(ctx, s.cache, itemID, s.log)
	s.metrics.ImageUploaded(ctx)
	s.log.InfoContext(ctx, "image uploaded", "item_id", itemID, "image_id", img.ID, "sort_order", img.SortOrder)
	return img, nil
}

// DeleteImage removes one image and renumbers the rest 1..n in their
// existing order. The blob is deleted after commit when a storage key was
// recorded; that step is best-effort.
func (s *ImageService) DeleteImage(ctx context.Context, itemID, imageID, sellerID uuid.UUID) error {
	var storageKey string
	err := s.repo.InTx(ctx, func(tx repositories.CatalogTx) error {
		item, err := tx.LockItem(ctx, itemID)
		if errors.Is(err, catalogdomain.ErrItemNotFound) {
			return catalogdomain.ErrImageNotFound
		}
		if err != nil {
			return err
		}

		img, err := tx.GetImage(ctx, itemID, imageID)
		if err != nil {
			return err
		}
		if err := auth.Authorize(sellerID, item.SellerID); err != nil {
			return err
		}
		storageKey = img.StorageKey

		if err := tx.DeleteImage(ctx, img.ID); err != nil {
			return err
		}
		remaining, err := tx.ListImages(ctx, itemID)
		if err != nil {
			return err
		}
		if err := tx.SetImageSortOrders(ctx, domainsvcs.RenumberImages(remaining)); err != nil {
			return err
		}
		return tx.Publish(ctx, events.TopicItemUpdated, events.ItemUpdatedEvent{
			EventID:    uuid.New(),
			Version:    events.Version,
			ItemID:     itemID,
			Status:     item.Status.String(),
			OccurredAt: s.now().UTC(),
		})
	})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if storageKey != "" {
		removeBlob(ctx, s.store, storageKey, s.metrics, s.log)
	}
	evictListing(ctx, s.cache, itemID, s.log)
	s.metrics.ImageDeleted(ctx)
	s.log.InfoContext(ctx, "image deleted", "item_id", itemID, "image_id", imageID)
	return nil
}
