package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
)

// ObjectStore is the blob storage used for listing images. *storage.Store
// satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, prefix string, r io.Reader, size int64, fileName, contentType string) (key, url string, err error)
	Delete(ctx context.Context, key string) error
}

// ListingCache is the read-through cache for single listings.
// *cache.ListingCache satisfies it. Get returns redis.Nil on a miss.
// Fill only writes when no Delete happened since Generation was read.
type ListingCache interface {
	Get(ctx context.Context, itemID uuid.UUID) (*cache.CachedListing, error)
	Generation(ctx context.Context, itemID uuid.UUID) (string, error)
	Fill(ctx context.Context, l *cache.CachedListing, gen string) (bool, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}
