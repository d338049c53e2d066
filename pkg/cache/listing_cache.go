package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// ListingCacheTTL is the time-to-live for cached listings.
	ListingCacheTTL = 24 * time.Hour

	listingCacheKeyPrefix = "listing"

	// generationTTL outlives any entry filled under the generation it guards.
	generationTTL = 2 * ListingCacheTTL
)

// fillScript writes the listing hash only while the generation still matches
// the one read before the database query.
// KEYS[1] listing hash, KEYS[2] generation counter.
// ARGV[1] expected generation, ARGV[2] TTL seconds, ARGV[3:] field/value pairs.
var fillScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], unpack(ARGV, 3))
redis.call('EXPIRE', KEYS[1], ARGV[2])
return 1
`)

// CachedListing is the denormalized read model for GET /api/items/{id}.
// Fields are stored as a Redis hash; images are a JSON array in one field.
type CachedListing struct {
	ID           uuid.UUID       `json:"id"`
	SellerID     uuid.UUID       `json:"seller_id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
	Images       []CachedImage   `json:"images"`
}

// CachedImage is one image of a cached listing, in display order.
type CachedImage struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	SortOrder int       `json:"sort_order"`
}

// ListingCache reads and writes listing entries.
// Key format: "listing:{itemID}"
type ListingCache struct {
	client *RedisClient
}

// NewListingCache creates a new ListingCache backed by the given RedisClient.
func NewListingCache(r *RedisClient) *ListingCache {
	return &ListingCache{client: r}
}

// Get retrieves a cached listing.
// Returns redis.Nil when the key does not exist or has expired.
func (c *ListingCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedListing, error) {
	vals, err := c.client.Client().HGetAll(ctx, listingKey(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeListing(vals)
}

// Generation returns the listing's eviction counter. Read it before loading
// the row that will be passed to Fill.
func (c *ListingCache) Generation(ctx context.Context, itemID uuid.UUID) (string, error) {
	gen, err := c.client.Client().Get(ctx, generationKey(itemID)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Fill caches l unless the listing was evicted since gen was read. It reports
// whether the entry was written.
func (c *ListingCache) Fill(ctx context.Context, l *CachedListing, gen string) (bool, error) {
	fields, err := encodeListing(l)
	if err != nil {
		return false, err
	}
	args := make([]any, 0, 2+2*len(fields))
	args = append(args, gen, int(ListingCacheTTL/time.Second))
	for k, v := range fields {
		args = append(args, k, v)
	}
	keys := []string{listingKey(l.ID), generationKey(l.ID)}
	written, err := fillScript.Run(ctx, c.client.Client(), keys, args...).Int()
	if err != nil {
		return false, fmt.Errorf("cache fill: %w", err)
	}
	return written == 1, nil
}

// Delete removes a cached listing and bumps its generation so in-flight
// fills that read the database earlier are discarded. Missing keys are not
// an error.
func (c *ListingCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	gen := generationKey(itemID)
	_, err := c.client.Client().TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, gen)
		p.Expire(ctx, gen, generationTTL)
		p.Del(ctx, listingKey(itemID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func listingKey(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", listingCacheKeyPrefix, itemID)
}

func generationKey(itemID uuid.UUID) string {
	return listingKey(itemID) + ":gen"
}

func encodeListing(l *CachedListing) (map[string]any, error) {
	images := l.Images
	if images == nil {
		images = []CachedImage{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("cache encode images: %w", err)
	}
	fields := map[string]any{
		"id":            l.ID.String(),
		"seller_id":     l.SellerID.String(),
		"category_id":   l.CategoryID.String(),
		"category_name": l.CategoryName,
		"title":         l.Title,
		"description":   l.Description,
		"price":         l.Price.StringFixed(2),
		"status":        l.Status,
		"created_at":    l.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":    "",
		"images":        string(imagesJSON),
	}
	if l.UpdatedAt != nil {
		fields["updated_at"] = l.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return fields, nil
}

func decodeListing(vals map[string]string) (*CachedListing, error) {
	var (
		l   CachedListing
		err error
	)
	if l.ID, err = uuid.Parse(vals["id"]); err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	if l.SellerID, err = uuid.Parse(vals["seller_id"]); err != nil {
		return nil, fmt.Errorf("cache parse seller_id: %w", err)
	}
	if l.CategoryID, err = uuid.Parse(vals["category_id"]); err != nil {
		return nil, fmt.Errorf("cache parse category_id: %w", err)
	}
	if l.Price, err = decimal.NewFromString(vals["price"]); err != nil {
		return nil, fmt.Errorf("cache parse price: %w", err)
	}
	if l.CreatedAt, err = time.Parse(time.RFC3339Nano, vals["created_at"]); err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	if raw := vals["updated_at"]; raw != "" {
		updated, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("cache parse updated_at: %w", err)
		}
		l.UpdatedAt = &updated
	}
	if err := json.Unmarshal([]byte(vals["images"]), &l.Images); err != nil {
		return nil, fmt.Errorf("cache parse images: %w", err)
	}
	l.CategoryName = vals["category_name"]
	l.Title = vals["title"]
	l.Description = vals["description"]
	l.Status = vals["status"]
	return &l, nil
}
