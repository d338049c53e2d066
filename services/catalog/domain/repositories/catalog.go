package repositories

import (
	"context"

	"github.com/google/uuid"

	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// CatalogRepository is the persistence interface for listings, images and
// categories. The domain layer owns this interface; infrastructure implements it.
type CatalogRepository interface {
	// GetItem returns the item with its category name and images ordered by
	// sort order. Returns ErrItemNotFound when absent.
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// ListItems returns a page of items, newest first, and the total count.
	ListItems(ctx context.Context, opts QueryOpts) ([]*models.Item, int, error)

	ListCategories(ctx context.Context) ([]models.Category, error)

	// InTx runs fn in a single database transaction. fn's error rolls back.
	InTx(ctx context.Context, fn func(CatalogTx) error) error
}

// CatalogTx is the transaction-scoped view of the catalog store.
type CatalogTx interface {
	// GetCategory returns ErrCategoryNotFound when id does not resolve.
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)

	// LockItem loads an item row FOR UPDATE. Returns ErrItemNotFound when absent.
	LockItem(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// LockSellerItem loads an item row FOR UPDATE matching both id and seller.
	// A foreign item is indistinguishable from a missing one: ErrItemNotFound.
	LockSellerItem(ctx context.Context, id, sellerID uuid.UUID) (*models.Item, error)

	InsertItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// GetImage returns the image matching both ids, or ErrImageNotFound.
	GetImage(ctx context.Context, itemID, imageID uuid.UUID) (*models.Image, error)

	// ListImages returns the item's images ordered by sort order.
	ListImages(ctx context.Context, itemID uuid.UUID) ([]models.Image, error)

	InsertImage(ctx context.Context, img *models.Image) error
	DeleteImage(ctx context.Context, imageID uuid.UUID) error

	// SetImageSortOrders persists SortOrder for every image given.
	SetImageSortOrders(ctx context.Context, images []models.Image) error

	// Publish writes e to the outbox within the transaction.
	Publish(ctx context.Context, topic string, e pkgevents.Event) error
}
