package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/database"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	catalogdomain "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/repositories"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/infrastructure/persistence/postgres/db"
)

// orderLineItemFK guards items that an order line still points at.
const orderLineItemFK = "order_items_item_id_fkey"

// CatalogRepository implements repositories.CatalogRepository against PostgreSQL.
type CatalogRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewCatalogRepository returns a CatalogRepository backed by the given pool.
// Events published inside InTx go through bus in the same transaction; a nil
// bus drops them.
func NewCatalogRepository(database *database.Database, bus *events.EventBus) *CatalogRepository {
	return &CatalogRepository{db: database, bus: bus}
}

// GetItem loads an item with its category name and images.
func (r *CatalogRepository) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemWithImages(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToListing(row)
}

// ListItems returns a page of items, newest first, and the total count.
func (r *CatalogRepository) ListItems(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	q := db.New(r.db.DB())

	rows, err := q.ListItemsWithImages(ctx, db.ListItemsWithImagesParams{
		Limit:  int32(opts.Limit),
		Offset: int32(opts.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}

	total, err := q.CountItems(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		if items[i], err = rowToListing(db.GetItemWithImagesRow(row)); err != nil {
			return nil, 0, err
		}
	}
	return items, int(total), nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.New(r.db.DB()).ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	categories := make([]models.Category, len(rows))
	for i, row := range rows {
		categories[i] = models.Category{ID: row.ID, Name: row.Name, Slug: row.Slug}
	}
	return categories, nil
}

// InTx runs fn in a read-committed transaction.
func (r *CatalogRepository) InTx(ctx context.Context, fn func(repositories.CatalogTx) error) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(&catalogTx{q: db.New(tx), tx: tx, bus: r.bus})
	})
}

type catalogTx struct {
	q   *db.Queries
	tx  *sql.Tx
	bus *events.EventBus
}

func (t *catalogTx) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row, err := t.q.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &models.Category{ID: row.ID, Name: row.Name, Slug: row.Slug}, nil
}

func (t *catalogTx) LockItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := t.q.LockItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("lock item: %w", err)
	}
	return rowToItem(row), nil
}

func (t *catalogTx) LockSellerItem(ctx context.Context, id, sellerID uuid.UUID) (*models.Item, error) {
	row, err := t.q.LockSellerItem(ctx, db.LockSellerItemParams{ID: id, SellerID: sellerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("lock item: %w", err)
	}
	return rowToItem(row), nil
}

func (t *catalogTx) InsertItem(ctx context.Context, item *models.Item) error {
	if err := t.q.InsertItem(ctx, db.InsertItemParams{
		ID:          item.ID,
		SellerID:    item.SellerID,
		CategoryID:  item.CategoryID,
		Title:       item.Title.String(),
		Description: item.Description,
		Price:       item.Price,
		Status:      item.Status.String(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   nullTime(item.UpdatedAt),
	}); err != nil {
		if database.IsNumericOverflow(err) {
			return catalogdomain.ErrInvalidPrice
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (t *catalogTx) UpdateItem(ctx context.Context, item *models.Item) error {
	if err := t.q.UpdateItem(ctx, db.UpdateItemParams{
		ID:          item.ID,
		CategoryID:  item.CategoryID,
		Title:       item.Title.String(),
		Description: item.Description,
		Price:       item.Price,
		Status:      item.Status.String(),
		UpdatedAt:   nullTime(item.UpdatedAt),
	}); err != nil {
		if database.IsNumericOverflow(err) {
			return catalogdomain.ErrInvalidPrice
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// DeleteItem removes the item; listing_images rows cascade.
func (t *catalogTx) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := t.q.DeleteItem(ctx, id); err != nil {
		if database.IsForeignKeyViolation(err, orderLineItemFK) {
			return catalogdomain.ErrItemHasOrders
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (t *catalogTx) GetImage(ctx context.Context, itemID, imageID uuid.UUID) (*models.Image, error) {
	row, err := t.q.GetImage(ctx, db.GetImageParams{ID: imageID, ItemID: itemID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrImageNotFound
		}
		return nil, fmt.Errorf("query image: %w", err)
	}
	img := rowToImage(row)
	return &img, nil
}

func (t *catalogTx) ListImages(ctx context.Context, itemID uuid.UUID) ([]models.Image, error) {
	rows, err := t.q.ListImages(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	images := make([]models.Image, len(rows))
	for i, row := range rows {
		images[i] = rowToImage(row)
	}
	return images, nil
}

func (t *catalogTx) InsertImage(ctx context.Context, img *models.Image) error {
	if err := t.q.InsertImage(ctx, db.InsertImageParams{
		ID:         img.ID,
		ItemID:     img.ItemID,
		Url:        img.URL,
		StorageKey: sql.NullString{String: img.StorageKey, Valid: img.StorageKey != ""},
		SortOrder:  int32(img.SortOrder),
	}); err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

func (t *catalogTx) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	if err := t.q.DeleteImage(ctx, imageID); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// SetImageSortOrders writes each sort order. The (item_id, sort_order)
// unique constraint is deferred, so transient duplicates are allowed until
// commit.
func (t *catalogTx) SetImageSortOrders(ctx context.Context, images []models.Image) error {
	for _, img := range images {
		if err := t.q.UpdateImageSortOrder(ctx, db.UpdateImageSortOrderParams{
			ID:        img.ID,
			SortOrder: int32(img.SortOrder),
		}); err != nil {
			return fmt.Errorf("update image %s sort order: %w", img.ID, err)
		}
	}
	return nil
}

func (t *catalogTx) Publish(ctx context.Context, topic string, e events.Event) error {
	if t.bus == nil {
		return nil
	}
	if err := t.bus.PublishTx(ctx, t.tx, topic, e); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// imageJSON is one element of the images aggregate in item read queries.
type imageJSON struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	SortOrder int       `json:"sort_order"`
}

func rowToListing(row db.GetItemWithImagesRow) (*models.Item, error) {
	var imgs []imageJSON
	if len(row.Images) > 0 {
		if err := json.Unmarshal(row.Images, &imgs); err != nil {
			return nil, fmt.Errorf("decode images of item %s: %w", row.ID, err)
		}
	}

	item := rowToItem(db.CatalogItem{
		ID:          row.ID,
		SellerID:    row.SellerID,
		CategoryID:  row.CategoryID,
		Title:       row.Title,
		Description: row.Description,
		Price:       row.Price,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	})
	item.CategoryName = row.CategoryName
	item.Images = make([]models.Image, len(imgs))
	for i, img := range imgs {
		item.Images[i] = models.Image{ID: img.ID, ItemID: row.ID, URL: img.URL, SortOrder: img.SortOrder}
	}
	return item, nil
}

// rowToItem maps a db.CatalogItem to a domain models.Item.
func rowToItem(row db.CatalogItem) *models.Item {
	item := &models.Item{
		ID:          row.ID,
		SellerID:    row.SellerID,
		CategoryID:  row.CategoryID,
		Title:       models.Title(row.Title),
		Description: row.Description,
		Price:       row.Price,
		Status:      models.ItemStatus(row.Status),
		CreatedAt:   row.CreatedAt,
	}
	if row.UpdatedAt.Valid {
		t := row.UpdatedAt.Time
		item.UpdatedAt = &t
	}
	return item
}

func rowToImage(row db.CatalogListingImage) models.Image {
	return models.Image{
		ID:         row.ID,
		ItemID:     row.ItemID,
		URL:        row.Url,
		StorageKey: row.StorageKey.String,
		SortOrder:  int(row.SortOrder),
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
