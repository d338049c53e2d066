package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	catalogdomain "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/repositories"
)

type published struct {
	topic string
	event pkgevents.Event
}

type catalogState struct {
	items     map[uuid.UUID]models.Item
	images    map[uuid.UUID]models.Image
	published []published
}

func (s catalogState) clone() catalogState {
	return catalogState{
		items:     maps.Clone(s.items),
		images:    maps.Clone(s.images),
		published: slices.Clone(s.published),
	}
}

// memCatalog is an in-memory CatalogRepository. InTx holds a single mutex for
// the whole transaction, which serializes writers like a row lock would, and
// restores a snapshot when fn fails.
type memCatalog struct {
	mu         sync.Mutex
	categories map[uuid.UUID]models.Category
	state      catalogState

	failInsertImage error
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		categories: map[uuid.UUID]models.Category{},
		state: catalogState{
			items:  map[uuid.UUID]models.Item{},
			images: map[uuid.UUID]models.Image{},
		},
	}
}

func (m *memCatalog) addCategory(name string) uuid.UUID {
	id := uuid.New()
	m.categories[id] = models.Category{ID: id, Name: name, Slug: name}
	return id
}

func (m *memCatalog) seedItem(item models.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.items[item.ID] = item
}

func (m *memCatalog) seedImage(img models.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.images[img.ID] = img
}

func (m *memCatalog) events() []published {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.published)
}

func (m *memCatalog) item(id uuid.UUID) (models.Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.state.items[id]
	return it, ok
}

func (m *memCatalog) sortedImages(itemID uuid.UUID) []models.Image {
	var out []models.Image
	for _, img := range m.state.images {
		if img.ItemID == itemID {
			out = append(out, img)
		}
	}
	slices.SortFunc(out, func(a, b models.Image) int { return a.SortOrder - b.SortOrder })
	return out
}

func (m *memCatalog) imagesOf(itemID uuid.UUID) []models.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedImages(itemID)
}

func (m *memCatalog) GetItem(_ context.Context, id uuid.UUID) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.state.items[id]
	if !ok {
		return nil, catalogdomain.ErrItemNotFound
	}
	it.CategoryName = m.categories[it.CategoryID].Name
	it.Images = m.sortedImages(id)
	return &it, nil
}

func (m *memCatalog) ListItems(_ context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*models.Item, 0, len(m.state.items))
	for _, it := range m.state.items {
		all = append(all, &it)
	}
	slices.SortFunc(all, func(a, b *models.Item) int { return b.CreatedAt.Compare(a.CreatedAt) })
	total := len(all)
	end := min(opts.Offset+opts.Limit, total)
	if opts.Offset >= total {
		return []*models.Item{}, total, nil
	}
	return all[opts.Offset:end], total, nil
}

func (m *memCatalog) ListCategories(context.Context) ([]models.Category, error) {
	out := slices.Collect(maps.Values(m.categories))
	slices.SortFunc(out, func(a, b models.Category) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out, nil
}

func (m *memCatalog) InTx(ctx context.Context, fn func(repositories.CatalogTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.state.clone()
	if err := fn(&memCatalogTx{m: m}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

type memCatalogTx struct{ m *memCatalog }

func (t *memCatalogTx) GetCategory(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := t.m.categories[id]
	if !ok {
		return nil, catalogdomain.ErrCategoryNotFound
	}
	return &c, nil
}

func (t *memCatalogTx) LockItem(_ context.Context, id uuid.UUID) (*models.Item, error) {
	it, ok := t.m.state.items[id]
	if !ok {
		return nil, catalogdomain.ErrItemNotFound
	}
	return &it, nil
}

func (t *memCatalogTx) LockSellerItem(_ context.Context, id, sellerID uuid.UUID) (*models.Item, error) {
	it, ok := t.m.state.items[id]
	if !ok || it.SellerID != sellerID {
		return nil, catalogdomain.ErrItemNotFound
	}
	return &it, nil
}

func (t *memCatalogTx) InsertItem(_ context.Context, item *models.Item) error {
	stored := *item
	stored.Images = nil
	t.m.state.items[item.ID] = stored
	return nil
}

func (t *memCatalogTx) UpdateItem(_ context.Context, item *models.Item) error {
	if _, ok := t.m.state.items[item.ID]; !ok {
		return catalogdomain.ErrItemNotFound
	}
	stored := *item
	stored.Images = nil
	t.m.state.items[item.ID] = stored
	return nil
}

func (t *memCatalogTx) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(t.m.state.items, id)
	for imgID, img := range t.m.state.images {
		if img.ItemID == id {
			delete(t.m.state.images, imgID)
		}
	}
	return nil
}

func (t *memCatalogTx) GetImage(_ context.Context, itemID, imageID uuid.UUID) (*models.Image, error) {
	img, ok := t.m.state.images[imageID]
	if !ok || img.ItemID != itemID {
		return nil, catalogdomain.ErrImageNotFound
	}
	return &img, nil
}

func (t *memCatalogTx) ListImages(_ context.Context, itemID uuid.UUID) ([]models.Image, error) {
	return t.m.sortedImages(itemID), nil
}

func (t *memCatalogTx) InsertImage(_ context.Context, img *models.Image) error {
	if t.m.failInsertImage != nil {
		return t.m.failInsertImage
	}
	for _, other := range t.m.state.images {
		if other.ItemID == img.ItemID && other.SortOrder == img.SortOrder {
			return fmt.Errorf("duplicate sort order %d", img.SortOrder)
		}
	}
	t.m.state.images[img.ID] = *img
	return nil
}

func (t *memCatalogTx) DeleteImage(_ context.Context, imageID uuid.UUID) error {
	delete(t.m.state.images, imageID)
	return nil
}

func (t *memCatalogTx) SetImageSortOrders(_ context.Context, images []models.Image) error {
	for _, img := range images {
		stored, ok := t.m.state.images[img.ID]
		if !ok {
			return fmt.Errorf("image %s vanished", img.ID)
		}
		stored.SortOrder = img.SortOrder
		t.m.state.images[img.ID] = stored
	}
	return nil
}

func (t *memCatalogTx) Publish(_ context.Context, topic string, e pkgevents.Event) error {
	t.m.state.published = append(t.m.state.published, published{topic: topic, event: e})
	return nil
}

// memStore records blob writes and deletes.
type memStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploads   int
	deleteErr error
	deleted   []string
	seq       int
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Upload(_ context.Context, prefix string, r io.Reader, _ int64, _ string, _ string) (string, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.uploads++
	key := fmt.Sprintf("%s/%04d.png", prefix, s.seq)
	s.objects[key] = data
	return key, "https://cdn.test/" + key, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}

// memCache is a map-backed ListingCache with the same generation rules as
// the Redis one: Delete bumps the generation, Fill checks it.
type memCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*cache.CachedListing
	gens    map[uuid.UUID]int
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: map[uuid.UUID]*cache.CachedListing{}, gens: map[uuid.UUID]int{}}
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) (*cache.CachedListing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	l, ok := c.entries[id]
	if !ok {
		return nil, redis.Nil
	}
	return l, nil
}

func (c *memCache) Generation(_ context.Context, id uuid.UUID) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strconv.Itoa(c.gens[id]), nil
}

func (c *memCache) Fill(_ context.Context, l *cache.CachedListing, gen string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strconv.Itoa(c.gens[l.ID]) != gen {
		return false, nil
	}
	c.entries[l.ID] = l
	return true, nil
}

func (c *memCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	delete(c.entries, id)
	return nil
}

// put seeds an entry without touching the generation.
func (c *memCache) put(l *cache.CachedListing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[l.ID] = l
}

func (c *memCache) has(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

var errBoom = errors.New("boom")
