package handlers

import (
	"context"
	"io"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
	catalogdomain "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/repositories"
)

const testUserHeader = "X-Test-User"

// stubCatalog is a map-backed catalog store for handler tests. Transactions
// are serialized and never roll back.
type stubCatalog struct {
	mu         sync.Mutex
	categories []models.Category
	items      map[uuid.UUID]models.Item
	images     []models.Image
}

func newStubCatalog(categories ...models.Category) *stubCatalog {
	return &stubCatalog{categories: categories, items: map[uuid.UUID]models.Item{}}
}

func (s *stubCatalog) imagesOf(itemID uuid.UUID) []models.Image {
	var out []models.Image
	for _, img := range s.images {
		if img.ItemID == itemID {
			out = append(out, img)
		}
	}
	slices.SortFunc(out, func(a, b models.Image) int { return a.SortOrder - b.SortOrder })
	return out
}

func (s *stubCatalog) GetItem(_ context.Context, id uuid.UUID) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, catalogdomain.ErrItemNotFound
	}
	it.Images = s.imagesOf(id)
	return &it, nil
}

func (s *stubCatalog) ListItems(_ context.Context, _ repositories.QueryOpts) ([]*models.Item, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, &it)
	}
	return out, len(out), nil
}

func (s *stubCatalog) ListCategories(context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubCatalog) InTx(_ context.Context, fn func(repositories.CatalogTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(stubTx{s})
}

type stubTx struct{ s *stubCatalog }

func (t stubTx) GetCategory(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for _, c := range t.s.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, catalogdomain.ErrCategoryNotFound
}

func (t stubTx) LockItem(_ context.Context, id uuid.UUID) (*models.Item, error) {
	it, ok := t.s.items[id]
	if !ok {
		return nil, catalogdomain.ErrItemNotFound
	}
	return &it, nil
}

func (t stubTx) LockSellerItem(ctx context.Context, id, sellerID uuid.UUID) (*models.Item, error) {
	it, err := t.LockItem(ctx, id)
	if err != nil || it.SellerID != sellerID {
		return nil, catalogdomain.ErrItemNotFound
	}
	return it, nil
}

func (t stubTx) InsertItem(_ context.Context, item *models.Item) error {
	t.s.items[item.ID] = *item
	return nil
}

func (t stubTx) UpdateItem(_ context.Context, item *models.Item) error {
	t.s.items[item.ID] = *item
	return nil
}

func (t stubTx) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(t.s.items, id)
	return nil
}

func (t stubTx) GetImage(_ context.Context, itemID, imageID uuid.UUID) (*models.Image, error) {
	for _, img := range t.s.images {
		if img.ID == imageID && img.ItemID == itemID {
			return &img, nil
		}
	}
	return nil, catalogdomain.ErrImageNotFound
}

func (t stubTx) ListImages(_ context.Context, itemID uuid.UUID) ([]models.Image, error) {
	return t.s.imagesOf(itemID), nil
}

func (t stubTx) InsertImage(_ context.Context, img *models.Image) error {
	t.s.images = append(t.s.images, *img)
	return nil
}

func (t stubTx) DeleteImage(_ context.Context, imageID uuid.UUID) error {
	t.s.images = slices.DeleteFunc(t.s.images, func(img models.Image) bool { return img.ID == imageID })
	return nil
}

func (t stubTx) SetImageSortOrders(_ context.Context, images []models.Image) error {
	for _, upd := range images {
		for i := range t.s.images {
			if t.s.images[i].ID == upd.ID {
				t.s.images[i].SortOrder = upd.SortOrder
			}
		}
	}
	return nil
}

func (t stubTx) Publish(context.Context, string, pkgevents.Event) error { return nil }

// stubStore accepts every upload.
type stubStore struct {
	mu      sync.Mutex
	uploads []string
}

func (s *stubStore) Upload(_ context.Context, prefix string, r io.Reader, _ int64, fileName, _ string) (string, string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := prefix + "/" + fileName
	s.uploads = append(s.uploads, key)
	return key, "https://cdn.test/" + key, nil
}

func (s *stubStore) Delete(context.Context, string) error { return nil }

// newTestRouter mounts the catalog handlers the way CatalogRoutes does, with
// the acting user taken from a test header instead of a token.
func newTestRouter(repo *stubCatalog, store *stubStore) http.Handler {
	svcs := &appsvcs.Services{
		Item:  appsvcs.NewItemService(repo, nil, store, nil, logger.Discard()),
		Image: appsvcs.NewImageService(repo, store, nil, nil, logger.Discard()),
	}
	const maxUpload = 1 << 20

	r := chi.NewRouter()
	r.Get("/categories", NewListCategoriesHandler(svcs).Execute)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if id, err := uuid.Parse(req.Header.Get(testUserHeader)); err == nil {
					req = req.WithContext(auth.WithUserID(req.Context(), id))
				}
				next.ServeHTTP(w, req)
			})
		})
		r.Get("/items", NewListItemsHandler(svcs).Execute)
		r.Post("/items", NewPostItemHandler(svcs).Execute)
		r.Post("/items/with-images", NewPostItemWithImagesHandler(svcs, maxUpload).Execute)
		r.Get("/items/{itemID}", NewGetItemHandler(svcs).Execute)
		r.Put("/items/{itemID}", NewPutItemHandler(svcs).Execute)
		r.Delete("/items/{itemID}", NewDeleteItemHandler(svcs).Execute)
		r.Post("/items/{itemID}/images", NewPostItemImageHandler(svcs, maxUpload).Execute)
		r.Delete("/items/{itemID}/images/{imageID}", NewDeleteItemImageHandler(svcs).Execute)
	})
	return r
}
