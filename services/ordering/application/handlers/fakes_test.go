package handlers

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/ordering/application/services"
	orderingdomain "github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/repositories"
)

const testUserHeader = "X-Test-User"

// stubOrders keeps listings and orders in maps. Transactions are serialized
// and never roll back.
type stubOrders struct {
	mu       sync.Mutex
	listings map[uuid.UUID]models.ListingSnapshot
	orders   []models.Order
}

func newStubOrders() *stubOrders {
	return &stubOrders{listings: map[uuid.UUID]models.ListingSnapshot{}}
}

func (s *stubOrders) list(seller uuid.UUID, title, price string) uuid.UUID {
	id := uuid.New()
	s.listings[id] = models.ListingSnapshot{
		ID:       id,
		SellerID: seller,
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Status:   models.ListingActive,
	}
	return id
}

func (s *stubOrders) ListOrders(_ context.Context, buyerID uuid.UUID) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Order
	for _, o := range slices.Backward(s.orders) {
		if o.BuyerID == buyerID {
			out = append(out, &o)
		}
	}
	return out, nil
}

func (s *stubOrders) GetOrder(_ context.Context, orderID, buyerID uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == orderID && o.BuyerID == buyerID {
			return &o, nil
		}
	}
	return nil, orderingdomain.ErrOrderNotFound
}

func (s *stubOrders) InTx(_ context.Context, fn func(repositories.OrderTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(stubTx{s})
}

type stubTx struct{ s *stubOrders }

func (t stubTx) LockListing(_ context.Context, itemID uuid.UUID) (*models.ListingSnapshot, error) {
	l, ok := t.s.listings[itemID]
	if !ok {
		return nil, orderingdomain.ErrItemNotFound
	}
	return &l, nil
}

func (t stubTx) SaveListingStatus(_ context.Context, l *models.ListingSnapshot, _ time.Time) error {
	t.s.listings[l.ID] = *l
	return nil
}

func (t stubTx) InsertOrder(_ context.Context, o *models.Order) error {
	t.s.orders = append(t.s.orders, *o)
	return nil
}

func (stubTx) Publish(context.Context, string, pkgevents.Event) error { return nil }

func newTestRouter(repo *stubOrders) http.Handler {
	svcs := &appsvcs.Services{Order: appsvcs.NewOrderService(repo, nil, nil, logger.Discard())}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if id, err := uuid.Parse(req.Header.Get(testUserHeader)); err == nil {
				req = req.WithContext(auth.WithUserID(req.Context(), id))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/orders", NewListOrdersHandler(svcs).Execute)
	r.Post("/orders", NewPostOrderHandler(svcs).Execute)
	r.Get("/orders/{orderID}", NewGetOrderHandler(svcs).Execute)
	return r
}
