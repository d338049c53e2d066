package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/database"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	orderingdomain "github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/domain/repositories"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/infrastructure/persistence/postgres/db"
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository. A nil bus drops events
// published inside InTx.
func NewOrderRepository(database *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: database, bus: bus}
}

func (r *OrderRepository) ListOrders(ctx context.Context, buyerID uuid.UUID) ([]*models.Order, error) {
	rows, err := db.New(r.db.DB()).ListOrdersByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	lines := make([]db.GetBuyerOrderRow, len(rows))
	for i, row := range rows {
		lines[i] = db.GetBuyerOrderRow(row)
	}
	return groupOrders(lines), nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID, buyerID uuid.UUID) (*models.Order, error) {
	rows, err := db.New(r.db.DB()).GetBuyerOrder(ctx, db.GetBuyerOrderParams{ID: orderID, BuyerID: buyerID})
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	orders := groupOrders(rows)
	if len(orders) == 0 {
		return nil, orderingdomain.ErrOrderNotFound
	}
	return orders[0], nil
}

// InTx runs fn in a read-committed transaction.
func (r *OrderRepository) InTx(ctx context.Context, fn func(repositories.OrderTx) error) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(&orderTx{q: db.New(tx), tx: tx, bus: r.bus})
	})
}

type orderTx struct {
	q   *db.Queries
	tx  *sql.Tx
	bus *events.EventBus
}

func (t *orderTx) LockListing(ctx context.Context, itemID uuid.UUID) (*models.ListingSnapshot, error) {
	row, err := t.q.LockListing(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orderingdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("lock listing: %w", err)
	}
	return &models.ListingSnapshot{
		ID:       row.ID,
		SellerID: row.SellerID,
		Title:    row.Title,
		Price:    row.Price,
		Status:   row.Status,
	}, nil
}

func (t *orderTx) SaveListingStatus(ctx context.Context, listing *models.ListingSnapshot, at time.Time) error {
	if err := t.q.SetListingStatus(ctx, db.SetListingStatusParams{
		ID:        listing.ID,
		Status:    listing.Status,
		UpdatedAt: sql.NullTime{Time: at, Valid: true},
	}); err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	return nil
}

func (t *orderTx) InsertOrder(ctx context.Context, order *models.Order) error {
	scheduled := sql.NullTime{}
	if order.MeetingScheduledAt != nil {
		scheduled = sql.NullTime{Time: *order.MeetingScheduledAt, Valid: true}
	}
	if err := t.q.InsertOrder(ctx, db.InsertOrderParams{
		ID:                 order.ID,
		BuyerID:            order.BuyerID,
		Total:              order.Total,
		Status:             string(order.Status),
		DeliveryMethod:     string(order.DeliveryMethod),
		PaymentProvider:    string(order.PaymentProvider),
		PaymentReference:   order.PaymentReference,
		MeetingLocation:    order.MeetingLocation,
		MeetingScheduledAt: scheduled,
		CreatedAt:          order.CreatedAt,
	}); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Lines {
		if err := t.q.InsertOrderItem(ctx, db.InsertOrderItemParams{
			OrderID:  order.ID,
			ItemID:   line.ItemID,
			Price:    line.Price,
			Quantity: int32(line.Quantity),
		}); err != nil {
			return fmt.Errorf("insert order line %s: %w", line.ItemID, err)
		}
	}
	return nil
}

func (t *orderTx) Publish(ctx context.Context, topic string, e events.Event) error {
	if t.bus == nil {
		return nil
	}
	if err := t.bus.PublishTx(ctx, t.tx, topic, e); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// groupOrders folds one-row-per-line results into orders, keeping row order.
func groupOrders(rows []db.GetBuyerOrderRow) []*models.Order {
	var orders []*models.Order
	byID := make(map[uuid.UUID]*models.Order)
	for _, row := range rows {
		o, ok := byID[row.ID]
		if !ok {
			o = &models.Order{
				ID:               row.ID,
				BuyerID:          row.BuyerID,
				Total:            row.Total,
				Status:           models.OrderStatus(row.Status),
				DeliveryMethod:   models.DeliveryMethod(row.DeliveryMethod),
				PaymentProvider:  models.PaymentProvider(row.PaymentProvider),
				PaymentReference: row.PaymentReference,
				MeetingLocation:  row.MeetingLocation,
				CreatedAt:        row.CreatedAt,
			}
			if row.MeetingScheduledAt.Valid {
				at := row.MeetingScheduledAt.Time
				o.MeetingScheduledAt = &at
			}
			byID[row.ID] = o
			orders = append(orders, o)
		}
		o.Lines = append(o.Lines, models.OrderLine{
			ItemID:    row.ItemID,
			ItemTitle: row.ItemTitle,
			Price:     row.ItemPrice,
			Quantity:  int(row.Quantity),
		})
	}
	return orders
}
