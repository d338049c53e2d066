package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPaid      OrderStatus = "Paid"
	OrderCancelled OrderStatus = "Cancelled"
	OrderRefunded  OrderStatus = "Refunded"
	OrderCompleted OrderStatus = "Completed"
)

type DeliveryMethod string

const DeliveryInPerson DeliveryMethod = "InPerson"

// PaymentProvider is always None; payment is settled at the meetup.
type PaymentProvider string

const PaymentNone PaymentProvider = "None"

// Order is an immutable purchase record owned by its buyer.
type Order struct {
	ID                 uuid.UUID
	BuyerID            uuid.UUID
	Total              decimal.Decimal
	Status             OrderStatus
	DeliveryMethod     DeliveryMethod
	PaymentProvider    PaymentProvider
	PaymentReference   string
	MeetingLocation    string
	MeetingScheduledAt *time.Time
	CreatedAt          time.Time
	Lines              []OrderLine
}

// OrderLine snapshots the price paid for one item.
type OrderLine struct {
	ItemID    uuid.UUID
	ItemTitle string // read side only
	Price     decimal.Decimal
	Quantity  int
}
