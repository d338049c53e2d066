package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Listing statuses relevant to ordering. They match the catalog values.
const (
	ListingActive = "Active"
	ListingSold   = "Sold"
)

// ListingSnapshot is the ordering view of a catalog item, read under a row
// lock while an order is placed.
type ListingSnapshot struct {
	ID       uuid.UUID
	SellerID uuid.UUID
	Title    string
	Price    decimal.Decimal
	Status   string
}
