package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle state of a listing.
type ItemStatus string

const (
	StatusDraft    ItemStatus = "Draft"
	StatusActive   ItemStatus = "Active"
	StatusSold     ItemStatus = "Sold"
	StatusArchived ItemStatus = "Archived"
)

var itemStatuses = []ItemStatus{StatusDraft, StatusActive, StatusSold, StatusArchived}

// ParseItemStatus matches s case-insensitively against the known statuses.
func ParseItemStatus(s string) (ItemStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range itemStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

func (s ItemStatus) String() string { return string(s) }

// Item is a listing offered for sale by a seller.
type Item struct {
	ID           uuid.UUID
	SellerID     uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string // read side only
	Title        Title
	Description  string
	Price        decimal.Decimal
	Status       ItemStatus
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	Images       []Image // ordered by SortOrder on reads
}

// Category groups listings for browsing.
type Category struct {
	ID   uuid.UUID
	Name string
	Slug string
}
