// Package services contains stateless domain rules for the catalog bounded
// context. Functions here operate on records owned by the caller and have no
// dependencies beyond the domain layer.
package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/domain/models"
)

// ListingInput carries the editable fields of a listing.
type ListingInput struct {
	CategoryID  uuid.UUID
	Title       string
	Description string
	Price       decimal.Decimal
}

// ItemUpdate is ListingInput plus the raw status string from the request.
type ItemUpdate struct {
	ListingInput
	Status string
}

// MaxPrice is the exclusive upper bound of the NUMERIC(18,2) price column.
var MaxPrice = decimal.New(1, 16)

// ValidatePrice rejects zero, negative and out-of-range prices.
func ValidatePrice(p decimal.Decimal) error {
	if !p.IsPositive() || !p.Round(2).LessThan(MaxPrice) {
		return catalogdomain.ErrInvalidPrice
	}
	return nil
}

// ValidateTitle enforces the structural Title limits plus:
//   - no leading or trailing whitespace
//   - no control characters
func ValidateTitle(s string) (models.Title, error) {
	title, err := models.NewTitle(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", catalogdomain.ErrInvalidTitle, err)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: title must not be only whitespace", catalogdomain.ErrInvalidTitle)
	}
	if s != strings.TrimSpace(s) {
		return "", fmt.Errorf("%w: title must not have leading or trailing whitespace", catalogdomain.ErrInvalidTitle)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: title must not contain control characters", catalogdomain.ErrInvalidTitle)
		}
	}
	return title, nil
}

// NewListing builds an Active item with a fresh id. The category must already
// have been resolved by the caller.
func NewListing(sellerID uuid.UUID, in ListingInput, now time.Time) (*models.Item, error) {
	title, err := ValidateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := ValidatePrice(in.Price); err != nil {
		return nil, err
	}
	return &models.Item{
		ID:          uuid.New(),
		SellerID:    sellerID,
		CategoryID:  in.CategoryID,
		Title:       title,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Status:      models.StatusActive,
		CreatedAt:   now.UTC(),
	}, nil
}

// ApplyItemUpdate overwrites the editable fields of item and stamps UpdatedAt.
// item is left untouched when any field is invalid.
func ApplyItemUpdate(item *models.Item, upd ItemUpdate, now time.Time) error {
	status, ok := models.ParseItemStatus(upd.Status)
	if !ok {
		return catalogdomain.ErrInvalidStatus
	}
	title, err := ValidateTitle(upd.Title)
	if err != nil {
		return err
	}
	if err := ValidatePrice(upd.Price); err != nil {
		return err
	}

	updatedAt := now.UTC()
	item.CategoryID = upd.CategoryID
	item.Title = title
	item.Description = upd.Description
	item.Price = upd.Price.Round(2)
	item.Status = status
	item.UpdatedAt = &updatedAt
	return nil
}
