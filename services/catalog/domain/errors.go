package domain

import "github.com/bookmountain/adelaide-uni-market-place/pkg/apperr"

// Sentinel errors for the catalog domain. Match with errors.Is against the
// sentinel or its apperr kind.
var (
	// ErrItemNotFound is also returned when the item exists but belongs to
	// another seller, so update and delete do not disclose ownership.
	ErrItemNotFound = apperr.New(apperr.NotFound, "item not found")

	ErrCategoryNotFound = apperr.New(apperr.NotFound, "category not found")
	ErrImageNotFound    = apperr.New(apperr.NotFound, "image not found")

	ErrInvalidStatus = apperr.New(apperr.InvalidInput, "invalid item status")
	ErrInvalidPrice  = apperr.New(apperr.InvalidInput, "price must be greater than zero and below 10000000000000000")
	ErrInvalidTitle  = apperr.New(apperr.InvalidInput, "invalid item title")

	ErrUnsupportedFormat = apperr.New(apperr.Conflict, "unsupported image format")
)

// ErrItemHasOrders is returned when deleting an item that an order still
// references.
var ErrItemHasOrders = apperr.New(apperr.Conflict, "item is referenced by an order")
