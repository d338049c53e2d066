package domain

import "github.com/bookmountain/adelaide-uni-market-place/pkg/apperr"

// Sentinel errors for the ordering domain.
var (
	ErrItemNotFound     = apperr.New(apperr.NotFound, "item not found")
	ErrItemNotAvailable = apperr.New(apperr.Conflict, "item is not available for purchase")
	ErrSelfPurchase     = apperr.New(apperr.Conflict, "you cannot purchase your own item")

	// ErrOrderNotFound also covers orders placed by another buyer.
	ErrOrderNotFound = apperr.New(apperr.NotFound, "order not found")
)
