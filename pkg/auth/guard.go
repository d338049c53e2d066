package auth

import (
	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/apperr"
)

// ErrNotOwner is returned when the acting user does not own an existing resource.
var ErrNotOwner = apperr.New(apperr.NotOwner, "you do not own this resource")

// Authorize allows the action only when actorID owns the resource.
// A nil actor is never an owner.
func Authorize(actorID, ownerID uuid.UUID) error {
	if actorID == uuid.Nil || actorID != ownerID {
		return ErrNotOwner
	}
	return nil
}
