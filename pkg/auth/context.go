package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const principalKey contextKey = "principal"

// ErrUserIDNotFound is returned when no authenticated user exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUserIDNotFound = errors.New("user_id not found in context")

// Principal is the verified identity attached to a request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// WithPrincipal returns a new context carrying p.
// Used by authentication middleware after validating the token or session.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromCtx returns the authenticated principal, or ErrUserIDNotFound.
func PrincipalFromCtx(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.UserID == uuid.Nil {
		return Principal{}, ErrUserIDNotFound
	}
	return p, nil
}

// UserIDFromCtx extracts the acting user ID from the request context.
// Returns uuid.Nil and ErrUserIDNotFound for unauthenticated requests.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	p, err := PrincipalFromCtx(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return p.UserID, nil
}

// WithUserID attaches a bare user ID. Tests and internal callers that have no
// email or role use this.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return WithPrincipal(ctx, Principal{UserID: userID})
}
