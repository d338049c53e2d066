package repositories

import (
	"context"

	"github.com/google/uuid"

	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
)

// UserRepository is the persistence interface for accounts.
type UserRepository interface {
	// GetByEmail returns ErrUserNotFound when no account uses email. The
	// match ignores case.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	InTx(ctx context.Context, fn func(UserTx) error) error
}

// UserTx is the transaction-scoped view used by registration and activation.
type UserTx interface {
	// Insert fails ErrAccountExists when the email is taken.
	Insert(ctx context.Context, u *models.User) error

	// LockByEmail returns ErrUserNotFound when absent.
	LockByEmail(ctx context.Context, email string) (*models.User, error)

	// LockByActivationToken returns ErrActivationTokenNotFound when no account
	// holds token.
	LockByActivationToken(ctx context.Context, token string) (*models.User, error)

	// SaveActivation writes the active flag and activation token columns.
	SaveActivation(ctx context.Context, u *models.User) error

	Publish(ctx context.Context, topic string, e pkgevents.Event) error
}
