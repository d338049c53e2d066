package services

import (
	"time"

	"github.com/google/uuid"
)

// TokenIssuer signs access tokens. *auth.TokenIssuer satisfies it.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email, role string) (string, time.Time, error)
}

// Settings are the registration policy knobs taken from config.
type Settings struct {
	AllowedEmailDomain string
	ActivationBaseURL  string
	ActivationTTL      time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost when zero.
	BcryptCost int
}
