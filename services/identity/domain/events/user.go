package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicUserRegistered is published when a new account is created.
const TopicUserRegistered = "identity.user.registered"

// Version is the current schema version of identity event payloads.
const Version = 1

// UserRegisteredEvent is published in the registration transaction. It never
// carries the password hash or the activation token.
type UserRegisteredEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e UserRegisteredEvent) EventMeta() (uuid.UUID, int) { return e.EventID, e.Version }
