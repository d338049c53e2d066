package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleStudent is the role given to every self-registered account.
const RoleStudent = "Student"

// User is a marketplace account. New accounts are inactive until the emailed
// activation token is redeemed.
type User struct {
	ID                       uuid.UUID
	Email                    string
	DisplayName              string
	Role                     string
	PasswordHash             string
	Department               Department
	Degree                   Degree
	Sex                      Sex
	AvatarURL                string
	Nationality              Nationality
	Age                      *int
	IsActive                 bool
	ActivationToken          string
	ActivationTokenExpiresAt *time.Time
	CreatedAt                time.Time
}
