// Package domain declares the identity context's sentinel errors.
package domain

import "github.com/bookmountain/adelaide-uni-market-place/pkg/apperr"

var (
	ErrEmailDomainNotAllowed  = apperr.New(apperr.InvalidInput, "email domain is not allowed")
	ErrInvalidDepartment      = apperr.New(apperr.InvalidInput, "invalid department selection")
	ErrInvalidDegree          = apperr.New(apperr.InvalidInput, "invalid degree selection")
	ErrInvalidSex             = apperr.New(apperr.InvalidInput, "invalid sex selection")
	ErrInvalidNationality     = apperr.New(apperr.InvalidInput, "invalid nationality selection")
	ErrActivationTokenMissing = apperr.New(apperr.InvalidInput, "activation token is required")

	ErrAccountExists          = apperr.New(apperr.Conflict, "account already exists")
	ErrAlreadyActive          = apperr.New(apperr.Conflict, "account is already active")
	ErrActivationTokenExpired = apperr.New(apperr.Conflict, "activation token expired")

	ErrUserNotFound            = apperr.New(apperr.NotFound, "user not found")
	ErrActivationTokenNotFound = apperr.New(apperr.NotFound, "activation token not found")

	// ErrInvalidCredentials covers unknown email, wrong password and inactive
	// accounts alike.
	ErrInvalidCredentials = apperr.New(apperr.Unauthenticated, "invalid email or password")
)
