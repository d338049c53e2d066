// Package services holds the account state transitions. Each one mutates a
// User the caller owns and persists afterwards.
package services

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
)

// IssueActivation gives u a fresh activation token valid for ttl and marks
// the account inactive. The token is returned for the activation link.
func IssueActivation(u *models.User, now time.Time, ttl time.Duration) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	expires := now.UTC().Add(ttl)
	u.ActivationToken = token
	u.ActivationTokenExpiresAt = &expires
	u.IsActive = false
	return token
}

// Activate redeems the activation token held by u. An account that is
// already active is left as is. An expired token fails
// ErrActivationTokenExpired and leaves u unchanged.
func Activate(u *models.User, now time.Time) error {
	if u.IsActive {
		return nil
	}
	if u.ActivationTokenExpiresAt != nil && now.After(*u.ActivationTokenExpiresAt) {
		return identitydomain.ErrActivationTokenExpired
	}
	u.IsActive = true
	u.ActivationToken = ""
	u.ActivationTokenExpiresAt = nil
	return nil
}

// ActivationLink appends token to base as the token query parameter.
func ActivationLink(base, token string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + url.QueryEscape(token)
}

// EmailAllowed reports whether email belongs to domain, ignoring case.
func EmailAllowed(email, domain string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), "@"+strings.ToLower(domain))
}
