package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
)

const (
	sessionName      = "marketplace_session"
	sessionUserIDKey = "user_id"
	sessionEmailKey  = "email"
	sessionRoleKey   = "role"
)

// TokenVerifier validates a bearer token. *TokenIssuer satisfies it.
type TokenVerifier interface {
	Verify(raw string) (Principal, error)
}

// RequireAuth is a chi middleware that authenticates the request and injects
// the Principal into its context.
//
// A bearer token in the Authorization header wins; a present but invalid token
// is rejected without consulting the session. Without a header the Redis-backed
// session cookie set at login is used. Returns 401 when neither yields a user.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(tokens TokenVerifier, store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw, ok := bearerToken(r); ok {
				p, err := tokens.Verify(raw)
				if err != nil {
					log.WarnContext(r.Context(), "rejected bearer token", "error", err)
					unauthorized(w, "invalid or expired token")
					return
				}
				next.ServeHTTP(w, r.WithContext(authenticated(r.Context(), p)))
				return
			}

			if store == nil {
				unauthorized(w, "authentication required")
				return
			}

			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				unauthorized(w, "authentication required")
				return
			}

			userIDStr, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userIDStr == "" {
				unauthorized(w, "authentication required")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
				unauthorized(w, "invalid session data")
				return
			}

			email, _ := session.Values[sessionEmailKey].(string)
			role, _ := session.Values[sessionRoleKey].(string)
			ctx := authenticated(r.Context(), Principal{UserID: userID, Email: email, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StartSession records p in the session and writes the session cookie.
func StartSession(w http.ResponseWriter, r *http.Request, store sessions.Store, p Principal) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Values[sessionUserIDKey] = p.UserID.String()
	session.Values[sessionEmailKey] = p.Email
	session.Values[sessionRoleKey] = p.Role
	return session.Save(r, w)
}

// EndSession expires the session cookie and deletes its server-side state.
func EndSession(w http.ResponseWriter, r *http.Request, store sessions.Store) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// authenticated stores p and tags downstream log records with the user.
func authenticated(ctx context.Context, p Principal) context.Context {
	return logger.WithAttrs(WithPrincipal(ctx, p), "user_id", p.UserID.String())
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}

func unauthorized(w http.ResponseWriter, msg string) {
	httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": msg})
}
