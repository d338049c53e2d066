// Package auth authenticates requests and guards resource ownership.
//
// Two credentials are accepted: an HS256 bearer token issued at login or
// activation, and a Redis-backed session cookie set at login for browser
// clients. Session keys should be 32 or 64 bytes for HMAC authentication and
// 16, 24 or 32 bytes for AES encryption:
//
//	openssl rand -base64 32
package auth

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "marketplace:session:"
	defaultSessionAge = 7 * 24 * time.Hour
)

var (
	sessionIDEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

	errSessionNotFound = errors.New("session not found")
)

// RedisStore is a sessions.Store holding each session as a Redis hash at
// "marketplace:session:<id>". The cookie carries only the signed, encrypted
// id. Values must be strings keyed by strings.
type RedisStore struct {
	client   *redis.Client
	codecs   []securecookie.Codec
	defaults sessions.Options
}

// NewSessionStore creates a Redis-backed session store. secureCookie should be
// true whenever the API is served over HTTPS.
func NewSessionStore(client *redis.Client, authKey, encryptionKey []byte, secureCookie bool) *RedisStore {
	return &RedisStore{
		client: client,
		codecs: securecookie.CodecsFromPairs(authKey, encryptionKey),
		defaults: sessions.Options{
			Path:     "/",
			MaxAge:   int(defaultSessionAge / time.Second),
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the request-scoped session for name.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the cookie. A missing, forged or expired
// cookie yields a fresh session without error.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := s.defaults
	session.Options = &opts
	session.IsNew = true

	id, ok := s.cookieID(r, name)
	if !ok {
		return session, nil
	}
	values, err := s.fetch(r.Context(), id)
	if err != nil {
		return session, nil
	}
	session.ID = id
	for k, v := range values {
		session.Values[k] = v
	}
	session.IsNew = false
	return session, nil
}

// Save writes the session to Redis and sets the cookie. A negative MaxAge
// deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), sessionKeyPrefix+session.ID).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = sessionIDEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	}
	fields, err := flatten(session.Values)
	if err != nil {
		return err
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.store(r.Context(), session.ID, fields, ttl); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) cookieID(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return "", false
	}
	return id, id != ""
}

// store replaces the hash and its expiry in one MULTI.
func (s *RedisStore) store(ctx context.Context, id string, fields map[string]string, ttl time.Duration) error {
	key := sessionKeyPrefix + id
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		if len(fields) > 0 {
			pairs := make([]any, 0, 2*len(fields))
			for k, v := range fields {
				pairs = append(pairs, k, v)
			}
			p.HSet(ctx, key, pairs...)
		}
		if ttl > 0 {
			p.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (s *RedisStore) fetch(ctx context.Context, id string) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(values) == 0 {
		return nil, errSessionNotFound
	}
	return values, nil
}

// flatten converts session values to hash fields.
func flatten(values map[any]any) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for k, v := range values {
		ks, kok := k.(string)
		vs, vok := v.(string)
		if !kok || !vok {
			return nil, fmt.Errorf("session value %v: only string keys and values are supported", k)
		}
		out[ks] = vs
	}
	return out, nil
}
