package handlers

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/identity/application/services"
	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/repositories"
)

// stubUsers is a map-backed account store. Transactions are serialized and
// never roll back.
type stubUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func (s *stubUsers) find(match func(models.User) bool) (*models.User, bool) {
	for _, u := range s.users {
		if match(u) {
			return &u, true
		}
	}
	return nil, false
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.find(func(u models.User) bool { return u.Email == email }); ok {
		return u, nil
	}
	return nil, identitydomain.ErrUserNotFound
}

func (s *stubUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, identitydomain.ErrUserNotFound
}

func (s *stubUsers) InTx(_ context.Context, fn func(repositories.UserTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(stubTx{s})
}

type stubTx struct{ s *stubUsers }

func (t stubTx) Insert(_ context.Context, u *models.User) error {
	if _, ok := t.s.find(func(o models.User) bool { return o.Email == u.Email }); ok {
		return identitydomain.ErrAccountExists
	}
	t.s.users[u.ID] = *u
	return nil
}

func (t stubTx) LockByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := t.s.find(func(u models.User) bool { return u.Email == email }); ok {
		return u, nil
	}
	return nil, identitydomain.ErrUserNotFound
}

func (t stubTx) LockByActivationToken(_ context.Context, token string) (*models.User, error) {
	if u, ok := t.s.find(func(u models.User) bool { return u.ActivationToken == token }); ok {
		return u, nil
	}
	return nil, identitydomain.ErrActivationTokenNotFound
}

func (t stubTx) SaveActivation(_ context.Context, u *models.User) error {
	t.s.users[u.ID] = *u
	return nil
}

func (stubTx) Publish(context.Context, string, pkgevents.Event) error { return nil }

// outbox captures activation links; fail makes sending return an error.
type outbox struct {
	mu    sync.Mutex
	links []string
	fail  error
}

func (o *outbox) SendActivationEmail(_ context.Context, _, link string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail != nil {
		return o.fail
	}
	o.links = append(o.links, link)
	return nil
}

func (o *outbox) lastToken() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.links) == 0 {
		return ""
	}
	u, _ := url.Parse(o.links[len(o.links)-1])
	return u.Query().Get("token")
}

type testEnv struct {
	handler http.Handler
	users   *stubUsers
	mail    *outbox
	tokens  *auth.TokenIssuer
}

func newTestEnv() *testEnv {
	users := &stubUsers{users: map[uuid.UUID]models.User{}}
	mail := &outbox{}
	tokens := auth.NewTokenIssuer("adelaide-marketplace", "test-signing-key-0123456789abcdef", time.Hour)
	store := sessions.NewCookieStore([]byte("test-session-auth-key-0123456789"))

	svcs := &appsvcs.Services{User: appsvcs.NewUserService(users, mail, tokens, appsvcs.Settings{
		AllowedEmailDomain: "adelaide.edu.au",
		ActivationBaseURL:  "http://localhost:8080/api/auth/activate",
		ActivationTTL:      24 * time.Hour,
		BcryptCost:         bcrypt.MinCost,
	}, logger.Discard())}

	r := chi.NewRouter()
	r.Post("/auth/register", NewRegisterHandler(svcs).Execute)
	r.Post("/auth/resend-activation", NewResendActivationHandler(svcs).Execute)
	r.Get("/auth/activate", NewActivateHandler(svcs).Execute)
	r.Post("/auth/login", NewLoginHandler(svcs, store, logger.Discard()).Execute)
	r.Post("/auth/logout", NewLogoutHandler(store, logger.Discard()).Execute)
	r.With(auth.RequireAuth(tokens, store, logger.Discard())).Get("/auth/me", NewMeHandler(svcs).Execute)

	return &testEnv{handler: r, users: users, mail: mail, tokens: tokens}
}
