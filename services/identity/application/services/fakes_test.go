package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/repositories"
)

// memUsers stores copies of users keyed by id. InTx restores the previous
// state when fn fails.
type memUsers struct {
	mu        sync.Mutex
	users     map[uuid.UUID]models.User
	published []pkgevents.Event
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uuid.UUID]models.User{}}
}

func (m *memUsers) byEmail(email string) (*models.User, bool) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, true
		}
	}
	return nil, false
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail(email); ok {
		return u, nil
	}
	return nil, identitydomain.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, identitydomain.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) InTx(_ context.Context, fn func(repositories.UserTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make(map[uuid.UUID]models.User, len(m.users))
	for k, v := range m.users {
		users[k] = v
	}
	published := len(m.published)
	if err := fn(memTx{m}); err != nil {
		m.users = users
		m.published = m.published[:published]
		return err
	}
	return nil
}

type memTx struct{ m *memUsers }

func (t memTx) Insert(_ context.Context, u *models.User) error {
	if _, ok := t.m.byEmail(u.Email); ok {
		return identitydomain.ErrAccountExists
	}
	t.m.users[u.ID] = *u
	return nil
}

func (t memTx) LockByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := t.m.byEmail(email); ok {
		return u, nil
	}
	return nil, identitydomain.ErrUserNotFound
}

func (t memTx) LockByActivationToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range t.m.users {
		if u.ActivationToken == token {
			return &u, nil
		}
	}
	return nil, identitydomain.ErrActivationTokenNotFound
}

func (t memTx) SaveActivation(_ context.Context, u *models.User) error {
	stored := t.m.users[u.ID]
	stored.IsActive = u.IsActive
	stored.ActivationToken = u.ActivationToken
	stored.ActivationTokenExpiresAt = u.ActivationTokenExpiresAt
	t.m.users[u.ID] = stored
	return nil
}

func (t memTx) Publish(_ context.Context, _ string, e pkgevents.Event) error {
	t.m.published = append(t.m.published, e)
	return nil
}

type sentMail struct{ address, link string }

// mailbox records activation emails; err makes every send fail.
type mailbox struct {
	sent []sentMail
	err  error
}

func (b *mailbox) SendActivationEmail(_ context.Context, address, link string) error {
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, sentMail{address, link})
	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(userID uuid.UUID, _, _ string) (string, time.Time, error) {
	return "token-" + userID.String(), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

var errSMTPDown = errors.New("dial tcp: connection refused")
