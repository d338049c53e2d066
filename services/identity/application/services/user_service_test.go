package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/apperr"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newService(repo *memUsers, mail *mailbox) *UserService {
	svc := NewUserService(repo, mail, stubTokens{}, Settings{
		AllowedEmailDomain: "adelaide.edu.au",
		ActivationBaseURL:  "http://localhost:8080/api/auth/activate",
		ActivationTTL:      24 * time.Hour,
		BcryptCost:         bcrypt.MinCost,
	}, logger.Discard())
	svc.now = func() time.Time { return t0 }
	return svc
}

func validInput() RegisterInput {
	age := 21
	return RegisterInput{
		Email:       "A1234567@Adelaide.edu.au",
		Password:    "ChangeMe123!",
		DisplayName: " Alex ",
		Department:  "computer science",
		Degree:      "undergrad",
		Sex:         "prefer not to say",
		Nationality: "AU",
		Age:         &age,
	}
}

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func TestRegister_CreatesInactiveStudentAndEmailsLink(t *testing.T) {
	repo, mail := newMemUsers(), &mailbox{}
	svc := newService(repo, mail)

	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "a1234567@adelaide.edu.au", u.Email)
	assert.Equal(t, "Alex", u.DisplayName)
	assert.Equal(t, models.RoleStudent, u.Role)
	assert.Equal(t, models.DeptComputerScience, u.Department)
	assert.Equal(t, models.DegreeBachelor, u.Degree)
	assert.Equal(t, models.SexPreferNotToSay, u.Sex)
	assert.Equal(t, models.NatAustralia, u.Nationality)
	assert.False(t, u.IsActive)
	require.NotNil(t, u.ActivationTokenExpiresAt)
	assert.Equal(t, t0.Add(24*time.Hour), *u.ActivationTokenExpiresAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("ChangeMe123!")))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, u.Email, mail.sent[0].address)
	assert.Equal(t, u.ActivationToken, tokenFromLink(t, mail.sent[0].link))

	require.Len(t, repo.published, 1)
	ev := repo.published[0].(events.UserRegisteredEvent)
	assert.Equal(t, u.ID, ev.UserID)
}

func TestRegister_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		want   error
	}{
		{"foreign domain", func(in *RegisterInput) { in.Email = "alex@gmail.com" }, identitydomain.ErrEmailDomainNotAllowed},
		{"unknown department", func(in *RegisterInput) { in.Department = "Wizardry" }, identitydomain.ErrInvalidDepartment},
		{"unknown degree", func(in *RegisterInput) { in.Degree = "Kindergarten" }, identitydomain.ErrInvalidDegree},
		{"unknown sex", func(in *RegisterInput) { in.Sex = "?" }, identitydomain.ErrInvalidSex},
		{"unknown nationality", func(in *RegisterInput) { in.Nationality = "Narnia" }, identitydomain.ErrInvalidNationality},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mail := newMemUsers(), &mailbox{}
			in := validInput()
			tt.mutate(&in)

			_, err := newService(repo, mail).Register(context.Background(), in)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, apperr.InvalidInput)
			assert.Empty(t, repo.users)
			assert.Empty(t, mail.sent)
		})
	}
}

func TestRegister_DuplicateEmailIgnoresCase(t *testing.T) {
	repo, mail := newMemUsers(), &mailbox{}
	svc := newService(repo, mail)
	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "a1234567@ADELAIDE.EDU.AU"
	_, err = svc.Register(context.Background(), in)

	assert.ErrorIs(t, err, identitydomain.ErrAccountExists)
	assert.Equal(t, "account already exists", err.Error())
	assert.Len(t, repo.users, 1)
}

func TestRegister_MailFailureIsUpstream(t *testing.T) {
	repo := newMemUsers()
	svc := newService(repo, &mailbox{err: errSMTPDown})

	_, err := svc.Register(context.Background(), validInput())

	assert.ErrorIs(t, err, apperr.Upstream)
	assert.ErrorIs(t, err, errSMTPDown)
	assert.Len(t, repo.users, 1)
}

func TestResendActivation(t *testing.T) {
	repo, mail := newMemUsers(), &mailbox{}
	svc := newService(repo, mail)
	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	first := u.ActivationToken

	require.NoError(t, svc.ResendActivation(context.Background(), " A1234567@adelaide.edu.au"))

	stored := repo.users[u.ID]
	assert.NotEqual(t, first, stored.ActivationToken)
	require.Len(t, mail.sent, 2)
	assert.Equal(t, stored.ActivationToken, tokenFromLink(t, mail.sent[1].link))

	t.Run("unknown email", func(t *testing.T) {
		err := svc.ResendActivation(context.Background(), "nobody@adelaide.edu.au")
		assert.ErrorIs(t, err, identitydomain.ErrUserNotFound)
	})
	t.Run("already active", func(t *testing.T) {
		_, err := svc.Activate(context.Background(), stored.ActivationToken)
		require.NoError(t, err)
		err = svc.ResendActivation(context.Background(), u.Email)
		assert.ErrorIs(t, err, identitydomain.ErrAlreadyActive)
		assert.ErrorIs(t, err, apperr.Conflict)
	})
}

func TestActivate(t *testing.T) {
	repo, mail := newMemUsers(), &mailbox{}
	svc := newService(repo, mail)
	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.Activate(context.Background(), "  ")
		assert.ErrorIs(t, err, identitydomain.ErrActivationTokenMissing)
	})
	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.Activate(context.Background(), "deadbeef")
		assert.ErrorIs(t, err, apperr.NotFound)
	})
	t.Run("expired token", func(t *testing.T) {
		svc.now = func() time.Time { return t0.Add(25 * time.Hour) }
		defer func() { svc.now = func() time.Time { return t0 } }()

		_, err := svc.Activate(context.Background(), u.ActivationToken)
		assert.ErrorIs(t, err, identitydomain.ErrActivationTokenExpired)
		assert.Equal(t, "activate: activation token expired", err.Error())
		assert.False(t, repo.users[u.ID].IsActive)
	})
	t.Run("valid token", func(t *testing.T) {
		res, err := svc.Activate(context.Background(), u.ActivationToken)
		require.NoError(t, err)
		assert.Equal(t, "token-"+u.ID.String(), res.Token)
		assert.True(t, res.User.IsActive)

		stored := repo.users[u.ID]
		assert.True(t, stored.IsActive)
		assert.Empty(t, stored.ActivationToken)
		assert.Nil(t, stored.ActivationTokenExpiresAt)
	})
}

func TestLogin(t *testing.T) {
	repo, mail := newMemUsers(), &mailbox{}
	svc := newService(repo, mail)
	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), u.Email, "ChangeMe123!")
	assert.ErrorIs(t, err, identitydomain.ErrInvalidCredentials, "inactive account")

	_, err = svc.Activate(context.Background(), u.ActivationToken)
	require.NoError(t, err)

	tests := []struct {
		name, email, password string
		ok                    bool
	}{
		{"valid", "A1234567@adelaide.edu.au", "ChangeMe123!", true},
		{"wrong password", u.Email, "changeme123!", false},
		{"unknown email", "ghost@adelaide.edu.au", "ChangeMe123!", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), tt.email, tt.password)
			if !tt.ok {
				assert.ErrorIs(t, err, apperr.Unauthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.ID, res.User.ID)
			assert.NotEmpty(t, res.Token)
		})
	}
}

func TestMe(t *testing.T) {
	repo, mail := newMemUsers(), &mailbox{}
	svc := newService(repo, mail)
	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	got, err := svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
}
