package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/apperr"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/mailer"
	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/events"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/repositories"
	domainsvcs "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/services"
)

// RegisterInput is a sign-up request. Enum fields accept canonical names or
// aliases.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	AvatarURL   string
	Department  string
	Degree      string
	Sex         string
	Nationality string
	Age         *int
}

// AuthResult is a signed access token and the account it was issued for.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// UserService registers, activates and authenticates accounts.
type UserService struct {
	repo     repositories.UserRepository
	mail     mailer.Sender
	tokens   TokenIssuer
	settings Settings
	log      logger.Logger
	now      func() time.Time
}

func NewUserService(repo repositories.UserRepository, mail mailer.Sender, tokens TokenIssuer, settings Settings, log logger.Logger) *UserService {
	if settings.BcryptCost == 0 {
		settings.BcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:     repo,
		mail:     mail,
		tokens:   tokens,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

// Register creates an inactive Student account and emails its activation
// link. A failed send surfaces as an Upstream error; the account stays and
// the link can be re-sent.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	if !domainsvcs.EmailAllowed(email, s.settings.AllowedEmailDomain) {
		return nil, identitydomain.ErrEmailDomainNotAllowed
	}

	u, err := s.newUser(email, in)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, identitydomain.ErrAccountExists
	} else if !errors.Is(err, identitydomain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.settings.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	token := domainsvcs.IssueActivation(u, u.CreatedAt, s.settings.ActivationTTL)

	err = s.repo.InTx(ctx, func(tx repositories.UserTx) error {
		if err := tx.Insert(ctx, u); err != nil {
			return err
		}
		return tx.Publish(ctx, events.TopicUserRegistered, events.UserRegisteredEvent{
			EventID:    uuid.New(),
			Version:    events.Version,
			UserID:     u.ID,
			Email:      u.Email,
			Department: u.Department.String(),
			OccurredAt: u.CreatedAt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID, "department", u.Department)

	if err := s.sendActivation(ctx, u.Email, token); err != nil {
		return nil, err
	}
	return u, nil
}

// ResendActivation replaces the activation token of an inactive account and
// emails the new link.
func (s *UserService) ResendActivation(ctx context.Context, email string) error {
	var (
		address string
		token   string
	)
	err := s.repo.InTx(ctx, func(tx repositories.UserTx) error {
		u, err := tx.LockByEmail(ctx, normalizeEmail(email))
		if err != nil {
			return err
		}
		if u.IsActive {
			return identitydomain.ErrAlreadyActive
		}
		token = domainsvcs.IssueActivation(u, s.now(), s.settings.ActivationTTL)
		address = u.Email
		return tx.SaveActivation(ctx, u)
	})
	if err != nil {
		return fmt.Errorf("resend activation: %w", err)
	}
	return s.sendActivation(ctx, address, token)
}

// Activate redeems token and signs the user in.
func (s *UserService) Activate(ctx context.Context, token string) (*AuthResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, identitydomain.ErrActivationTokenMissing
	}

	var user *models.User
	err := s.repo.InTx(ctx, func(tx repositories.UserTx) error {
		u, err := tx.LockByActivationToken(ctx, token)
		if err != nil {
			return err
		}
		user = u
		if u.IsActive {
			return nil
		}
		if err := domainsvcs.Activate(u, s.now()); err != nil {
			return err
		}
		return tx.SaveActivation(ctx, u)
	})
	if err != nil {
		return nil, fmt.Errorf("activate: %w", err)
	}
	s.log.InfoContext(ctx, "user activated", "user_id", user.ID)
	return s.issue(user)
}

// Login checks email and password for an active account. Every failure is
// reported as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, identitydomain.ErrUserNotFound) {
			return nil, identitydomain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !u.IsActive {
		s.log.InfoContext(ctx, "login refused for inactive account", "user_id", u.ID)
		return nil, identitydomain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, identitydomain.ErrInvalidCredentials
	}
	return s.issue(u)
}

// Me returns the signed-in account.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserService) newUser(email string, in RegisterInput) (*models.User, error) {
	department, err := models.ParseDepartment(in.Department)
	if err != nil {
		return nil, err
	}
	degree, err := models.ParseDegree(in.Degree)
	if err != nil {
		return nil, err
	}
	sex, err := models.ParseSex(in.Sex)
	if err != nil {
		return nil, err
	}
	nationality, err := models.ParseNationality(in.Nationality)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Role:        models.RoleStudent,
		Department:  department,
		Degree:      degree,
		Sex:         sex,
		AvatarURL:   strings.TrimSpace(in.AvatarURL),
		Nationality: nationality,
		Age:         in.Age,
		CreatedAt:   s.now().UTC(),
	}, nil
}

func (s *UserService) sendActivation(ctx context.Context, address, token string) error {
	link := domainsvcs.ActivationLink(s.settings.ActivationBaseURL, token)
	if err := s.mail.SendActivationEmail(ctx, address, link); err != nil {
		s.log.ErrorContext(ctx, "activation email failed", "email", address, "error", err)
		return apperr.Wrap(apperr.Upstream, "send activation email", err)
	}
	return nil
}

func (s *UserService) issue(u *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
