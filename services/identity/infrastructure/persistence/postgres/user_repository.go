package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/database"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/repositories"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/infrastructure/persistence/postgres/db"
)

const emailUniqueKey = "users_email_key"

// UserRepository implements repositories.UserRepository against PostgreSQL.
// Emails are stored lower-cased, so lookups compare exactly.
type UserRepository struct {
	db  *database.Database
	bus *events.EventBus
}

func NewUserRepository(database *database.Database, bus *events.EventBus) *UserRepository {
	return &UserRepository{db: database, bus: bus}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByEmail(ctx, email)
	return userOrNotFound(row, err, identitydomain.ErrUserNotFound)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByID(ctx, id)
	return userOrNotFound(row, err, identitydomain.ErrUserNotFound)
}

func (r *UserRepository) InTx(ctx context.Context, fn func(repositories.UserTx) error) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(&userTx{q: db.New(tx), tx: tx, bus: r.bus})
	})
}

type userTx struct {
	q   *db.Queries
	tx  *sql.Tx
	bus *events.EventBus
}

func (t *userTx) Insert(ctx context.Context, u *models.User) error {
	err := t.q.InsertUser(ctx, db.InsertUserParams{
		ID:                       u.ID,
		Email:                    u.Email,
		DisplayName:              u.DisplayName,
		Role:                     u.Role,
		PasswordHash:             u.PasswordHash,
		Department:               u.Department.String(),
		Degree:                   u.Degree.String(),
		Sex:                      u.Sex.String(),
		AvatarUrl:                nullString(u.AvatarURL),
		Nationality:              nullString(u.Nationality.String()),
		Age:                      nullInt(u.Age),
		IsActive:                 u.IsActive,
		ActivationToken:          nullString(u.ActivationToken),
		ActivationTokenExpiresAt: activationExpiry(u),
		CreatedAt:                u.CreatedAt,
	})
	if err != nil {
		if database.IsUniqueViolation(err, emailUniqueKey) {
			return identitydomain.ErrAccountExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (t *userTx) LockByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := t.q.LockUserByEmail(ctx, email)
	return userOrNotFound(row, err, identitydomain.ErrUserNotFound)
}

func (t *userTx) LockByActivationToken(ctx context.Context, token string) (*models.User, error) {
	row, err := t.q.LockUserByActivationToken(ctx, nullString(token))
	return userOrNotFound(row, err, identitydomain.ErrActivationTokenNotFound)
}

func (t *userTx) SaveActivation(ctx context.Context, u *models.User) error {
	if err := t.q.UpdateUserActivation(ctx, db.UpdateUserActivationParams{
		ID:                       u.ID,
		IsActive:                 u.IsActive,
		ActivationToken:          nullString(u.ActivationToken),
		ActivationTokenExpiresAt: activationExpiry(u),
	}); err != nil {
		return fmt.Errorf("update user activation: %w", err)
	}
	return nil
}

func (t *userTx) Publish(ctx context.Context, topic string, e events.Event) error {
	if t.bus == nil {
		return nil
	}
	if err := t.bus.PublishTx(ctx, t.tx, topic, e); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func userOrNotFound(row db.IdentityUser, err error, notFound error) (*models.User, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return rowToUser(row), nil
}

func rowToUser(row db.IdentityUser) *models.User {
	u := &models.User{
		ID:              row.ID,
		Email:           row.Email,
		DisplayName:     row.DisplayName,
		Role:            row.Role,
		PasswordHash:    row.PasswordHash,
		Department:      models.Department(row.Department),
		Degree:          models.Degree(row.Degree),
		Sex:             models.Sex(row.Sex),
		AvatarURL:       row.AvatarUrl.String,
		Nationality:     models.Nationality(row.Nationality.String),
		IsActive:        row.IsActive,
		ActivationToken: row.ActivationToken.String,
		CreatedAt:       row.CreatedAt,
	}
	if row.Age.Valid {
		age := int(row.Age.Int32)
		u.Age = &age
	}
	if row.ActivationTokenExpiresAt.Valid {
		at := row.ActivationTokenExpiresAt.Time
		u.ActivationTokenExpiresAt = &at
	}
	return u
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func activationExpiry(u *models.User) sql.NullTime {
	if u.ActivationTokenExpiresAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *u.ActivationTokenExpiresAt, Valid: true}
}
