package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/entity"
)

// ErrEmailTaken is returned when a signup collides with an existing account.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	CreateUser(ctx context.Context, u *entity.User) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateEmailIntegration(ctx context.Context, id uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error)
}

type userRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, logger *slog.Logger) UserRepository {
	return &userRepository{pool: pool, logger: logger}
}

const userColumns = `id, email, password_hash, name, company, phone, email_integration, created_at, updated_at`

func (r *userRepository) CreateUser(ctx context.Context, u *entity.User) (*entity.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, name, company, phone, email_integration, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, NULL, now(), now())
		RETURNING `+userColumns,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Company, u.Phone)

	saved, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		r.logger.Error("failed to create user", "email", u.Email, "error", err)
		return nil, common.NewAppError("USER_CREATE", "insert user", err)
	}
	return saved, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = lower($1)`, email)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return u, err
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return u, err
}

// UpdateEmailIntegration replaces the account's integration status. A nil
// integration clears it.
func (r *userRepository) UpdateEmailIntegration(ctx context.Context, id uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error) {
	var payload any
	if integ != nil {
		raw, err := json.Marshal(integ)
		if err != nil {
			return nil, common.WrapError(err, "encode email integration")
		}
		payload = raw
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET email_integration = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, payload)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update email integration", "user_id", id, "error", err)
		return nil, common.NewAppError("USER_UPDATE", "update email integration", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u     entity.User
		integ []byte
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Company,
		&u.Phone, &integ, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(integ) > 0 {
		u.EmailIntegration = &entity.EmailIntegration{}
		if err := json.Unmarshal(integ, u.EmailIntegration); err != nil {
			return nil, common.WrapError(err, "decode email integration")
		}
	}
	return &u, nil
}
