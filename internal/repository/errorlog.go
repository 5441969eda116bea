package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/entity"
)

type ErrorLogRepository interface {
	ListErrors(ctx context.Context) ([]*entity.ErrorLog, error)
	CreateError(ctx context.Context, e *entity.ErrorLog) (*entity.ErrorLog, error)
	UpdateErrorStatus(ctx context.Context, id uuid.UUID, status string) (*entity.ErrorLog, error)
}

type errorLogRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewErrorLogRepository(pool *pgxpool.Pool, logger *slog.Logger) ErrorLogRepository {
	return &errorLogRepository{pool: pool, logger: logger}
}

const errorColumns = `id, title, description, severity, status, category, frequency, created_at, updated_at`

func (r *errorLogRepository) ListErrors(ctx context.Context) ([]*entity.ErrorLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+errorColumns+` FROM errors ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list errors", "error", err)
		return nil, common.WrapError(err, "list errors")
	}
	defer rows.Close()

	var result []*entity.ErrorLog
	for rows.Next() {
		e, err := scanErrorLog(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *errorLogRepository) CreateError(ctx context.Context, e *entity.ErrorLog) (*entity.ErrorLog, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = entity.ErrorStatusActive
	}
	if e.Frequency <= 0 {
		e.Frequency = 1
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO errors (id, title, description, severity, status, category, frequency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING `+errorColumns,
		e.ID, e.Title, e.Description, e.Severity, e.Status, e.Category, e.Frequency)

	saved, err := scanErrorLog(row)
	if err != nil {
		r.logger.Error("failed to create error record", "title", e.Title, "error", err)
		return nil, common.NewAppError("ERROR_CREATE", "insert error record", err)
	}
	return saved, nil
}

func (r *errorLogRepository) UpdateErrorStatus(ctx context.Context, id uuid.UUID, status string) (*entity.ErrorLog, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE errors SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+errorColumns, id, status)

	saved, err := scanErrorLog(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update error record", "error_id", id, "error", err)
		return nil, err
	}
	return saved, nil
}

func scanErrorLog(row pgx.Row) (*entity.ErrorLog, error) {
	var e entity.ErrorLog
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Severity, &e.Status,
		&e.Category, &e.Frequency, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
