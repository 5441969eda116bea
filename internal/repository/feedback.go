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

type FeedbackRepository interface {
	ListFeedback(ctx context.Context) ([]*entity.Feedback, error)
	CreateFeedback(ctx context.Context, f *entity.Feedback) (*entity.Feedback, error)
	UpdateFeedbackStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Feedback, error)
}

type feedbackRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewFeedbackRepository(pool *pgxpool.Pool, logger *slog.Logger) FeedbackRepository {
	return &feedbackRepository{pool: pool, logger: logger}
}

const feedbackColumns = `id, rating, comment, status, category, created_at, updated_at`

func (r *feedbackRepository) ListFeedback(ctx context.Context) ([]*entity.Feedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list feedback", "error", err)
		return nil, common.WrapError(err, "list feedback")
	}
	defer rows.Close()

	var result []*entity.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *feedbackRepository) CreateFeedback(ctx context.Context, f *entity.Feedback) (*entity.Feedback, error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Status == "" {
		f.Status = entity.FeedbackStatusPending
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (id, rating, comment, status, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING `+feedbackColumns,
		f.ID, f.Rating, f.Comment, f.Status, f.Category)

	saved, err := scanFeedback(row)
	if err != nil {
		r.logger.Error("failed to create feedback", "error", err)
		return nil, common.NewAppError("FEEDBACK_CREATE", "insert feedback", err)
	}
	return saved, nil
}

func (r *feedbackRepository) UpdateFeedbackStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Feedback, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE feedback SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+feedbackColumns, id, status)

	saved, err := scanFeedback(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update feedback", "feedback_id", id, "error", err)
		return nil, err
	}
	return saved, nil
}

func scanFeedback(row pgx.Row) (*entity.Feedback, error) {
	var f entity.Feedback
	err := row.Scan(&f.ID, &f.Rating, &f.Comment, &f.Status, &f.Category,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
