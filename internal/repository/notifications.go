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

// ErrNotificationExists is returned when the same provider email ID is
// recorded twice.
var ErrNotificationExists = errors.New("notification already exists for email")

// NotificationPage carries one page of a user's notification feed plus the
// counters the dashboard renders alongside it.
type NotificationPage struct {
	Notifications []*entity.EmailNotification
	Page          int
	TotalPages    int
	TotalItems    int64
	PerPage       int
	UnreadCount   int64
}

type EmailNotificationRepository interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, page, limit int, unreadOnly bool) (*NotificationPage, error)
	CreateNotification(ctx context.Context, n *entity.EmailNotification) (*entity.EmailNotification, error)
}

type notificationRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewEmailNotificationRepository(pool *pgxpool.Pool, logger *slog.Logger) EmailNotificationRepository {
	return &notificationRepository{pool: pool, logger: logger}
}

const notificationColumns = `id, user_id, email_id, subject, sender, received_at,
	is_read, is_processed, order_extracted, raw_email_content, processing_status,
	processing_error, created_at, updated_at`

func (r *notificationRepository) ListNotifications(ctx context.Context, userID uuid.UUID, page, limit int, unreadOnly bool) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	filter := `user_id = $1`
	if unreadOnly {
		filter += ` AND NOT is_read`
	}

	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM email_notifications WHERE `+filter, userID).Scan(&total)
	if err != nil {
		r.logger.Error("failed to count notifications", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "count notifications")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM email_notifications
		 WHERE `+filter+`
		 ORDER BY received_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, (page-1)*limit)
	if err != nil {
		r.logger.Error("failed to list notifications", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list notifications")
	}
	defer rows.Close()

	var items []*entity.EmailNotification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "list notifications")
	}

	var unread int64
	err = r.pool.QueryRow(ctx,
		`SELECT count(*) FROM email_notifications WHERE user_id = $1 AND NOT is_read`,
		userID).Scan(&unread)
	if err != nil {
		return nil, common.WrapError(err, "count unread notifications")
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &NotificationPage{
		Notifications: items,
		Page:          page,
		TotalPages:    totalPages,
		TotalItems:    total,
		PerPage:       limit,
		UnreadCount:   unread,
	}, nil
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n *entity.EmailNotification) (*entity.EmailNotification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.ProcessingStatus == "" {
		n.ProcessingStatus = entity.NotificationPending
	}

	var extracted any
	if n.OrderExtracted != nil {
		raw, err := json.Marshal(n.OrderExtracted)
		if err != nil {
			return nil, common.WrapError(err, "encode extracted order")
		}
		extracted = raw
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO email_notifications (id, user_id, email_id, subject, sender,
			received_at, is_read, is_processed, order_extracted, raw_email_content,
			processing_status, processing_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		RETURNING `+notificationColumns,
		n.ID, n.UserID, n.EmailID, n.Subject, n.Sender, n.ReceivedAt,
		n.IsRead, n.IsProcessed, extracted, n.RawEmailContent,
		n.ProcessingStatus, n.ProcessingError)

	saved, err := scanNotification(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrNotificationExists
		}
		r.logger.Error("failed to create notification", "email_id", n.EmailID, "error", err)
		return nil, common.NewAppError("NOTIFICATION_CREATE", "insert notification", err)
	}
	return saved, nil
}

func scanNotification(row pgx.Row) (*entity.EmailNotification, error) {
	var (
		n         entity.EmailNotification
		extracted []byte
	)
	err := row.Scan(&n.ID, &n.UserID, &n.EmailID, &n.Subject, &n.Sender,
		&n.ReceivedAt, &n.IsRead, &n.IsProcessed, &extracted, &n.RawEmailContent,
		&n.ProcessingStatus, &n.ProcessingError, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(extracted) > 0 {
		n.OrderExtracted = &entity.NotificationOrderSummary{}
		if err := json.Unmarshal(extracted, n.OrderExtracted); err != nil {
			return nil, common.WrapError(err, "decode extracted order")
		}
	}
	return &n, nil
}
