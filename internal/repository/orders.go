package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/entity"
)

// OrderUpdate carries the mutable order fields for partial updates from the
// dashboard. Nil means "leave unchanged".
type OrderUpdate struct {
	Date           *string
	Time           *string
	Products       *[]entity.OrderProduct
	Status         *string
	OrderLink      *string
	Email          *string
	Name           *string
	RequiresReview *bool
}

// AIOrderStats aggregates how the email pipeline has been performing, for the
// dashboard's AI overview panel.
type AIOrderStats struct {
	TotalOrders         int64   `json:"totalOrders"`
	AIProcessedOrders   int64   `json:"aiProcessedOrders"`
	OrdersNeedingReview int64   `json:"ordersNeedingReview"`
	AverageConfidence   float64 `json:"averageConfidence"`
}

type OrderRepository interface {
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	CreateOrder(ctx context.Context, o *entity.Order) (*entity.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, upd OrderUpdate) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	ListOrdersNeedingReview(ctx context.Context, confidenceBelow float64, limit int32) ([]*entity.Order, error)
	ListRecentAIOrders(ctx context.Context, limit int32) ([]*entity.Order, error)
	AIOrderStats(ctx context.Context) (*AIOrderStats, error)
}

type orderRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewOrderRepository(pool *pgxpool.Pool, logger *slog.Logger) OrderRepository {
	return &orderRepository{pool: pool, logger: logger}
}

const orderColumns = `id, date, time, products, status, order_link, email, name,
	ai_processed, ai_confidence, original_email, requires_review, total_amount,
	shipping_address, created_at, updated_at`

func (r *orderRepository) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list orders", "error", err)
		return nil, common.WrapError(err, "list orders")
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListOrdersNeedingReview returns the review queue: flagged orders, orders
// whose extraction confidence sits below the review ceiling, and orders still
// pending, newest first.
func (r *orderRepository) ListOrdersNeedingReview(ctx context.Context, confidenceBelow float64, limit int32) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE requires_review OR ai_confidence < $1 OR status = $2
		 ORDER BY created_at DESC LIMIT $3`,
		confidenceBelow, entity.OrderStatusPending, limit)
	if err != nil {
		r.logger.Error("failed to list review queue", "error", err)
		return nil, common.WrapError(err, "list orders needing review")
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepository) ListRecentAIOrders(ctx context.Context, limit int32) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE ai_processed ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		r.logger.Error("failed to list AI orders", "error", err)
		return nil, common.WrapError(err, "list recent AI orders")
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepository) AIOrderStats(ctx context.Context) (*AIOrderStats, error) {
	var s AIOrderStats
	err := r.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE ai_processed),
		       count(*) FILTER (WHERE requires_review),
		       COALESCE(avg(ai_confidence) FILTER (WHERE ai_confidence > 0), 0)
		FROM orders`).
		Scan(&s.TotalOrders, &s.AIProcessedOrders, &s.OrdersNeedingReview, &s.AverageConfidence)
	if err != nil {
		r.logger.Error("failed to aggregate order stats", "error", err)
		return nil, common.WrapError(err, "aggregate order stats")
	}
	return &s, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get order", "order_id", id, "error", err)
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	products, err := json.Marshal(o.Products)
	if err != nil {
		return nil, common.WrapError(err, "encode products")
	}
	var originalEmail, shippingAddress []byte
	if o.OriginalEmail != nil {
		if originalEmail, err = json.Marshal(o.OriginalEmail); err != nil {
			return nil, common.WrapError(err, "encode original email")
		}
	}
	if o.ShippingAddress != nil {
		if shippingAddress, err = json.Marshal(o.ShippingAddress); err != nil {
			return nil, common.WrapError(err, "encode shipping address")
		}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO orders (id, date, time, products, status, order_link, email, name,
			ai_processed, ai_confidence, original_email, requires_review, total_amount,
			shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		RETURNING `+orderColumns,
		o.ID, o.Date, o.Time, products, o.Status, o.OrderLink, o.Email, o.Name,
		o.AIProcessed, o.AIConfidence, originalEmail, o.RequiresReview, o.TotalAmount,
		shippingAddress)

	saved, err := scanOrder(row)
	if err != nil {
		r.logger.Error("failed to create order", "order_link", o.OrderLink, "error", err)
		return nil, common.NewAppError("ORDER_CREATE", "insert order", err)
	}
	return saved, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, id uuid.UUID, upd OrderUpdate) (*entity.Order, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Date != nil {
		add("date", *upd.Date)
	}
	if upd.Time != nil {
		add("time", *upd.Time)
	}
	if upd.Products != nil {
		b, err := json.Marshal(*upd.Products)
		if err != nil {
			return nil, common.WrapError(err, "encode products")
		}
		add("products", b)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.OrderLink != nil {
		add("order_link", *upd.OrderLink)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.RequiresReview != nil {
		add("requires_review", *upd.RequiresReview)
	}

	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), orderColumns)
	row := r.pool.QueryRow(ctx, query, args...)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update order", "order_id", id, "error", err)
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete order", "order_id", id, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var result []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o               entity.Order
		products        []byte
		originalEmail   []byte
		shippingAddress []byte
	)
	err := row.Scan(&o.ID, &o.Date, &o.Time, &products, &o.Status, &o.OrderLink,
		&o.Email, &o.Name, &o.AIProcessed, &o.AIConfidence, &originalEmail,
		&o.RequiresReview, &o.TotalAmount, &shippingAddress, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		if err := json.Unmarshal(products, &o.Products); err != nil {
			return nil, common.WrapError(err, "decode products")
		}
	}
	if len(originalEmail) > 0 {
		o.OriginalEmail = &entity.OriginalEmail{}
		if err := json.Unmarshal(originalEmail, o.OriginalEmail); err != nil {
			return nil, common.WrapError(err, "decode original email")
		}
	}
	if len(shippingAddress) > 0 {
		o.ShippingAddress = &entity.ShippingAddress{}
		if err := json.Unmarshal(shippingAddress, o.ShippingAddress); err != nil {
			return nil, common.WrapError(err, "decode shipping address")
		}
	}
	return &o, nil
}
