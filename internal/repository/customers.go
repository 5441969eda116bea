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

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	CreateCustomer(ctx context.Context, c *entity.Customer) (*entity.Customer, error)
	UpdateCustomer(ctx context.Context, c *entity.Customer) (*entity.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type customerRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCustomerRepository(pool *pgxpool.Pool, logger *slog.Logger) CustomerRepository {
	return &customerRepository{pool: pool, logger: logger}
}

const customerColumns = `id, name, email, phone, orders, total_spent, last_order,
	status, location, join_date, created_at, updated_at`

func (r *customerRepository) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		r.logger.Error("failed to list customers", "error", err)
		return nil, common.WrapError(err, "list customers")
	}
	defer rows.Close()

	var result []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *customerRepository) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return c, err
}

func (r *customerRepository) CreateCustomer(ctx context.Context, c *entity.Customer) (*entity.Customer, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO customers (id, name, email, phone, orders, total_spent, last_order,
			status, location, join_date, created_at, updated_at)
		VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING `+customerColumns,
		c.ID, c.Name, c.Email, c.Phone, c.Orders, c.TotalSpent, c.LastOrder,
		c.Status, c.Location, c.JoinDate)

	saved, err := scanCustomer(row)
	if err != nil {
		r.logger.Error("failed to create customer", "email", c.Email, "error", err)
		return nil, common.NewAppError("CUSTOMER_CREATE", "insert customer", err)
	}
	return saved, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, c *entity.Customer) (*entity.Customer, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $2, email = lower($3), phone = $4, orders = $5, total_spent = $6,
			last_order = $7, status = $8, location = $9, join_date = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+customerColumns,
		c.ID, c.Name, c.Email, c.Phone, c.Orders, c.TotalSpent, c.LastOrder,
		c.Status, c.Location, c.JoinDate)

	saved, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update customer", "customer_id", c.ID, "error", err)
		return nil, err
	}
	return saved, nil
}

func (r *customerRepository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete customer", "customer_id", id, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Orders, &c.TotalSpent,
		&c.LastOrder, &c.Status, &c.Location, &c.JoinDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
