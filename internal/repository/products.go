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

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewProductRepository(pool *pgxpool.Pool, logger *slog.Logger) ProductRepository {
	return &productRepository{pool: pool, logger: logger}
}

const productColumns = `id, name, description, sku, category, price, quantity, status, created_at, updated_at`

func (r *productRepository) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM inventory ORDER BY name`)
	if err != nil {
		r.logger.Error("failed to list products", "error", err)
		return nil, common.WrapError(err, "list products")
	}
	defer rows.Close()

	var result []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM inventory WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return p, err
}

func (r *productRepository) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Status = entity.StockStatus(p.Quantity)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO inventory (id, name, description, sku, category, price, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.SKU, p.Category, p.Price, p.Quantity, p.Status)

	saved, err := scanProduct(row)
	if err != nil {
		r.logger.Error("failed to create product", "name", p.Name, "error", err)
		return nil, common.NewAppError("PRODUCT_CREATE", "insert product", err)
	}
	return saved, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	p.Status = entity.StockStatus(p.Quantity)

	row := r.pool.QueryRow(ctx, `
		UPDATE inventory
		SET name = $2, description = $3, sku = $4, category = $5, price = $6,
			quantity = $7, status = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.SKU, p.Category, p.Price, p.Quantity, p.Status)

	saved, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update product", "product_id", p.ID, "error", err)
		return nil, err
	}
	return saved, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete product", "product_id", id, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Category,
		&p.Price, &p.Quantity, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
