package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/santanarscs/orderdesk/internal/domain"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, price, quantity, created_at, updated_at`

// FindByIDs returns the subset of products that exist; absent ids are not an
// error.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	const query = `
SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1::uuid[])
ORDER BY id`

	return r.queryProducts(ctx, query, ids)
}

// GetForUpdate is FindByIDs with row locks held until the surrounding
// transaction ends. Rows lock in id order.
func (r *ProductRepository) GetForUpdate(ctx context.Context, ids []string) ([]domain.Product, error) {
	const query = `
SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1::uuid[])
ORDER BY id
FOR UPDATE`

	return r.queryProducts(ctx, query, ids)
}

// DecrementQuantities applies each adjustment only when enough stock remains,
// so a stale snapshot can never drive quantity negative. A failed guard
// surfaces as a transaction conflict for the caller to retry against fresh
// state.
func (r *ProductRepository) DecrementQuantities(ctx context.Context, adjustments []domain.StockAdjustment) ([]domain.Product, error) {
	const stmt = `
UPDATE products
SET quantity = quantity - $2, updated_at = NOW()
WHERE id = $1 AND quantity >= $2
RETURNING ` + productColumns

	updated := make([]domain.Product, 0, len(adjustments))
	for _, adj := range adjustments {
		var p domain.Product
		err := r.queryRow(ctx, stmt, adj.ProductID, adj.Quantity).
			Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			if isInvalidUUID(err) {
				return nil, domain.ErrInvalidID
			}
			if err == pgx.ErrNoRows || isCheckViolation(err) {
				return nil, fmt.Errorf("%w: stock changed for product %s", domain.ErrTxConflict, adj.ProductID)
			}
			return nil, fmt.Errorf("decrement quantity: %w", err)
		}
		updated = append(updated, p)
	}
	return updated, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product domain.Product) error {
	const stmt = `
INSERT INTO products (id, name, price, quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		product.ID,
		product.Name,
		product.Price,
		product.Quantity,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductNameTaken
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE name = $1`

	var p domain.Product
	err := r.queryRow(ctx, query, name).
		Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find product by name: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p domain.Product
	err := r.queryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY name`

	return r.queryProducts(ctx, query)
}

func (r *ProductRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]domain.Product, error) {
	rows, err := r.query(ctx, sql, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("read products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ProductRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *ProductRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
