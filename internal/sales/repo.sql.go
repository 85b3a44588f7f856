package sales

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dashel-erp/dashel-erp/internal/platform/db"
)

// Repository persists sales in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the transactional operations used when recording a
// sale: the insert and the stock decrement commit or roll back together.
type TxRepository interface {
	InsertSale(ctx context.Context, sale Sale) (int64, error)
	DecrementStock(ctx context.Context, productName string, quantity float64) error
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

// List returns one page of sales, newest sale date first, plus the total
// row count.
func (r *Repository) List(ctx context.Context, page, limit int) ([]Sale, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, `SELECT id, product_name, quantity, unit_price, total_price, sale_date, notes, created_at
FROM sales ORDER BY sale_date DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sales []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.SaleDate, &s.Notes, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		sales = append(sales, s)
	}
	return sales, total, rows.Err()
}

func (r *txRepository) InsertSale(ctx context.Context, sale Sale) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `INSERT INTO sales (product_name, quantity, unit_price, total_price, sale_date, notes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,NOW()) RETURNING id`,
		sale.ProductName, sale.Quantity, sale.UnitPrice, sale.TotalPrice, sale.SaleDate, sale.Notes).Scan(&id)
	return id, err
}

// DecrementStock reduces the inventory quantity for the named product.
// There is no floor; quantity may go negative, which the dashboard surfaces
// as an oversold item. Products are matched by name, not by key, so a sale
// of an unknown product simply touches no rows.
func (r *txRepository) DecrementStock(ctx context.Context, productName string, quantity float64) error {
	_, err := r.tx.Exec(ctx, `UPDATE inventory SET quantity = quantity - $1, updated_at = NOW() WHERE product_name = $2`,
		quantity, productName)
	return err
}
