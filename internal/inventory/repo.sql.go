package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

// ErrUnknownSupplier is returned when an item references a supplier id with
// no matching row.
var ErrUnknownSupplier = errors.New("supplier does not exist")

// Repository persists inventory items in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns every item with its supplier name, ordered by product name.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT i.id, i.product_name, i.quantity, i.buying_price, i.selling_price,
i.supplier_id, s.name, i.reorder_level, i.description, i.created_at, i.updated_at
FROM inventory i
LEFT JOIN suppliers s ON s.id = i.supplier_id
ORDER BY i.product_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ProductName, &it.Quantity, &it.BuyingPrice, &it.SellingPrice,
			&it.SupplierID, &it.SupplierName, &it.ReorderLevel, &it.Description, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Insert adds one item and returns its id.
func (r *Repository) Insert(ctx context.Context, item Item) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO inventory (product_name, quantity, buying_price, selling_price, supplier_id, reorder_level, description, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW()) RETURNING id`,
		item.ProductName, item.Quantity, item.BuyingPrice, item.SellingPrice,
		item.SupplierID, item.ReorderLevel, item.Description).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return 0, ErrUnknownSupplier
		}
		return 0, err
	}
	return id, nil
}
