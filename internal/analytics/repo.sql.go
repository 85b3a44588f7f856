package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregation queries in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SalesBuckets groups sales by the granularity's period key. Cost comes from
// the current buying price of the matching inventory row, zero when no row
// matches the product name.
func (r *Repository) SalesBuckets(ctx context.Context, filter AggregateFilter) ([]Bucket, error) {
	query := fmt.Sprintf(`SELECT to_char(s.sale_date, '%s') AS period,
COALESCE(SUM(s.total_price), 0),
COALESCE(SUM(s.quantity * COALESCE(i.buying_price, 0)), 0)
FROM sales s
LEFT JOIN inventory i ON i.product_name = s.product_name`, filter.Granularity.periodFormat())

	var args []any
	where := ""
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND s.sale_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND s.sale_date <= $%d", len(args))
	}
	if where != "" {
		query += " WHERE 1=1" + where
	}
	query += " GROUP BY period ORDER BY period ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []Bucket
	for rows.Next() {
		var b Bucket
		if err := rows.Scan(&b.Period, &b.SalesTotal, &b.CostTotal); err != nil {
			return nil, err
		}
		b.Profit = b.SalesTotal - b.CostTotal
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// SalesTotals returns the all-time sales revenue and profit.
func (r *Repository) SalesTotals(ctx context.Context) (sales, profit float64, err error) {
	err = r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(s.total_price), 0),
COALESCE(SUM(s.total_price - s.quantity * COALESCE(i.buying_price, 0)), 0)
FROM sales s
LEFT JOIN inventory i ON i.product_name = s.product_name`).Scan(&sales, &profit)
	return sales, profit, err
}

// InventoryTotals returns the stock value at selling price, the count of
// items at or below their reorder level, and the product count.
func (r *Repository) InventoryTotals(ctx context.Context) (value float64, lowStock, products int64, err error) {
	err = r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(quantity * selling_price), 0),
COUNT(*) FILTER (WHERE quantity <= reorder_level),
COUNT(*)
FROM inventory`).Scan(&value, &lowStock, &products)
	return value, lowStock, products, err
}

// SupplierCount counts active suppliers.
func (r *Repository) SupplierCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE is_active`).Scan(&n)
	return n, err
}

// RecentSales returns the latest sales, newest first.
func (r *Repository) RecentSales(ctx context.Context, limit int) ([]RecentSale, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, product_name, quantity, total_price, sale_date
FROM sales ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []RecentSale
	for rows.Next() {
		var s RecentSale
		if err := rows.Scan(&s.ID, &s.ProductName, &s.Quantity, &s.TotalPrice, &s.SaleDate); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
