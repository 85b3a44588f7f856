// Package search implements the cross-entity substring search.
package search

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Result is one search hit.
type Result struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Results groups hits by entity.
type Results struct {
	Products  []Result `json:"products"`
	Suppliers []Result `json:"suppliers"`
}

// Repository runs the search queries in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Products matches inventory product names case-insensitively.
func (r *Repository) Products(ctx context.Context, query string) ([]Result, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, product_name FROM inventory
WHERE product_name ILIKE '%' || $1 || '%' ORDER BY product_name LIMIT 20`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, "product")
}

// Suppliers matches active supplier names case-insensitively.
func (r *Repository) Suppliers(ctx context.Context, query string) ([]Result, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM suppliers
WHERE is_active AND name ILIKE '%' || $1 || '%' ORDER BY name LIMIT 20`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, "supplier")
}

type scannable interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collect(rows scannable, typ string) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.ID, &res.Name); err != nil {
			return nil, err
		}
		res.Type = typ
		results = append(results, res)
	}
	return results, rows.Err()
}
