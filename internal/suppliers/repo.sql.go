package suppliers

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines supplier data access.
type Repository interface {
	ListActive(ctx context.Context) ([]Supplier, error)
	Create(ctx context.Context, supplier Supplier) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const supplierColumns = `id, name, phone, email, address, products_supplied, payment_terms, bank_name, bank_account, bank_branch, is_active, created_at, updated_at`

func (r *pgRepository) ListActive(ctx context.Context) ([]Supplier, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.ProductsSupplied, &s.PaymentTerms, &s.BankName, &s.BankAccount, &s.BankBranch, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *pgRepository) Create(ctx context.Context, supplier Supplier) (int64, error) {
	var id int64
	now := time.Now()
	err := r.pool.QueryRow(ctx, `INSERT INTO suppliers (name, phone, email, address, products_supplied, payment_terms, bank_name, bank_account, bank_branch, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11) RETURNING id`,
		supplier.Name, supplier.Phone, supplier.Email, supplier.Address, supplier.ProductsSupplied, supplier.PaymentTerms,
		supplier.BankName, supplier.BankAccount, supplier.BankBranch, supplier.IsActive, now).Scan(&id)
	return id, err
}

func (r *pgRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM suppliers WHERE id = $1`, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
