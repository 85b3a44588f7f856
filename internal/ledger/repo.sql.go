package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// foreignKeyViolation is the PostgreSQL error code raised when supplier_id
// does not reference an existing supplier.
const foreignKeyViolation = "23503"

// ErrUnknownSupplier indicates the referenced supplier does not exist.
var ErrUnknownSupplier = errors.New("unknown supplier")

// Repository defines ledger data access.
type Repository interface {
	InsertInvoice(ctx context.Context, inv Invoice) (int64, error)
	InsertPayment(ctx context.Context, pay Payment) (int64, error)
	ListInvoices(ctx context.Context, supplierID int64) ([]Invoice, error)
	ListPayments(ctx context.Context, supplierID int64) ([]Payment, error)
	Balances(ctx context.Context) ([]Balance, error)
	SupplierExists(ctx context.Context, supplierID int64) (bool, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) InsertInvoice(ctx context.Context, inv Invoice) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO supplier_invoices (supplier_id, amount, description, created_at)
VALUES ($1,$2,$3,NOW()) RETURNING id`, inv.SupplierID, inv.Amount, inv.Description).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return 0, ErrUnknownSupplier
		}
		return 0, err
	}
	return id, nil
}

func (r *pgRepository) InsertPayment(ctx context.Context, pay Payment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO supplier_payments (supplier_id, amount, method, reference, created_at)
VALUES ($1,$2,$3,$4,NOW()) RETURNING id`, pay.SupplierID, pay.Amount, pay.Method, pay.Reference).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return 0, ErrUnknownSupplier
		}
		return 0, err
	}
	return id, nil
}

func (r *pgRepository) ListInvoices(ctx context.Context, supplierID int64) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, supplier_id, amount, description, created_at
FROM supplier_invoices WHERE supplier_id = $1 ORDER BY created_at DESC, id DESC`, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.SupplierID, &inv.Amount, &inv.Description, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *pgRepository) ListPayments(ctx context.Context, supplierID int64) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, supplier_id, amount, method, reference, created_at
FROM supplier_payments WHERE supplier_id = $1 ORDER BY created_at DESC, id DESC`, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var pay Payment
		if err := rows.Scan(&pay.ID, &pay.SupplierID, &pay.Amount, &pay.Method, &pay.Reference, &pay.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, pay)
	}
	return payments, rows.Err()
}

// Balances recomputes every active supplier's position from the raw rows.
// No cached totals; the result always reflects the latest persisted state.
func (r *pgRepository) Balances(ctx context.Context) ([]Balance, error) {
	rows, err := r.pool.Query(ctx, `SELECT s.id, s.name,
	COALESCE((SELECT SUM(amount) FROM supplier_invoices WHERE supplier_id = s.id), 0) AS invoices_total,
	COALESCE((SELECT SUM(amount) FROM supplier_payments WHERE supplier_id = s.id), 0) AS payments_total
FROM suppliers s WHERE s.is_active ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []Balance
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.SupplierID, &b.SupplierName, &b.InvoicesTotal, &b.PaymentsTotal); err != nil {
			return nil, err
		}
		b.Owed = b.InvoicesTotal - b.PaymentsTotal
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

func (r *pgRepository) SupplierExists(ctx context.Context, supplierID int64) (bool, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM suppliers WHERE id = $1`, supplierID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
