package payouts

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dashel-erp/dashel-erp/internal/platform/db"
)

// Repository persists bank payments in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the transactional operations used by the export flow.
type TxRepository interface {
	// SelectDraftsForUpdate locks and returns draft rows. With ids it
	// returns the drafts among them; with no ids it returns every draft.
	// Rows already exported are never selected.
	SelectDraftsForUpdate(ctx context.Context, ids []int64) ([]BankPayment, error)
	// MarkExported flips the locked drafts to exported with a shared batch
	// id, guarded by status='draft' so a row can transition only once.
	MarkExported(ctx context.Context, ids []int64, batchID string, exportedAt time.Time) (int64, error)
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

const listColumns = `bp.id, bp.supplier_id, s.name, bp.amount, bp.currency,
	COALESCE(bp.bank_name, s.bank_name), COALESCE(bp.account_number, s.bank_account), COALESCE(bp.branch, s.bank_branch),
	bp.status, bp.batch_id, bp.exported_at, bp.created_at`

// Insert creates a bank payment in draft status.
func (r *Repository) Insert(ctx context.Context, p BankPayment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO bank_payments (supplier_id, amount, currency, bank_name, account_number, branch, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,'draft',NOW()) RETURNING id`,
		p.SupplierID, p.Amount, p.Currency, p.BankName, p.AccountNumber, p.Branch).Scan(&id)
	return id, err
}

// List returns bank payments joined with supplier details, newest first,
// optionally filtered by status.
func (r *Repository) List(ctx context.Context, status Status) ([]BankPayment, error) {
	query := `SELECT ` + listColumns + ` FROM bank_payments bp JOIN suppliers s ON bp.supplier_id = s.id`
	args := []any{}
	if status != "" {
		query += ` WHERE bp.status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY bp.created_at DESC, bp.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *txRepository) SelectDraftsForUpdate(ctx context.Context, ids []int64) ([]BankPayment, error) {
	query := `SELECT ` + listColumns + ` FROM bank_payments bp JOIN suppliers s ON bp.supplier_id = s.id
WHERE bp.status = 'draft'`
	args := []any{}
	if len(ids) > 0 {
		query += ` AND bp.id = ANY($1)`
		args = append(args, ids)
	}
	query += ` ORDER BY bp.created_at ASC, bp.id ASC FOR UPDATE OF bp`

	rows, err := r.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *txRepository) MarkExported(ctx context.Context, ids []int64, batchID string, exportedAt time.Time) (int64, error) {
	tag, err := r.tx.Exec(ctx, `UPDATE bank_payments
SET status = 'exported', batch_id = $1, exported_at = $2
WHERE id = ANY($3) AND status = 'draft'`, batchID, exportedAt, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanPayments(rows pgx.Rows) ([]BankPayment, error) {
	var payments []BankPayment
	for rows.Next() {
		var p BankPayment
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.SupplierName, &p.Amount, &p.Currency,
			&p.BankName, &p.AccountNumber, &p.Branch, &p.Status, &p.BatchID, &p.ExportedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
