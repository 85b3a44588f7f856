package stkpush

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists push attempts in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const pushColumns = `id, phone, amount, reference, status, response, merchant_request_id, checkout_request_id, result_code, result_desc, paybill, merchant_account, attempts, created_at, updated_at`

// Insert stores one push attempt and returns its id.
func (r *Repository) Insert(ctx context.Context, push Push) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO stk_pushes (phone, amount, reference, status, response, merchant_request_id, checkout_request_id, result_code, result_desc, paybill, merchant_account, attempts, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW(),NOW()) RETURNING id`,
		push.Phone, push.Amount, push.Reference, push.Status, push.Response,
		push.MerchantRequestID, push.CheckoutRequestID, push.ResultCode, push.ResultDesc,
		push.Paybill, push.MerchantAccount, push.Attempts).Scan(&id)
	return id, err
}

// History returns the most recent push attempts, newest first.
func (r *Repository) History(ctx context.Context, limit int) ([]Push, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+pushColumns+` FROM stk_pushes ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pushes []Push
	for rows.Next() {
		var p Push
		if err := rows.Scan(&p.ID, &p.Phone, &p.Amount, &p.Reference, &p.Status, &p.Response,
			&p.MerchantRequestID, &p.CheckoutRequestID, &p.ResultCode, &p.ResultDesc,
			&p.Paybill, &p.MerchantAccount, &p.Attempts, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pushes = append(pushes, p)
	}
	return pushes, rows.Err()
}

// UpdateByRequestIDs resolves the matching pending push when the gateway
// callback arrives. The row is matched on either gateway identifier since
// some callbacks omit one of the two.
func (r *Repository) UpdateByRequestIDs(ctx context.Context, status Status, resultCode, resultDesc, merchantRequestID, checkoutRequestID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE stk_pushes
SET status = $1, result_code = $2, result_desc = $3,
    merchant_request_id = $4, checkout_request_id = $5, updated_at = NOW()
WHERE merchant_request_id = $4 OR checkout_request_id = $5`,
		status, resultCode, resultDesc, merchantRequestID, checkoutRequestID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkStaleFailed fails pending pushes older than the cutoff. The gateway
// never calls back for prompts the customer ignored, so a sweep closes them.
func (r *Repository) MarkStaleFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE stk_pushes
SET status = $1, result_desc = 'Timed out waiting for gateway callback', updated_at = NOW()
WHERE status = $2 AND created_at < $3`,
		StatusFailed, StatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
