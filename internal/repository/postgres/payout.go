package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/repository"

	"github.com/lib/pq"
)

type payoutRepository struct {
	db *sql.DB
}

func NewPayoutRepository(db *sql.DB) repository.PayoutRepository {
	return &payoutRepository{db: db}
}

const payoutColumns = `id, vendor_id, amount, payout_method, account_details, request_status, processed_by, processed_at, COALESCE(rejection_reason, ''), COALESCE(failure_reason, ''), COALESCE(transfer_code, ''), COALESCE(transaction_reference, ''), created_on, updated_on`

func (r *payoutRepository) Create(ctx context.Context, req *domain.PayoutRequest) error {
	details, err := json.Marshal(req.AccountDetails)
	if err != nil {
		return err
	}
	query := `INSERT INTO payout_requests (vendor_id, amount, payout_method, account_details, request_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	req.CreatedOn = now
	req.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, req.VendorID, req.Amount, req.PayoutMethod, details, req.Status, now, now).Scan(&req.ID)
}

func scanPayout(row interface{ Scan(...any) error }) (*domain.PayoutRequest, error) {
	req := &domain.PayoutRequest{}
	var details []byte
	err := row.Scan(&req.ID, &req.VendorID, &req.Amount, &req.PayoutMethod, &details,
		&req.Status, &req.ProcessedBy, &req.ProcessedAt, &req.RejectionReason,
		&req.FailureReason, &req.TransferCode, &req.TransactionReference,
		&req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &req.AccountDetails); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (r *payoutRepository) GetByID(ctx context.Context, id int32) (*domain.PayoutRequest, error) {
	query := `SELECT ` + payoutColumns + ` FROM payout_requests WHERE id = $1`
	req, err := scanPayout(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return req, err
}

// statusWriteArgs routes the reason into the right column for the target
// status and stamps the operator when present.
func statusWriteArgs(status domain.PayoutStatus, processedBy *int32, reason string) (rejection, failure sql.NullString, by sql.NullInt32, at sql.NullTime) {
	if status == domain.PayoutStatusRejected && reason != "" {
		rejection = sql.NullString{String: reason, Valid: true}
	}
	if status == domain.PayoutStatusFailed && reason != "" {
		failure = sql.NullString{String: reason, Valid: true}
	}
	if processedBy != nil {
		by = sql.NullInt32{Int32: *processedBy, Valid: true}
		at = sql.NullTime{Time: time.Now(), Valid: true}
	}
	return rejection, failure, by, at
}

func (r *payoutRepository) UpdateStatus(ctx context.Context, id int32, status domain.PayoutStatus, processedBy *int32, reason string) (bool, error) {
	rejection, failure, by, at := statusWriteArgs(status, processedBy, reason)
	res, err := r.db.ExecContext(ctx,
		`UPDATE payout_requests SET request_status=$1,
		        rejection_reason=COALESCE($2, rejection_reason),
		        failure_reason=COALESCE($3, failure_reason),
		        processed_by=COALESCE($4, processed_by),
		        processed_at=COALESCE($5, processed_at),
		        updated_on=$6
		 WHERE id=$7`,
		status, rejection, failure, by, at, time.Now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *payoutRepository) UpdateStatusFrom(ctx context.Context, id int32, from, to domain.PayoutStatus, processedBy *int32, reason string) (bool, error) {
	rejection, failure, by, at := statusWriteArgs(to, processedBy, reason)
	res, err := r.db.ExecContext(ctx,
		`UPDATE payout_requests SET request_status=$1,
		        rejection_reason=COALESCE($2, rejection_reason),
		        failure_reason=COALESCE($3, failure_reason),
		        processed_by=COALESCE($4, processed_by),
		        processed_at=COALESCE($5, processed_at),
		        updated_on=$6
		 WHERE id=$7 AND request_status=$8`,
		to, rejection, failure, by, at, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *payoutRepository) UpdateTransferCode(ctx context.Context, id int32, transferCode, transactionRef string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payout_requests SET transfer_code=$1, transaction_reference=$2, updated_on=$3 WHERE id=$4`,
		transferCode, transactionRef, time.Now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *payoutRepository) ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.PayoutRequest, int32, error) {
	offset := (page - 1) * pageSize

	where := `WHERE vendor_id = $1`
	args := []interface{}{vendorID}
	if status != "" {
		where += ` AND request_status = $2`
		args = append(args, status)
	}

	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payout_requests `+where, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + payoutColumns + ` FROM payout_requests ` + where +
		fmt.Sprintf(` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []domain.PayoutRequest
	for rows.Next() {
		req, err := scanPayout(rows)
		if err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, count, rows.Err()
}

func (r *payoutRepository) ListByStatus(ctx context.Context, status domain.PayoutStatus) ([]domain.PayoutRequest, error) {
	query := `SELECT ` + payoutColumns + ` FROM payout_requests WHERE request_status = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.PayoutRequest
	for rows.Next() {
		req, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

func (r *payoutRepository) SumAmountInStatuses(ctx context.Context, vendorID int32, statuses []domain.PayoutStatus) (float64, error) {
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	var sum float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM payout_requests WHERE vendor_id = $1 AND request_status = ANY($2)`
	err := r.db.QueryRowContext(ctx, query, vendorID, pq.Array(strs)).Scan(&sum)
	return sum, err
}
