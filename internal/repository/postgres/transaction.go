package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, code, buyer_id, seller_id, book_id, transaction_type, quantity, unit_price, total_amount, commission_amount, seller_amount, rental_duration, COALESCE(rental_unit, ''), payment_status, delivery_status, COALESCE(payment_reference, ''), created_on, updated_on`

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `INSERT INTO transactions (code, buyer_id, seller_id, book_id, transaction_type, quantity, unit_price, total_amount, commission_amount, seller_amount, rental_duration, rental_unit, payment_status, delivery_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	now := time.Now()
	tx.CreatedOn = now
	tx.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		tx.Code, tx.BuyerID, tx.SellerID, tx.BookID, tx.Type, tx.Quantity,
		tx.UnitPrice, tx.TotalAmount, tx.CommissionAmount, tx.SellerAmount,
		tx.RentalDuration, tx.RentalUnit, tx.PaymentStatus, tx.DeliveryStatus,
		now, now,
	).Scan(&tx.ID)
}

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	tx := &domain.Transaction{}
	err := row.Scan(&tx.ID, &tx.Code, &tx.BuyerID, &tx.SellerID, &tx.BookID, &tx.Type,
		&tx.Quantity, &tx.UnitPrice, &tx.TotalAmount, &tx.CommissionAmount, &tx.SellerAmount,
		&tx.RentalDuration, &tx.RentalUnit, &tx.PaymentStatus, &tx.DeliveryStatus,
		&tx.PaymentReference, &tx.CreatedOn, &tx.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return tx, err
}

func (r *transactionRepository) GetByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE code = $1`
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return tx, err
}

func (r *transactionRepository) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus, reference string) (bool, error) {
	var res sql.Result
	var err error
	if reference != "" {
		res, err = r.db.ExecContext(ctx,
			`UPDATE transactions SET payment_status=$1, payment_reference=$2, updated_on=$3 WHERE id=$4`,
			status, reference, time.Now(), id)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE transactions SET payment_status=$1, updated_on=$2 WHERE id=$3`,
			status, time.Now(), id)
	}
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *transactionRepository) UpdateDeliveryStatus(ctx context.Context, id int32, status domain.DeliveryStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET delivery_status=$1, updated_on=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *transactionRepository) Cancel(ctx context.Context, id int32) (bool, error) {
	// Both axes move together; the guard makes a repeat cancel a no-op.
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET payment_status='cancelled', delivery_status='cancelled', updated_on=$1
		 WHERE id=$2 AND NOT (payment_status='cancelled' AND delivery_status='cancelled')`,
		time.Now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *transactionRepository) Delete(ctx context.Context, id int32) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *transactionRepository) ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Transaction, int32, error) {
	return r.list(ctx, "buyer_id", buyerID, page, pageSize)
}

func (r *transactionRepository) ListBySeller(ctx context.Context, sellerID int32, page, pageSize int32) ([]domain.Transaction, int32, error) {
	return r.list(ctx, "seller_id", sellerID, page, pageSize)
}

func (r *transactionRepository) list(ctx context.Context, column string, userID int32, page, pageSize int32) ([]domain.Transaction, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM transactions WHERE `+column+` = $1`, userID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + column + ` = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *tx)
	}
	return txs, count, rows.Err()
}

func (r *transactionRepository) SumSellerAmountCompleted(ctx context.Context, sellerID int32) (float64, error) {
	var sum float64
	query := `SELECT COALESCE(SUM(seller_amount), 0) FROM transactions WHERE seller_id = $1 AND payment_status = 'completed'`
	err := r.db.QueryRowContext(ctx, query, sellerID).Scan(&sum)
	return sum, err
}
