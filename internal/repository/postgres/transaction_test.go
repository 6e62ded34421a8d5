package postgres

import (
	"context"
	"testing"
	"time"

	"campusbooks-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func transactionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "buyer_id", "seller_id", "book_id", "transaction_type", "quantity",
		"unit_price", "total_amount", "commission_amount", "seller_amount",
		"rental_duration", "rental_unit", "payment_status", "delivery_status",
		"payment_reference", "created_on", "updated_on",
	})
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	tx := &domain.Transaction{
		Code:             "BKM-20260901-a1b2c3d4",
		BuyerID:          1,
		SellerID:         2,
		BookID:           7,
		Type:             domain.TransactionTypePurchase,
		Quantity:         2,
		UnitPrice:        20.00,
		TotalAmount:      40.00,
		CommissionAmount: 4.00,
		SellerAmount:     36.00,
		PaymentStatus:    domain.PaymentStatusPending,
		DeliveryStatus:   domain.DeliveryStatusPending,
	}

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(tx.Code, tx.BuyerID, tx.SellerID, tx.BookID, tx.Type, tx.Quantity,
			tx.UnitPrice, tx.TotalAmount, tx.CommissionAmount, tx.SellerAmount,
			tx.RentalDuration, tx.RentalUnit, tx.PaymentStatus, tx.DeliveryStatus,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	err = repo.Create(ctx, tx)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), tx.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM transactions WHERE code =").
			WithArgs("BKM-20260901-a1b2c3d4").
			WillReturnRows(transactionRows().AddRow(
				3, "BKM-20260901-a1b2c3d4", 1, 2, 7, "purchase", 2,
				20.00, 40.00, 4.00, 36.00,
				nil, "", "pending", "pending", "", now, now,
			))

		tx, err := repo.GetByCode(ctx, "BKM-20260901-a1b2c3d4")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), tx.ID)
		assert.Equal(t, 36.00, tx.SellerAmount)
		assert.Nil(t, tx.RentalDuration)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM transactions WHERE code =").
			WithArgs("BKM-00000000-00000000").
			WillReturnRows(transactionRows())

		_, err := repo.GetByCode(ctx, "BKM-00000000-00000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTransactionRepository_UpdatePaymentStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("WithReference", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions SET payment_status=(.+), payment_reference=").
			WithArgs(domain.PaymentStatusCompleted, "ref-1", sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdatePaymentStatus(ctx, 3, domain.PaymentStatusCompleted, "ref-1")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WithoutReference", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions SET payment_status=").
			WithArgs(domain.PaymentStatusFailed, sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdatePaymentStatus(ctx, 3, domain.PaymentStatusFailed, "")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("MissingRow", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions SET payment_status=").
			WithArgs(domain.PaymentStatusFailed, sqlmock.AnyArg(), int32(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdatePaymentStatus(ctx, 404, domain.PaymentStatusFailed, "")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestTransactionRepository_Cancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("FirstCancel", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions SET payment_status='cancelled'").
			WithArgs(sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Cancel(ctx, 3)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("RepeatCancelIsNoOp", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions SET payment_status='cancelled'").
			WithArgs(sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Cancel(ctx, 3)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestTransactionRepository_SumSellerAmountCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("WithSales", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(seller_amount\), 0\) FROM transactions`).
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(100.00))

		sum, err := repo.SumSellerAmountCompleted(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, 100.00, sum)
	})

	t.Run("NoSales", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(seller_amount\), 0\) FROM transactions`).
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0.00))

		sum, err := repo.SumSellerAmountCompleted(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, 0.00, sum)
	})
}
