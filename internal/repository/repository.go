package repository

import (
	"context"

	"campusbooks-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int32) error
	ListByVendor(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Book, int32, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	GetByCode(ctx context.Context, code string) (*domain.Transaction, error)

	// UpdatePaymentStatus and UpdateDeliveryStatus report whether a row was
	// updated. They accept any status from the valid set regardless of the
	// current one; callers are responsible for requesting sensible moves.
	UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus, reference string) (bool, error)
	UpdateDeliveryStatus(ctx context.Context, id int32, status domain.DeliveryStatus) (bool, error)

	// Cancel sets both status axes to cancelled in one write. A second call
	// on an already-cancelled record affects zero rows.
	Cancel(ctx context.Context, id int32) (bool, error)
	Delete(ctx context.Context, id int32) (bool, error)

	ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Transaction, int32, error)
	ListBySeller(ctx context.Context, sellerID int32, page, pageSize int32) ([]domain.Transaction, int32, error)

	// SumSellerAmountCompleted totals seller_amount over the seller's
	// completed transactions.
	SumSellerAmountCompleted(ctx context.Context, sellerID int32) (float64, error)
}

type PayoutRepository interface {
	Create(ctx context.Context, req *domain.PayoutRequest) error
	GetByID(ctx context.Context, id int32) (*domain.PayoutRequest, error)

	// UpdateStatus writes the status unconditionally, stamping processed_by/
	// processed_at when processedBy is non-nil and routing reason into
	// rejection_reason or failure_reason depending on the target status.
	UpdateStatus(ctx context.Context, id int32, status domain.PayoutStatus, processedBy *int32, reason string) (bool, error)

	// UpdateStatusFrom is the compare-and-swap form: the write only happens
	// if the row is still in the expected status. A false result with a nil
	// error means the race was lost (or the id does not exist).
	UpdateStatusFrom(ctx context.Context, id int32, from, to domain.PayoutStatus, processedBy *int32, reason string) (bool, error)

	// UpdateTransferCode attaches provider identifiers without touching the
	// status, used mid-flow once a transfer is initiated.
	UpdateTransferCode(ctx context.Context, id int32, transferCode, transactionRef string) (bool, error)

	ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.PayoutRequest, int32, error)
	ListByStatus(ctx context.Context, status domain.PayoutStatus) ([]domain.PayoutRequest, error)

	// SumAmountInStatuses totals amount over the vendor's requests in the
	// given statuses (used for the available-earnings derivation).
	SumAmountInStatuses(ctx context.Context, vendorID int32, statuses []domain.PayoutStatus) (float64, error)
}

type AuditRepository interface {
	Create(ctx context.Context, event *domain.AuditEvent) error
}
