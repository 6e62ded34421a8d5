package service

import (
	"context"

	"campusbooks-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type BookService interface {
	AddBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int32) (*domain.Book, error)
	UpdateBook(ctx context.Context, userID int32, book *domain.Book) error
	DeleteBook(ctx context.Context, userID, bookID int32) error
	ListBooks(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)
	ListVendorBooks(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Book, int32, error)
}

// CheckoutInput carries everything the page layer collects at checkout.
// PaymentStatus/DeliveryStatus default to pending when empty.
type CheckoutInput struct {
	BuyerID        int32
	SellerID       int32
	BookID         int32
	Type           domain.TransactionType
	UnitPrice      float64
	Quantity       int32
	RentalDuration *int32
	RentalUnit     string
	PaymentStatus  domain.PaymentStatus
	DeliveryStatus domain.DeliveryStatus
}

type TransactionService interface {
	Checkout(ctx context.Context, in *CheckoutInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error)
	GetTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error)

	// The status updaters report false (no error) on an unknown status or a
	// missing record; any valid status is accepted regardless of the current
	// one, matching the permissive payment/delivery lifecycle.
	UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus, reference string) (bool, error)
	UpdateDeliveryStatus(ctx context.Context, id int32, status domain.DeliveryStatus) (bool, error)

	CancelTransaction(ctx context.Context, id int32) (bool, error)
	DeleteTransaction(ctx context.Context, operatorID, id int32) (bool, error)

	// CanUserView gates detail pages: only the buyer or the seller may view.
	CanUserView(ctx context.Context, transactionID, userID int32) (bool, error)

	ListPurchases(ctx context.Context, buyerID, page, pageSize int32) ([]domain.Transaction, int32, error)
	ListSales(ctx context.Context, sellerID, page, pageSize int32) ([]domain.Transaction, int32, error)
}

type PayoutService interface {
	CreateRequest(ctx context.Context, vendorID int32, amount float64, method domain.PayoutMethod, accountDetails map[string]string) (*domain.PayoutRequest, error)
	GetRequest(ctx context.Context, id int32) (*domain.PayoutRequest, error)

	// UpdateStatus returns false on an unknown status, a missing record, or
	// a transition the payout table forbids.
	UpdateStatus(ctx context.Context, id int32, status domain.PayoutStatus, processedBy *int32, reason string) (bool, error)
	UpdateTransferCode(ctx context.Context, id int32, transferCode, transactionRef string) (bool, error)

	AvailableEarnings(ctx context.Context, vendorID int32) (float64, error)
	TotalEarnings(ctx context.Context, vendorID int32) (float64, error)

	ListVendorRequests(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.PayoutRequest, int32, error)
	ListByStatus(ctx context.Context, status domain.PayoutStatus) ([]domain.PayoutRequest, error)
}

// PayoutActionResult is what operator actions hand back to the UI: an
// outcome plus a human-readable message, never a raw provider fault.
type PayoutActionResult struct {
	RequestID int32               `json:"request_id"`
	Status    domain.PayoutStatus `json:"status"`
	Completed bool                `json:"completed"`
	Message   string              `json:"message"`
}

type PayoutProcessor interface {
	Approve(ctx context.Context, operatorID, requestID int32) (*PayoutActionResult, error)
	Reject(ctx context.Context, operatorID, requestID int32, reason string) (*PayoutActionResult, error)
	Process(ctx context.Context, operatorID, requestID int32) (*PayoutActionResult, error)

	// Reconcile re-verifies a request stuck in processing using its stored
	// transfer code. Used by the scheduled reconciliation job.
	Reconcile(ctx context.Context, requestID int32) (*PayoutActionResult, error)
}

// CommissionRateProvider supplies the platform's cut as a fraction
// (e.g. 0.10). The core never hardcodes the rate.
type CommissionRateProvider interface {
	CommissionRate(ctx context.Context) (float64, error)
}

// AuditService records state-changing actions. Fire and forget: callers do
// not consume a return value.
type AuditService interface {
	Record(ctx context.Context, event string, actorID *int32, attrs map[string]string)
}

type EmailService interface {
	SendPayoutCompleted(ctx context.Context, email, name string, amount float64, reference string) error
	SendPayoutFailed(ctx context.Context, email, name string, amount float64, reason string) error
	SendPayoutRejected(ctx context.Context, email, name string, amount float64, reason string) error
}
