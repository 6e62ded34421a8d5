package service

import (
	"context"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/payment"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookRepo) ListByVendor(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, vendorID, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) GetByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus, reference string) (bool, error) {
	args := m.Called(ctx, id, status, reference)
	return args.Bool(0), args.Error(1)
}
func (m *MockTransactionRepo) UpdateDeliveryStatus(ctx context.Context, id int32, status domain.DeliveryStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}
func (m *MockTransactionRepo) Cancel(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockTransactionRepo) Delete(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockTransactionRepo) ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, buyerID, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionRepo) ListBySeller(ctx context.Context, sellerID int32, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, sellerID, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionRepo) SumSellerAmountCompleted(ctx context.Context, sellerID int32) (float64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(float64), args.Error(1)
}

// MockPayoutRepo
type MockPayoutRepo struct {
	mock.Mock
}

func (m *MockPayoutRepo) Create(ctx context.Context, req *domain.PayoutRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockPayoutRepo) GetByID(ctx context.Context, id int32) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutRepo) UpdateStatus(ctx context.Context, id int32, status domain.PayoutStatus, processedBy *int32, reason string) (bool, error) {
	args := m.Called(ctx, id, status, processedBy, reason)
	return args.Bool(0), args.Error(1)
}
func (m *MockPayoutRepo) UpdateStatusFrom(ctx context.Context, id int32, from, to domain.PayoutStatus, processedBy *int32, reason string) (bool, error) {
	args := m.Called(ctx, id, from, to, processedBy, reason)
	return args.Bool(0), args.Error(1)
}
func (m *MockPayoutRepo) UpdateTransferCode(ctx context.Context, id int32, transferCode, transactionRef string) (bool, error) {
	args := m.Called(ctx, id, transferCode, transactionRef)
	return args.Bool(0), args.Error(1)
}
func (m *MockPayoutRepo) ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.PayoutRequest, int32, error) {
	args := m.Called(ctx, vendorID, status, page, pageSize)
	return args.Get(0).([]domain.PayoutRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockPayoutRepo) ListByStatus(ctx context.Context, status domain.PayoutStatus) ([]domain.PayoutRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutRepo) SumAmountInStatuses(ctx context.Context, vendorID int32, statuses []domain.PayoutStatus) (float64, error) {
	args := m.Called(ctx, vendorID, statuses)
	return args.Get(0).(float64), args.Error(1)
}

// MockTransferClient
type MockTransferClient struct {
	mock.Mock
}

func (m *MockTransferClient) CreateRecipient(ctx context.Context, req *payment.RecipientRequest) (*payment.RecipientResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.RecipientResponse), args.Error(1)
}
func (m *MockTransferClient) InitiateTransfer(ctx context.Context, req *payment.TransferRequest) (*payment.TransferResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.TransferResponse), args.Error(1)
}
func (m *MockTransferClient) VerifyTransfer(ctx context.Context, transferCode string) (*payment.TransferStatusResponse, error) {
	args := m.Called(ctx, transferCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.TransferStatusResponse), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPayoutCompleted(ctx context.Context, email, name string, amount float64, reference string) error {
	args := m.Called(ctx, email, name, amount, reference)
	return args.Error(0)
}
func (m *MockEmailService) SendPayoutFailed(ctx context.Context, email, name string, amount float64, reason string) error {
	args := m.Called(ctx, email, name, amount, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPayoutRejected(ctx context.Context, email, name string, amount float64, reason string) error {
	args := m.Called(ctx, email, name, amount, reason)
	return args.Error(0)
}

// auditRecorder captures audit event names so tests can assert the trail
// without mocking every Record call.
type auditRecorder struct {
	events []string
}

func (a *auditRecorder) Record(ctx context.Context, event string, actorID *int32, attrs map[string]string) {
	a.events = append(a.events, event)
}

// fixedRate is a CommissionRateProvider returning a constant for tests.
type fixedRate float64

func (r fixedRate) CommissionRate(ctx context.Context) (float64, error) {
	return float64(r), nil
}
