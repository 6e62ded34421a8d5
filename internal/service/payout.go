package service

import (
	"context"
	"errors"
	"fmt"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/repository"
	"campusbooks-backend/internal/utils"
)

// earningsHoldStatuses are payout statuses that count against a vendor's
// available earnings: money already paid or currently in flight.
var earningsHoldStatuses = []domain.PayoutStatus{
	domain.PayoutStatusCompleted,
	domain.PayoutStatusProcessing,
}

type payoutService struct {
	payoutRepo repository.PayoutRepository
	txRepo     repository.TransactionRepository
	userRepo   repository.UserRepository
	audit      AuditService
}

func NewPayoutService(
	payoutRepo repository.PayoutRepository,
	txRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	audit AuditService,
) PayoutService {
	return &payoutService{
		payoutRepo: payoutRepo,
		txRepo:     txRepo,
		userRepo:   userRepo,
		audit:      audit,
	}
}

func (s *payoutService) CreateRequest(ctx context.Context, vendorID int32, amount float64, method domain.PayoutMethod, accountDetails map[string]string) (*domain.PayoutRequest, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "payout amount must be greater than zero")
	}

	if _, err := s.userRepo.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("vendor_id", "vendor does not exist")
		}
		return nil, err
	}

	available, err := s.AvailableEarnings(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if amount > available {
		return nil, domain.NewValidationError("amount",
			fmt.Sprintf("requested %.2f exceeds available earnings %.2f", amount, available))
	}

	req := &domain.PayoutRequest{
		VendorID:       vendorID,
		Amount:         utils.Round2(amount),
		PayoutMethod:   method,
		AccountDetails: accountDetails,
		Status:         domain.PayoutStatusPending,
	}
	if err := s.payoutRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create payout request: %w", err)
	}

	s.audit.Record(ctx, "payout.requested", &vendorID, map[string]string{
		"request_id": fmt.Sprintf("%d", req.ID),
		"amount":     fmt.Sprintf("%.2f", req.Amount),
		"method":     string(req.PayoutMethod),
	})

	return req, nil
}

func (s *payoutService) GetRequest(ctx context.Context, id int32) (*domain.PayoutRequest, error) {
	return s.payoutRepo.GetByID(ctx, id)
}

func (s *payoutService) UpdateStatus(ctx context.Context, id int32, status domain.PayoutStatus, processedBy *int32, reason string) (bool, error) {
	if !domain.ValidPayoutStatus(status) {
		return false, nil
	}

	req, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if !domain.CanTransitionPayout(req.Status, status) {
		return false, nil
	}

	// Conditional on the status just read, so a concurrent transition loses
	// cleanly instead of overwriting.
	return s.payoutRepo.UpdateStatusFrom(ctx, id, req.Status, status, processedBy, reason)
}

func (s *payoutService) UpdateTransferCode(ctx context.Context, id int32, transferCode, transactionRef string) (bool, error) {
	return s.payoutRepo.UpdateTransferCode(ctx, id, transferCode, transactionRef)
}

func (s *payoutService) AvailableEarnings(ctx context.Context, vendorID int32) (float64, error) {
	earned, err := s.txRepo.SumSellerAmountCompleted(ctx, vendorID)
	if err != nil {
		return 0, err
	}
	held, err := s.payoutRepo.SumAmountInStatuses(ctx, vendorID, earningsHoldStatuses)
	if err != nil {
		return 0, err
	}
	available := utils.Round2(earned - held)
	if available < 0 {
		return 0, nil
	}
	return available, nil
}

func (s *payoutService) TotalEarnings(ctx context.Context, vendorID int32) (float64, error) {
	earned, err := s.txRepo.SumSellerAmountCompleted(ctx, vendorID)
	if err != nil {
		return 0, err
	}
	return utils.Round2(earned), nil
}

func (s *payoutService) ListVendorRequests(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.PayoutRequest, int32, error) {
	return s.payoutRepo.ListByVendor(ctx, vendorID, status, page, pageSize)
}

func (s *payoutService) ListByStatus(ctx context.Context, status domain.PayoutStatus) ([]domain.PayoutRequest, error) {
	return s.payoutRepo.ListByStatus(ctx, status)
}
