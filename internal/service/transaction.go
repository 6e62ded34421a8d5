package service

import (
	"context"
	"fmt"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/repository"
	"campusbooks-backend/internal/utils"
)

type transactionService struct {
	txRepo   repository.TransactionRepository
	bookRepo repository.BookRepository
	rates    CommissionRateProvider
	audit    AuditService
}

func NewTransactionService(
	txRepo repository.TransactionRepository,
	bookRepo repository.BookRepository,
	rates CommissionRateProvider,
	audit AuditService,
) TransactionService {
	return &transactionService{
		txRepo:   txRepo,
		bookRepo: bookRepo,
		rates:    rates,
		audit:    audit,
	}
}

func (s *transactionService) Checkout(ctx context.Context, in *CheckoutInput) (*domain.Transaction, error) {
	if in.BuyerID == in.SellerID {
		return nil, domain.NewValidationError("seller_id", "buyer and seller must differ")
	}
	if in.UnitPrice <= 0 {
		return nil, domain.NewValidationError("unit_price", "unit price must be greater than zero")
	}
	if !domain.ValidTransactionType(in.Type) {
		return nil, domain.NewValidationError("transaction_type", fmt.Sprintf("unknown transaction type %q", in.Type))
	}

	quantity := in.Quantity
	if quantity < 1 {
		quantity = 1
	}

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPending
	}
	if !domain.ValidPaymentStatus(paymentStatus) {
		return nil, domain.NewValidationError("payment_status", fmt.Sprintf("unknown payment status %q", paymentStatus))
	}
	// Completion requires external payment confirmation; a transaction is
	// never born completed.
	if paymentStatus == domain.PaymentStatusCompleted {
		return nil, domain.NewValidationError("payment_status", "a transaction cannot be created as completed")
	}

	deliveryStatus := in.DeliveryStatus
	if deliveryStatus == "" {
		deliveryStatus = domain.DeliveryStatusPending
	}
	if !domain.ValidDeliveryStatus(deliveryStatus) {
		return nil, domain.NewValidationError("delivery_status", fmt.Sprintf("unknown delivery status %q", deliveryStatus))
	}

	if _, err := s.bookRepo.GetByID(ctx, in.BookID); err != nil {
		return nil, err
	}

	rate, err := s.rates.CommissionRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve commission rate: %w", err)
	}

	total := utils.Round2(float64(quantity) * in.UnitPrice)
	commission, sellerAmount := utils.SplitCommission(total, rate)

	tx := &domain.Transaction{
		Code:             domain.NewTransactionCode(),
		BuyerID:          in.BuyerID,
		SellerID:         in.SellerID,
		BookID:           in.BookID,
		Type:             in.Type,
		Quantity:         quantity,
		UnitPrice:        in.UnitPrice,
		TotalAmount:      total,
		CommissionAmount: commission,
		SellerAmount:     sellerAmount,
		RentalDuration:   in.RentalDuration,
		RentalUnit:       in.RentalUnit,
		PaymentStatus:    paymentStatus,
		DeliveryStatus:   deliveryStatus,
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.audit.Record(ctx, "transaction.created", &in.BuyerID, map[string]string{
		"transaction_id":   fmt.Sprintf("%d", tx.ID),
		"transaction_code": tx.Code,
		"type":             string(tx.Type),
		"total_amount":     fmt.Sprintf("%.2f", tx.TotalAmount),
	})

	return tx, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error) {
	return s.txRepo.GetByID(ctx, id)
}

func (s *transactionService) GetTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	return s.txRepo.GetByCode(ctx, code)
}

func (s *transactionService) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus, reference string) (bool, error) {
	if !domain.ValidPaymentStatus(status) {
		return false, nil
	}
	return s.txRepo.UpdatePaymentStatus(ctx, id, status, reference)
}

func (s *transactionService) UpdateDeliveryStatus(ctx context.Context, id int32, status domain.DeliveryStatus) (bool, error) {
	if !domain.ValidDeliveryStatus(status) {
		return false, nil
	}
	return s.txRepo.UpdateDeliveryStatus(ctx, id, status)
}

func (s *transactionService) CancelTransaction(ctx context.Context, id int32) (bool, error) {
	ok, err := s.txRepo.Cancel(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.audit.Record(ctx, "transaction.cancelled", nil, map[string]string{
			"transaction_id": fmt.Sprintf("%d", id),
		})
	}
	return ok, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, operatorID, id int32) (bool, error) {
	ok, err := s.txRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.audit.Record(ctx, "transaction.deleted", &operatorID, map[string]string{
			"transaction_id": fmt.Sprintf("%d", id),
		})
	}
	return ok, nil
}

func (s *transactionService) CanUserView(ctx context.Context, transactionID, userID int32) (bool, error) {
	tx, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return false, err
	}
	return tx.BuyerID == userID || tx.SellerID == userID, nil
}

func (s *transactionService) ListPurchases(ctx context.Context, buyerID, page, pageSize int32) ([]domain.Transaction, int32, error) {
	return s.txRepo.ListByBuyer(ctx, buyerID, page, pageSize)
}

func (s *transactionService) ListSales(ctx context.Context, sellerID, page, pageSize int32) ([]domain.Transaction, int32, error) {
	return s.txRepo.ListBySeller(ctx, sellerID, page, pageSize)
}
