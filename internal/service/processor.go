package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/logger"
	"campusbooks-backend/internal/payment"
	"campusbooks-backend/internal/repository"
	"campusbooks-backend/internal/utils"
)

// payoutProcessor drives operator actions on payout requests. Process chains
// two provider calls with a local status write in between; the ordering
// guarantee is that the request reads `processing` before any money can
// move, and a terminal status is only written after the provider answers.
type payoutProcessor struct {
	payoutRepo repository.PayoutRepository
	userRepo   repository.UserRepository
	transfers  payment.TransferClient
	email      EmailService
	audit      AuditService
	currency   string
	log        *slog.Logger
}

func NewPayoutProcessor(
	payoutRepo repository.PayoutRepository,
	userRepo repository.UserRepository,
	transfers payment.TransferClient,
	email EmailService,
	audit AuditService,
	currency string,
) PayoutProcessor {
	return &payoutProcessor{
		payoutRepo: payoutRepo,
		userRepo:   userRepo,
		transfers:  transfers,
		email:      email,
		audit:      audit,
		currency:   currency,
		log:        logger.WithService("payout_processor"),
	}
}

func (p *payoutProcessor) Approve(ctx context.Context, operatorID, requestID int32) (*PayoutActionResult, error) {
	req, err := p.payoutRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.PayoutStatusPending {
		return nil, domain.NewValidationError("status",
			fmt.Sprintf("only pending requests can be approved (current: %s)", req.Status))
	}

	ok, err := p.payoutRepo.UpdateStatusFrom(ctx, requestID, domain.PayoutStatusPending, domain.PayoutStatusApproved, &operatorID, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrStaleStatus
	}

	p.audit.Record(ctx, "payout.approved", &operatorID, map[string]string{
		"request_id": fmt.Sprintf("%d", requestID),
	})

	return &PayoutActionResult{
		RequestID: requestID,
		Status:    domain.PayoutStatusApproved,
		Completed: true,
		Message:   "payout request approved",
	}, nil
}

func (p *payoutProcessor) Reject(ctx context.Context, operatorID, requestID int32, reason string) (*PayoutActionResult, error) {
	req, err := p.payoutRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.PayoutStatusPending {
		return nil, domain.NewValidationError("status",
			fmt.Sprintf("only pending requests can be rejected (current: %s)", req.Status))
	}

	ok, err := p.payoutRepo.UpdateStatusFrom(ctx, requestID, domain.PayoutStatusPending, domain.PayoutStatusRejected, &operatorID, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrStaleStatus
	}

	p.audit.Record(ctx, "payout.rejected", &operatorID, map[string]string{
		"request_id": fmt.Sprintf("%d", requestID),
		"reason":     reason,
	})
	p.notifyVendor(ctx, req, domain.PayoutStatusRejected, reason, "")

	return &PayoutActionResult{
		RequestID: requestID,
		Status:    domain.PayoutStatusRejected,
		Completed: true,
		Message:   "payout request rejected",
	}, nil
}

// Process runs an approved request through the provider. Provider failures
// never escape as errors: they land the request in `failed` with the
// provider's message stored, and the operator gets a result either way.
func (p *payoutProcessor) Process(ctx context.Context, operatorID, requestID int32) (*PayoutActionResult, error) {
	req, err := p.payoutRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.PayoutStatusApproved {
		return nil, domain.NewValidationError("status",
			fmt.Sprintf("only approved requests can be processed (current: %s)", req.Status))
	}

	// Account details are validated here, not at creation, because required
	// fields vary by payout method. A failure leaves the request approved so
	// the operator can fix the details and retry.
	name := req.AccountDetails["account_name"]
	number := req.AccountDetails["account_number"]
	bankCode := req.AccountDetails["bank_code"]
	if name == "" || number == "" || bankCode == "" {
		return nil, domain.NewValidationError("account_details",
			"account details must include account_name, account_number and bank_code")
	}

	// Move to processing before touching the provider: a crash from here on
	// can never leave the request reading `approved` while money is moving.
	ok, err := p.payoutRepo.UpdateStatusFrom(ctx, requestID, domain.PayoutStatusApproved, domain.PayoutStatusProcessing, &operatorID, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		// Another operator got here first.
		return nil, domain.ErrStaleStatus
	}

	recipientType := "nuban"
	if req.PayoutMethod == domain.PayoutMethodMobileMoney {
		recipientType = "mobile_money"
	}

	recipient, err := p.transfers.CreateRecipient(ctx, &payment.RecipientRequest{
		Type:          recipientType,
		Name:          name,
		AccountNumber: number,
		BankCode:      bankCode,
		Currency:      p.currency,
	})
	if err != nil {
		return p.fail(ctx, req, operatorID, fmt.Sprintf("recipient creation failed: %v", err)), nil
	}
	if !recipient.Status {
		return p.fail(ctx, req, operatorID, providerReason("recipient creation declined", recipient.Message)), nil
	}
	if recipient.RecipientCode == "" {
		return p.fail(ctx, req, operatorID, "provider returned no recipient code"), nil
	}

	reference := fmt.Sprintf("PAYOUT-%d-%d", req.ID, time.Now().Unix())
	transfer, err := p.transfers.InitiateTransfer(ctx, &payment.TransferRequest{
		RecipientCode: recipient.RecipientCode,
		AmountSubunit: utils.ToSubunit(req.Amount),
		Reason:        fmt.Sprintf("Vendor payout request #%d", req.ID),
		Reference:     reference,
	})
	if err != nil {
		return p.fail(ctx, req, operatorID, fmt.Sprintf("transfer initiation failed: %v", err)), nil
	}
	if !transfer.Status {
		return p.fail(ctx, req, operatorID, providerReason("transfer declined", transfer.Message)), nil
	}
	if transfer.TransferCode == "" {
		return p.fail(ctx, req, operatorID, "provider returned no transfer code"), nil
	}

	if _, err := p.payoutRepo.UpdateTransferCode(ctx, requestID, transfer.TransferCode, reference); err != nil {
		// The transfer is in flight but we could not record its code; this
		// must surface as a hard error so operations reconcile by reference.
		return nil, fmt.Errorf("persist transfer code for request %d (reference %s): %w", requestID, reference, err)
	}

	verification, err := p.transfers.VerifyTransfer(ctx, transfer.TransferCode)
	if err != nil {
		// Verification being unreachable is not a transfer failure. The
		// request stays in processing for the reconciliation job.
		p.log.Warn("transfer verification unavailable",
			"request_id", requestID, "transfer_code", transfer.TransferCode, "error", err)
		return &PayoutActionResult{
			RequestID: requestID,
			Status:    domain.PayoutStatusProcessing,
			Completed: false,
			Message:   "transfer initiated but not yet confirmed; manual follow-up required",
		}, nil
	}

	return p.settle(ctx, req, &operatorID, transfer.TransferCode, reference, verification), nil
}

// Reconcile re-verifies a request left in processing with a transfer code
// already stored, settling it if the provider has since reached a terminal
// state. Run by the scheduler; no operator is stamped.
func (p *payoutProcessor) Reconcile(ctx context.Context, requestID int32) (*PayoutActionResult, error) {
	req, err := p.payoutRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.PayoutStatusProcessing {
		return nil, domain.NewValidationError("status",
			fmt.Sprintf("only processing requests can be reconciled (current: %s)", req.Status))
	}
	if req.TransferCode == "" {
		return nil, domain.NewValidationError("transfer_code", "request has no transfer code to verify")
	}

	verification, err := p.transfers.VerifyTransfer(ctx, req.TransferCode)
	if err != nil {
		return &PayoutActionResult{
			RequestID: requestID,
			Status:    domain.PayoutStatusProcessing,
			Completed: false,
			Message:   fmt.Sprintf("verification unavailable: %v", err),
		}, nil
	}

	return p.settle(ctx, req, nil, req.TransferCode, req.TransactionReference, verification), nil
}

// settle maps a verification response onto a final (or still-pending)
// request state. Shared with the reconciliation path; processedBy is nil
// there so the original operator stamp is preserved.
func (p *payoutProcessor) settle(ctx context.Context, req *domain.PayoutRequest, processedBy *int32, transferCode, reference string, verification *payment.TransferStatusResponse) *PayoutActionResult {
	switch {
	case verification.Status && verification.TransferStatus == payment.TransferStatusSuccess:
		ok, err := p.payoutRepo.UpdateStatusFrom(ctx, req.ID, domain.PayoutStatusProcessing, domain.PayoutStatusCompleted, processedBy, "")
		if err != nil || !ok {
			p.log.Error("failed to mark payout completed", "request_id", req.ID, "error", err)
			return &PayoutActionResult{
				RequestID: req.ID,
				Status:    domain.PayoutStatusProcessing,
				Completed: false,
				Message:   "transfer succeeded but the status update failed; retry required",
			}
		}
		p.audit.Record(ctx, "payout.completed", processedBy, map[string]string{
			"request_id":    fmt.Sprintf("%d", req.ID),
			"transfer_code": transferCode,
			"reference":     reference,
		})
		p.notifyVendor(ctx, req, domain.PayoutStatusCompleted, "", reference)
		return &PayoutActionResult{
			RequestID: req.ID,
			Status:    domain.PayoutStatusCompleted,
			Completed: true,
			Message:   "transfer completed",
		}

	case verification.Status && payment.IsTerminalFailure(verification.TransferStatus):
		return p.failWith(ctx, req, processedBy, providerReason("transfer "+verification.TransferStatus, verification.Message))

	default:
		// Still pending on the provider side. Intentionally not a failure.
		return &PayoutActionResult{
			RequestID: req.ID,
			Status:    domain.PayoutStatusProcessing,
			Completed: false,
			Message:   "transfer initiated but not yet confirmed by the provider",
		}
	}
}

// fail transitions processing → failed with the reason stored verbatim.
func (p *payoutProcessor) fail(ctx context.Context, req *domain.PayoutRequest, operatorID int32, reason string) *PayoutActionResult {
	return p.failWith(ctx, req, &operatorID, reason)
}

func (p *payoutProcessor) failWith(ctx context.Context, req *domain.PayoutRequest, processedBy *int32, reason string) *PayoutActionResult {
	ok, err := p.payoutRepo.UpdateStatusFrom(ctx, req.ID, domain.PayoutStatusProcessing, domain.PayoutStatusFailed, processedBy, reason)
	if err != nil || !ok {
		p.log.Error("failed to mark payout failed", "request_id", req.ID, "reason", reason, "error", err)
	}
	p.audit.Record(ctx, "payout.failed", processedBy, map[string]string{
		"request_id": fmt.Sprintf("%d", req.ID),
		"reason":     reason,
	})
	p.notifyVendor(ctx, req, domain.PayoutStatusFailed, reason, "")
	return &PayoutActionResult{
		RequestID: req.ID,
		Status:    domain.PayoutStatusFailed,
		Completed: false,
		Message:   reason,
	}
}

// notifyVendor emails the vendor about a terminal payout outcome. Email
// failures are logged, never propagated.
func (p *payoutProcessor) notifyVendor(ctx context.Context, req *domain.PayoutRequest, status domain.PayoutStatus, reason, reference string) {
	vendor, err := p.userRepo.GetByID(ctx, req.VendorID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			p.log.Warn("could not load vendor for payout notification", "vendor_id", req.VendorID, "error", err)
		}
		return
	}

	switch status {
	case domain.PayoutStatusCompleted:
		err = p.email.SendPayoutCompleted(ctx, vendor.Email, vendor.Name, req.Amount, reference)
	case domain.PayoutStatusFailed:
		err = p.email.SendPayoutFailed(ctx, vendor.Email, vendor.Name, req.Amount, reason)
	case domain.PayoutStatusRejected:
		err = p.email.SendPayoutRejected(ctx, vendor.Email, vendor.Name, req.Amount, reason)
	}
	if err != nil {
		p.log.Warn("payout notification email failed", "vendor_id", req.VendorID, "status", status, "error", err)
	}
}

func providerReason(prefix, message string) string {
	if message == "" {
		return prefix
	}
	return prefix + ": " + message
}
