package service

import (
	"context"
	"strings"
	"testing"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type processorFixture struct {
	payoutRepo *MockPayoutRepo
	userRepo   *MockUserRepo
	transfers  *MockTransferClient
	email      *MockEmailService
	audit      *auditRecorder
	processor  PayoutProcessor
}

func newProcessorFixture() *processorFixture {
	f := &processorFixture{
		payoutRepo: new(MockPayoutRepo),
		userRepo:   new(MockUserRepo),
		transfers:  new(MockTransferClient),
		email:      new(MockEmailService),
		audit:      &auditRecorder{},
	}
	f.processor = NewPayoutProcessor(f.payoutRepo, f.userRepo, f.transfers, f.email, f.audit, "KES")
	return f
}

func approvedRequest() *domain.PayoutRequest {
	return &domain.PayoutRequest{
		ID:           1,
		VendorID:     2,
		Amount:       50.00,
		PayoutMethod: domain.PayoutMethodBank,
		AccountDetails: map[string]string{
			"account_name":   "Jane Vendor",
			"account_number": "0123456789",
			"bank_code":      "058",
		},
		Status: domain.PayoutStatusApproved,
	}
}

func TestPayoutProcessor_Approve(t *testing.T) {
	ctx := context.Background()
	operator := int32(9)

	t.Run("Success", func(t *testing.T) {
		f := newProcessorFixture()
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(&domain.PayoutRequest{
			ID: 1, VendorID: 2, Status: domain.PayoutStatusPending,
		}, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusPending, domain.PayoutStatusApproved, &operator, "").Return(true, nil).Once()

		result, err := f.processor.Approve(ctx, operator, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusApproved, result.Status)
		assert.True(t, result.Completed)
		assert.Contains(t, f.audit.events, "payout.approved")
		f.payoutRepo.AssertExpectations(t)
	})

	t.Run("NotPending", func(t *testing.T) {
		f := newProcessorFixture()
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(&domain.PayoutRequest{
			ID: 1, Status: domain.PayoutStatusCompleted,
		}, nil).Once()

		_, err := f.processor.Approve(ctx, operator, 1)
		assert.True(t, domain.IsValidation(err))
		f.payoutRepo.AssertNotCalled(t, "UpdateStatusFrom")
	})

	t.Run("LostRace", func(t *testing.T) {
		f := newProcessorFixture()
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(&domain.PayoutRequest{
			ID: 1, Status: domain.PayoutStatusPending,
		}, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusPending, domain.PayoutStatusApproved, &operator, "").Return(false, nil).Once()

		_, err := f.processor.Approve(ctx, operator, 1)
		assert.ErrorIs(t, err, domain.ErrStaleStatus)
	})
}

func TestPayoutProcessor_Reject(t *testing.T) {
	ctx := context.Background()
	operator := int32(9)

	f := newProcessorFixture()
	f.payoutRepo.On("GetByID", ctx, int32(1)).Return(&domain.PayoutRequest{
		ID: 1, VendorID: 2, Amount: 50.00, Status: domain.PayoutStatusPending,
	}, nil).Once()
	f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
		domain.PayoutStatusPending, domain.PayoutStatusRejected, &operator, "insufficient KYC").Return(true, nil).Once()
	f.userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{
		ID: 2, Name: "Jane", Email: "jane@test.com",
	}, nil).Once()
	f.email.On("SendPayoutRejected", ctx, "jane@test.com", "Jane", 50.00, "insufficient KYC").Return(nil).Once()

	result, err := f.processor.Reject(ctx, operator, 1, "insufficient KYC")
	assert.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusRejected, result.Status)
	assert.Contains(t, f.audit.events, "payout.rejected")
	f.email.AssertExpectations(t)
}

func TestPayoutProcessor_Process(t *testing.T) {
	ctx := context.Background()
	operator := int32(9)

	t.Run("FullSuccess", func(t *testing.T) {
		f := newProcessorFixture()
		req := approvedRequest()

		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(req, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusApproved, domain.PayoutStatusProcessing, &operator, "").Return(true, nil).Once()

		f.transfers.On("CreateRecipient", ctx, mock.MatchedBy(func(r *payment.RecipientRequest) bool {
			return r.Type == "nuban" && r.AccountNumber == "0123456789" && r.Currency == "KES"
		})).Return(&payment.RecipientResponse{Status: true, RecipientCode: "RCP_abc"}, nil).Once()

		f.transfers.On("InitiateTransfer", ctx, mock.MatchedBy(func(r *payment.TransferRequest) bool {
			return r.RecipientCode == "RCP_abc" && r.AmountSubunit == 5000 &&
				strings.HasPrefix(r.Reference, "PAYOUT-1-")
		})).Return(&payment.TransferResponse{Status: true, TransferCode: "TRF_abc"}, nil).Once()

		f.payoutRepo.On("UpdateTransferCode", ctx, int32(1), "TRF_abc",
			mock.MatchedBy(func(ref string) bool { return strings.HasPrefix(ref, "PAYOUT-1-") })).Return(true, nil).Once()

		f.transfers.On("VerifyTransfer", ctx, "TRF_abc").
			Return(&payment.TransferStatusResponse{Status: true, TransferStatus: "success"}, nil).Once()

		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusProcessing, domain.PayoutStatusCompleted, &operator, "").Return(true, nil).Once()

		f.userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{
			ID: 2, Name: "Jane", Email: "jane@test.com",
		}, nil).Once()
		f.email.On("SendPayoutCompleted", ctx, "jane@test.com", "Jane", 50.00,
			mock.MatchedBy(func(ref string) bool { return strings.HasPrefix(ref, "PAYOUT-1-") })).Return(nil).Once()

		result, err := f.processor.Process(ctx, operator, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusCompleted, result.Status)
		assert.True(t, result.Completed)
		assert.Contains(t, f.audit.events, "payout.completed")
		f.payoutRepo.AssertExpectations(t)
		f.transfers.AssertExpectations(t)
	})

	t.Run("NotApproved", func(t *testing.T) {
		f := newProcessorFixture()
		req := approvedRequest()
		req.Status = domain.PayoutStatusPending
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(req, nil).Once()

		_, err := f.processor.Process(ctx, operator, 1)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("IncompleteAccountDetailsLeavesApproved", func(t *testing.T) {
		f := newProcessorFixture()
		req := approvedRequest()
		delete(req.AccountDetails, "bank_code")
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(req, nil).Once()

		_, err := f.processor.Process(ctx, operator, 1)
		assert.True(t, domain.IsValidation(err))
		f.payoutRepo.AssertNotCalled(t, "UpdateStatusFrom")
		f.transfers.AssertNotCalled(t, "CreateRecipient")
	})

	t.Run("RecipientDeclinedFailsWithProviderMessage", func(t *testing.T) {
		f := newProcessorFixture()
		req := approvedRequest()

		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(req, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusApproved, domain.PayoutStatusProcessing, &operator, "").Return(true, nil).Once()
		f.transfers.On("CreateRecipient", ctx, mock.Anything).
			Return(&payment.RecipientResponse{Status: false, Message: "invalid bank code"}, nil).Once()

		reason := "recipient creation declined: invalid bank code"
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusProcessing, domain.PayoutStatusFailed, &operator, reason).Return(true, nil).Once()
		f.userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{
			ID: 2, Name: "Jane", Email: "jane@test.com",
		}, nil).Once()
		f.email.On("SendPayoutFailed", ctx, "jane@test.com", "Jane", 50.00, reason).Return(nil).Once()

		result, err := f.processor.Process(ctx, operator, 1)
		assert.NoError(t, err, "provider failures surface as results, not errors")
		assert.Equal(t, domain.PayoutStatusFailed, result.Status)
		assert.Equal(t, reason, result.Message)
		assert.Contains(t, f.audit.events, "payout.failed")
		f.transfers.AssertNotCalled(t, "InitiateTransfer")
	})

	t.Run("TransferDeclinedFails", func(t *testing.T) {
		f := newProcessorFixture()
		req := approvedRequest()

		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(req, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusApproved, domain.PayoutStatusProcessing, &operator, "").Return(true, nil).Once()
		f.transfers.On("CreateRecipient", ctx, mock.Anything).
			Return(&payment.RecipientResponse{Status: true, RecipientCode: "RCP_abc"}, nil).Once()
		f.transfers.On("InitiateTransfer", ctx, mock.Anything).
			Return(&payment.TransferResponse{Status: false, Message: "insufficient balance"}, nil).Once()

		reason := "transfer declined: insufficient balance"
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusProcessing, domain.PayoutStatusFailed, &operator, reason).Return(true, nil).Once()
		f.userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{
			ID: 2, Name: "Jane", Email: "jane@test.com",
		}, nil).Once()
		f.email.On("SendPayoutFailed", ctx, "jane@test.com", "Jane", 50.00, reason).Return(nil).Once()

		result, err := f.processor.Process(ctx, operator, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusFailed, result.Status)
		f.payoutRepo.AssertNotCalled(t, "UpdateTransferCode")
	})

	t.Run("VerificationUnavailableStaysProcessing", func(t *testing.T) {
		f := newProcessorFixture()
		req := approvedRequest()

		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(req, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusApproved, domain.PayoutStatusProcessing, &operator, "").Return(true, nil).Once()
		f.transfers.On("CreateRecipient", ctx, mock.Anything).
			Return(&payment.RecipientResponse{Status: true, RecipientCode: "RCP_abc"}, nil).Once()
		f.transfers.On("InitiateTransfer", ctx, mock.Anything).
			Return(&payment.TransferResponse{Status: true, TransferCode: "TRF_abc"}, nil).Once()
		f.payoutRepo.On("UpdateTransferCode", ctx, int32(1), "TRF_abc", mock.Anything).Return(true, nil).Once()
		f.transfers.On("VerifyTransfer", ctx, "TRF_abc").Return(nil, context.DeadlineExceeded).Once()

		result, err := f.processor.Process(ctx, operator, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusProcessing, result.Status)
		assert.False(t, result.Completed)
		// No terminal write: only the approved -> processing transition happened
		f.payoutRepo.AssertNumberOfCalls(t, "UpdateStatusFrom", 1)
	})

	t.Run("LostProcessingRace", func(t *testing.T) {
		f := newProcessorFixture()
		req := approvedRequest()

		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(req, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusApproved, domain.PayoutStatusProcessing, &operator, "").Return(false, nil).Once()

		_, err := f.processor.Process(ctx, operator, 1)
		assert.ErrorIs(t, err, domain.ErrStaleStatus)
		f.transfers.AssertNotCalled(t, "CreateRecipient")
	})
}

func TestPayoutProcessor_Reconcile(t *testing.T) {
	ctx := context.Background()

	processingRequest := func() *domain.PayoutRequest {
		req := approvedRequest()
		req.Status = domain.PayoutStatusProcessing
		req.TransferCode = "TRF_abc"
		req.TransactionReference = "PAYOUT-1-1700000000"
		return req
	}

	t.Run("SettlesCompletedWithoutOperatorStamp", func(t *testing.T) {
		f := newProcessorFixture()
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(processingRequest(), nil).Once()
		f.transfers.On("VerifyTransfer", ctx, "TRF_abc").
			Return(&payment.TransferStatusResponse{Status: true, TransferStatus: "success"}, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusProcessing, domain.PayoutStatusCompleted, (*int32)(nil), "").Return(true, nil).Once()
		f.userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{
			ID: 2, Name: "Jane", Email: "jane@test.com",
		}, nil).Once()
		f.email.On("SendPayoutCompleted", ctx, "jane@test.com", "Jane", 50.00, "PAYOUT-1-1700000000").Return(nil).Once()

		result, err := f.processor.Reconcile(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusCompleted, result.Status)
		f.payoutRepo.AssertExpectations(t)
	})

	t.Run("StillPendingOnProvider", func(t *testing.T) {
		f := newProcessorFixture()
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(processingRequest(), nil).Once()
		f.transfers.On("VerifyTransfer", ctx, "TRF_abc").
			Return(&payment.TransferStatusResponse{Status: true, TransferStatus: "pending"}, nil).Once()

		result, err := f.processor.Reconcile(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusProcessing, result.Status)
		assert.False(t, result.Completed)
		f.payoutRepo.AssertNotCalled(t, "UpdateStatusFrom")
	})

	t.Run("ReversedFails", func(t *testing.T) {
		f := newProcessorFixture()
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(processingRequest(), nil).Once()
		f.transfers.On("VerifyTransfer", ctx, "TRF_abc").
			Return(&payment.TransferStatusResponse{Status: true, TransferStatus: "reversed", Message: "account closed"}, nil).Once()
		f.payoutRepo.On("UpdateStatusFrom", ctx, int32(1),
			domain.PayoutStatusProcessing, domain.PayoutStatusFailed, (*int32)(nil), "transfer reversed: account closed").Return(true, nil).Once()
		f.userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{
			ID: 2, Name: "Jane", Email: "jane@test.com",
		}, nil).Once()
		f.email.On("SendPayoutFailed", ctx, "jane@test.com", "Jane", 50.00, "transfer reversed: account closed").Return(nil).Once()

		result, err := f.processor.Reconcile(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusFailed, result.Status)
	})

	t.Run("NotProcessing", func(t *testing.T) {
		f := newProcessorFixture()
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(approvedRequest(), nil).Once()

		_, err := f.processor.Reconcile(ctx, 1)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("NoTransferCode", func(t *testing.T) {
		f := newProcessorFixture()
		req := processingRequest()
		req.TransferCode = ""
		f.payoutRepo.On("GetByID", ctx, int32(1)).Return(req, nil).Once()

		_, err := f.processor.Reconcile(ctx, 1)
		assert.True(t, domain.IsValidation(err))
		f.transfers.AssertNotCalled(t, "VerifyTransfer")
	})
}
