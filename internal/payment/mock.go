package payment

import (
	"context"
	"fmt"
	"sync"
)

// MockTransferClient simulates the transfer provider for tests and local
// development. Every call succeeds and verification reports immediate
// success; the failure knobs flip individual steps for tests.
type MockTransferClient struct {
	mu        sync.Mutex
	seq       int
	transfers map[string]string // transfer code -> provider status

	FailRecipient  bool
	FailTransfer   bool
	FailVerify     bool
	VerifyStatus   string // provider status to report; defaults to "success"
	FailureMessage string
	OmitCodes      bool // succeed but return empty recipient/transfer codes
}

func NewMockTransferClient() *MockTransferClient {
	return &MockTransferClient{transfers: make(map[string]string)}
}

func (m *MockTransferClient) failureMessage() string {
	if m.FailureMessage != "" {
		return m.FailureMessage
	}
	return "simulated provider failure"
}

func (m *MockTransferClient) CreateRecipient(ctx context.Context, req *RecipientRequest) (*RecipientResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRecipient {
		return &RecipientResponse{Status: false, Message: m.failureMessage()}, nil
	}
	if m.OmitCodes {
		return &RecipientResponse{Status: true, Message: "Transfer recipient created successfully"}, nil
	}
	m.seq++
	return &RecipientResponse{
		Status:        true,
		Message:       "Transfer recipient created successfully",
		RecipientCode: fmt.Sprintf("RCP_mock%04d", m.seq),
	}, nil
}

func (m *MockTransferClient) InitiateTransfer(ctx context.Context, req *TransferRequest) (*TransferResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailTransfer {
		return &TransferResponse{Status: false, Message: m.failureMessage()}, nil
	}
	if m.OmitCodes {
		return &TransferResponse{Status: true, Message: "Transfer has been queued"}, nil
	}
	m.seq++
	code := fmt.Sprintf("TRF_mock%04d", m.seq)
	status := m.VerifyStatus
	if status == "" {
		status = TransferStatusSuccess
	}
	m.transfers[code] = status
	return &TransferResponse{Status: true, Message: "Transfer has been queued", TransferCode: code}, nil
}

func (m *MockTransferClient) VerifyTransfer(ctx context.Context, transferCode string) (*TransferStatusResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailVerify {
		return nil, fmt.Errorf("verify transfer: %s", m.failureMessage())
	}
	status, ok := m.transfers[transferCode]
	if !ok {
		return &TransferStatusResponse{Status: false, Message: "transfer not found"}, nil
	}
	return &TransferStatusResponse{Status: true, Message: "Transfer retrieved", TransferStatus: status}, nil
}
