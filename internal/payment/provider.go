// Package payment wraps the external transfer provider used to pay vendors
// out. The provider exposes three operations: create a transfer recipient,
// initiate a transfer to it, and verify a transfer's state. Amounts cross
// the wire in the smallest currency unit.
package payment

import "context"

// RecipientRequest describes a payout destination to register with the
// provider (a bank account or mobile-money wallet).
type RecipientRequest struct {
	Type          string // "nuban", "mobile_money", ...
	Name          string
	AccountNumber string
	BankCode      string
	Currency      string
}

// RecipientResponse is the provider's answer to recipient creation.
// Status=false with a Message is an API-level failure, not a transport error.
type RecipientResponse struct {
	Status        bool
	Message       string
	RecipientCode string
}

// TransferRequest initiates a transfer to a previously created recipient.
// Reference must be unique per attempt; the provider uses it for idempotency.
type TransferRequest struct {
	RecipientCode string
	AmountSubunit int64
	Reason        string
	Reference     string
}

type TransferResponse struct {
	Status       bool
	Message      string
	TransferCode string
}

// TransferStatusResponse reports the provider-side state of a transfer.
// TransferStatus is the provider's own vocabulary ("success", "pending",
// "failed", "reversed").
type TransferStatusResponse struct {
	Status         bool
	Message        string
	TransferStatus string
}

// TransferClient is the payment provider surface the payout flow consumes.
type TransferClient interface {
	CreateRecipient(ctx context.Context, req *RecipientRequest) (*RecipientResponse, error)
	InitiateTransfer(ctx context.Context, req *TransferRequest) (*TransferResponse, error)
	VerifyTransfer(ctx context.Context, transferCode string) (*TransferStatusResponse, error)
}

// Provider-side terminal success status.
const TransferStatusSuccess = "success"

// Provider-side terminal failure statuses.
func IsTerminalFailure(status string) bool {
	return status == "failed" || status == "reversed"
}
