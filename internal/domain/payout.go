package domain

import "time"

type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusApproved   PayoutStatus = "approved"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusRejected   PayoutStatus = "rejected"
	PayoutStatusFailed     PayoutStatus = "failed"
)

type PayoutMethod string

const (
	PayoutMethodMobileMoney PayoutMethod = "mobile_money"
	PayoutMethodBank        PayoutMethod = "bank"
)

// PayoutRequest is a vendor's withdrawal of accumulated seller amounts.
// AccountDetails is a schema-less payload (recipient name, account number,
// bank or network code) because required fields vary by payout method;
// it is validated at processing time, not at creation.
type PayoutRequest struct {
	ID                   int32             `json:"id"`
	VendorID             int32             `json:"vendor_id"`
	Amount               float64           `json:"amount"`
	PayoutMethod         PayoutMethod      `json:"payout_method"`
	AccountDetails       map[string]string `json:"account_details"`
	Status               PayoutStatus      `json:"status"`
	ProcessedBy          *int32            `json:"processed_by,omitempty"`
	ProcessedAt          *time.Time        `json:"processed_at,omitempty"`
	RejectionReason      string            `json:"rejection_reason,omitempty"`
	FailureReason        string            `json:"failure_reason,omitempty"`
	TransferCode         string            `json:"transfer_code,omitempty"`
	TransactionReference string            `json:"transaction_reference,omitempty"`
	CreatedOn            time.Time         `json:"created_on"`
	UpdatedOn            time.Time         `json:"updated_on"`
}

func ValidPayoutStatus(s PayoutStatus) bool {
	switch s {
	case PayoutStatusPending, PayoutStatusApproved, PayoutStatusProcessing,
		PayoutStatusCompleted, PayoutStatusRejected, PayoutStatusFailed:
		return true
	}
	return false
}

// payoutTransitions is the allowed transition table. Money movement is
// irreversible, so unlike payment/delivery statuses these are enforced:
// completed, rejected and failed are terminal.
var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutStatusPending:    {PayoutStatusApproved, PayoutStatusRejected},
	PayoutStatusApproved:   {PayoutStatusProcessing},
	PayoutStatusProcessing: {PayoutStatusCompleted, PayoutStatusFailed},
}

// CanTransitionPayout reports whether a payout request in status from may
// move to status to.
func CanTransitionPayout(from, to PayoutStatus) bool {
	for _, next := range payoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalPayoutStatus reports whether no further transitions exist.
func IsTerminalPayoutStatus(s PayoutStatus) bool {
	return len(payoutTransitions[s]) == 0 && ValidPayoutStatus(s)
}
