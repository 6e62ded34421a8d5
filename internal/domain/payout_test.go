package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allPayoutStatuses = []PayoutStatus{
	PayoutStatusPending, PayoutStatusApproved, PayoutStatusProcessing,
	PayoutStatusCompleted, PayoutStatusRejected, PayoutStatusFailed,
}

func TestCanTransitionPayout(t *testing.T) {
	allowed := map[PayoutStatus][]PayoutStatus{
		PayoutStatusPending:    {PayoutStatusApproved, PayoutStatusRejected},
		PayoutStatusApproved:   {PayoutStatusProcessing},
		PayoutStatusProcessing: {PayoutStatusCompleted, PayoutStatusFailed},
	}

	for _, from := range allPayoutStatuses {
		for _, to := range allPayoutStatuses {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransitionPayout(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionPayout_NoSelfLoops(t *testing.T) {
	for _, s := range allPayoutStatuses {
		assert.False(t, CanTransitionPayout(s, s), string(s))
	}
}

func TestIsTerminalPayoutStatus(t *testing.T) {
	assert.True(t, IsTerminalPayoutStatus(PayoutStatusCompleted))
	assert.True(t, IsTerminalPayoutStatus(PayoutStatusRejected))
	assert.True(t, IsTerminalPayoutStatus(PayoutStatusFailed))

	assert.False(t, IsTerminalPayoutStatus(PayoutStatusPending))
	assert.False(t, IsTerminalPayoutStatus(PayoutStatusApproved))
	assert.False(t, IsTerminalPayoutStatus(PayoutStatusProcessing))

	// Unknown strings are not terminal, they are invalid
	assert.False(t, IsTerminalPayoutStatus("garbage"))
}

func TestValidPayoutStatus(t *testing.T) {
	for _, s := range allPayoutStatuses {
		assert.True(t, ValidPayoutStatus(s), string(s))
	}
	assert.False(t, ValidPayoutStatus("Pending"), "statuses are lowercase")
	assert.False(t, ValidPayoutStatus(""))
}
