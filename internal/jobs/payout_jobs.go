package jobs

import (
	"context"
	"time"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/logger"
)

// ReconcilePendingTransfers re-verifies payout requests left in processing
// with a transfer code on record. Verification being unavailable at process
// time is not a failure, so these requests wait here until the provider
// reports a terminal state.
func (jr *JobRunner) ReconcilePendingTransfers() {
	jr.runWithRecovery("ReconcilePendingTransfers", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		requests, err := jr.services.Payout.ListByStatus(ctx, domain.PayoutStatusProcessing)
		if err != nil {
			logger.Error("Failed to list processing payout requests", "error", err)
			return
		}

		for _, req := range requests {
			if req.TransferCode == "" {
				// Processing without a transfer code means the flow died
				// between the status write and the provider call; needs an
				// operator, not a verify.
				logger.Warn("Payout request processing without transfer code", "request_id", req.ID)
				continue
			}

			result, err := jr.services.Processor.Reconcile(ctx, req.ID)
			if err != nil {
				logger.Error("Failed to reconcile payout request", "request_id", req.ID, "error", err)
				continue
			}
			logger.Info("Reconciled payout request",
				"request_id", req.ID, "status", result.Status, "message", result.Message)
		}
	})
}
