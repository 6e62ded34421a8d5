package service

import "context"

// fixedCommissionRate serves the configured platform rate. A tenant-aware
// provider can replace it without touching the transaction service.
type fixedCommissionRate struct {
	rate float64
}

func NewFixedCommissionRate(rate float64) CommissionRateProvider {
	return &fixedCommissionRate{rate: rate}
}

func (p *fixedCommissionRate) CommissionRate(ctx context.Context) (float64, error) {
	return p.rate, nil
}
