package utils

import "math"

// Round2 rounds a decimal amount to two decimal places, half away from zero.
// All stored money fields pass through this so that derived sums
// (total = commission + seller amount) hold exactly at the stored precision.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToSubunit converts a decimal amount to the smallest currency unit, the
// integer form payment providers expect (e.g. 12.34 -> 1234).
func ToSubunit(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// SplitCommission computes the platform cut and the seller's portion of a
// total. The seller amount is derived from the rounded commission so the two
// parts always sum back to the total exactly.
func SplitCommission(total, rate float64) (commission, sellerAmount float64) {
	commission = Round2(total * rate)
	sellerAmount = Round2(total - commission)
	return commission, sellerAmount
}
