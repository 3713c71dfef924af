package reconcile

import "github.com/shopspring/decimal"

// roundCurrency rounds an amount to two decimal places, half-up. Every
// currency comparison in the pipeline goes through this so that float noise
// never shows up as a spurious divergence.
func roundCurrency(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// roundScore rounds a score to two decimal places, half-up.
func roundScore(score float64) float64 {
	return roundCurrency(score)
}

// clampScore bounds a score to [0,1].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// currencyDiff is the absolute, currency-rounded difference between two
// amounts.
func currencyDiff(a, b float64) float64 {
	d := roundCurrency(a) - roundCurrency(b)
	if d < 0 {
		d = -d
	}
	return roundCurrency(d)
}
