package booking

import "math"

// Fee rates applied on top of the nightly subtotal
const (
	serviceFeeRate = 0.10
	taxRate        = 0.05
)

// TotalPrice computes the total charge for a stay: nights times the nightly
// rate, plus a 10% service fee and 5% taxes, rounded to cents.
func TotalPrice(nights int, nightlyRate float64) float64 {
	if nights <= 0 || nightlyRate <= 0 {
		return 0
	}

	base := float64(nights) * nightlyRate
	total := base + base*serviceFeeRate + base*taxRate
	return math.Round(total*100) / 100
}
