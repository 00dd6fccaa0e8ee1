package lib

import "math"

// ToCents converts a decimal currency amount to integer minor units.
func ToCents(value float64) uint64 {
	return uint64(math.Round(value * 100))
}

// FromCents converts integer minor units back to decimal currency.
func FromCents(value uint64) float64 {
	return float64(value) / 100
}
