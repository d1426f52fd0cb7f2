package calculation

import "math"

// RoundHalfUp rounds to the nearest integer with ties toward positive
// infinity, so 2.5 becomes 3 and -2.5 becomes -2. NaN and ±Inf pass through.
func RoundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// NoRounding reports values at full precision.
func NoRounding(x float64) float64 { return x }
