//go:build !fastmath

package tuning

import "math"

// pow2 computes 2^x using standard library math.
func pow2(x float64) float64 {
	return math.Exp2(x)
}

// expNat computes e^x using standard library math.
func expNat(x float64) float64 {
	return math.Exp(x)
}
