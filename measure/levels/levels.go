// Package levels provides time-domain level measurements for rendered audio
// blocks: RMS, peak, mean offset and zero-crossing counts. It is measurement
// code for analysis and tests, not part of any per-sample processing path.
package levels

import "math"

// RMS returns the root-mean-square level of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range signal {
		sumSq += v * v
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, v := range signal {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

// Mean returns the arithmetic mean (DC offset) of the signal.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range signal {
		sum += v
	}

	return sum / float64(len(signal))
}

// ZeroCrossings counts positive-to-negative transitions, which for a
// periodic signal is its cycle count over the block.
func ZeroCrossings(signal []float64) int {
	count := 0
	prev := 0.0

	for _, v := range signal {
		if prev > 0 && v <= 0 {
			count++
		}

		prev = v
	}

	return count
}
