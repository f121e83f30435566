// Package osc provides phase-accumulator waveform synthesis on normalized
// phase in [0, 1): sine, triangle, saw and pulse primitives, PolyBLEP
// alias-suppressed variants of the discontinuous shapes, and a continuous
// warp morph across the four shapes.
package osc

import "math"

const twoPi = 2 * math.Pi

// AdvancePhase moves phase forward by increment and wraps into [0, 1).
// Negative increments are allowed; the result is always wrapped.
func AdvancePhase(phase, increment float64) float64 {
	phase += increment
	phase -= math.Floor(phase)

	return phase
}

// WrapPhase wraps an arbitrary phase value into [0, 1).
func WrapPhase(phase float64) float64 {
	phase -= math.Floor(phase)
	if phase < 0 {
		phase += 1
	}

	return phase
}

// Sine evaluates a unit sine at normalized phase: Sine(0.25) = 1.
func Sine(phase float64) float64 {
	return math.Sin(phase * twoPi)
}

// Triangle evaluates a unit triangle rising through 0 at phase 0,
// peaking at 0.25 and reaching -1 at 0.75.
func Triangle(phase float64) float64 {
	switch {
	case phase < 0.25:
		return phase * 4
	case phase < 0.75:
		return 2 - phase*4
	default:
		return phase*4 - 4
	}
}

// Saw evaluates a unit rising saw with its discontinuity at phase 0.
func Saw(phase float64) float64 {
	return 2*phase - 1
}

// Pulse evaluates a unit square pulse: +1 in the first half cycle,
// -1 in the second.
func Pulse(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}

	return -1
}

// PolyBLEP returns the quadratic residual used to smooth a unit step
// discontinuity at phase 0. dt is the per-sample phase increment; the
// correction is non-zero only within one increment of the discontinuity,
// so its width tracks frequency.
func PolyBLEP(phase, dt float64) float64 {
	if phase < dt {
		t := phase / dt
		return t + t - t*t - 1
	}

	if phase > 1-dt {
		t := (phase - 1) / dt
		return t*t + t + t + 1
	}

	return 0
}

// SawBLEP evaluates an alias-suppressed saw. The PolyBLEP residual is
// subtracted around the falling discontinuity at phase 0.
func SawBLEP(phase, dt float64) float64 {
	return Saw(phase) - PolyBLEP(phase, dt)
}

// PulseBLEP evaluates an alias-suppressed pulse. Corrections apply at the
// rising edge (phase 0) and the falling edge (phase 0.5).
func PulseBLEP(phase, dt float64) float64 {
	p := Pulse(phase) + PolyBLEP(phase, dt)

	shifted := phase + 0.5
	if shifted >= 1 {
		shifted -= 1
	}

	return p - PolyBLEP(shifted, dt)
}

// Warp morphs between waveform shapes under a single control in [0, 1]:
// sine to triangle over [0, 1/3], triangle to saw over [1/3, 2/3], and saw
// to pulse over [2/3, 1]. At warp 0 the output is exactly the sine of the
// phase. No alias suppression is applied; see WarpBLEP for the band-limited
// variant used at audio rate.
func Warp(phase, warp float64) float64 {
	if warp <= 0 {
		return Sine(phase)
	}

	sine := Sine(phase)

	switch {
	case warp <= 1.0/3.0:
		t := warp * 3
		tri := Triangle(phase)

		return sine + t*(tri-sine)
	case warp <= 2.0/3.0:
		t := (warp - 1.0/3.0) * 3
		tri := Triangle(phase)
		saw := Saw(phase)

		return tri + t*(saw-tri)
	default:
		t := (warp - 2.0/3.0) * 3
		saw := Saw(phase)
		pls := Pulse(phase)

		return saw + t*(pls-saw)
	}
}

// WarpBLEP is Warp with PolyBLEP correction on the saw and pulse legs.
// dt is the per-sample phase increment of the oscillator being shaped.
// Only the discontinuous components are corrected; sine and triangle pass
// through untouched.
func WarpBLEP(phase, warp, dt float64) float64 {
	if warp <= 0 {
		return Sine(phase)
	}

	sine := Sine(phase)

	switch {
	case warp <= 1.0/3.0:
		t := warp * 3
		tri := Triangle(phase)

		return sine + t*(tri-sine)
	case warp <= 2.0/3.0:
		t := (warp - 1.0/3.0) * 3
		tri := Triangle(phase)
		saw := SawBLEP(phase, dt)

		return tri + t*(saw-tri)
	default:
		t := (warp - 2.0/3.0) * 3
		saw := SawBLEP(phase, dt)
		pls := PulseBLEP(phase, dt)

		return saw + t*(pls-saw)
	}
}
