// Package tuning provides pure control-value conversions for driving
// oscillator frequencies: volt-per-octave and MIDI note pitch maps, quantized
// coarse ratio and fixed-frequency maps, and cents-based fine detune.
//
// All functions are total over their declared input ranges and never fail;
// callers are responsible for range clamping before conversion.
package tuning

import "math"

const (
	// middleCHz is the frequency mapped to 0 V in the volt-per-octave convention.
	middleCHz = 261.63

	// a4Hz is concert pitch, MIDI note 69.
	a4Hz = 440.0

	// fixedParamMax is the upper end of the continuous coarse parameter in
	// fixed-frequency mode, mapped to fixedMaxHz.
	fixedParamMax = 64.0
	fixedMaxHz    = 9999.0

	centsPerOctave = 1200.0
)

var lnFixedMax = math.Log(fixedMaxHz)

// VOctToFreq converts a volt-per-octave voltage to frequency in Hz.
// 0 V is middle C (261.63 Hz); each additional volt doubles the frequency.
func VOctToFreq(voltage float64) float64 {
	return middleCHz * pow2(voltage)
}

// NoteToFreq converts a MIDI note number to frequency in Hz.
// Note 69 is A4 = 440 Hz; fractional notes are allowed.
func NoteToFreq(note float64) float64 {
	return a4Hz * pow2((note-69)/12)
}

// CoarseRatioFromIndex maps a quantized coarse knob index to a frequency
// ratio. Indices 0..2 select the sub-unity ratios 0.25, 0.5 and 0.75;
// from index 3 upward the ratio ramps from 1.0 in exact 0.5 steps.
func CoarseRatioFromIndex(index int) float64 {
	switch index {
	case 0:
		return 0.25
	case 1:
		return 0.5
	case 2:
		return 0.75
	}

	return float64(index-1) * 0.5
}

// CoarseFixedFromParam maps a continuous coarse parameter in [0, 64] to a
// fixed frequency in Hz. The map is exponential and strictly monotonic:
// 0 yields 1 Hz, 64 yields 9999 Hz.
func CoarseFixedFromParam(param float64) float64 {
	return expNat(param / fixedParamMax * lnFixedMax)
}

// CentsToMultiplier converts a detune in cents to a frequency multiplier.
// 0 cents is an exact unity multiplier; +1200 cents doubles the frequency.
func CentsToMultiplier(cents float64) float64 {
	return pow2(cents / centsPerOctave)
}
