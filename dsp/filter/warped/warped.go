// Package warped provides frequency-warped state-space filter stages: a
// first-order section with low-pass and high-pass outputs, and a
// second-order section with low-pass, high-pass, band-pass, notch and
// all-pass modes. The coefficient maps apply a sigma correction to the
// bilinear frequency warp, which keeps the response stable and well tuned
// under audio-rate cutoff modulation. Sections are cascadable: feed one
// section's output into the next for steeper slopes.
package warped

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fm/dsp/core"
)

const (
	invPi    = 1 / math.Pi
	sqrt2    = math.Sqrt2
	invSqrt2 = 1 / math.Sqrt2

	// cutoffParamMax is the knob resolution of the cutoff and resonance
	// control maps.
	cutoffParamMax = 1000.0

	minCutoffHz = 1.0

	// Damping range: 0.707 is Butterworth, 0.01 sits near self-oscillation.
	maxDamping = 0.707
	minDamping = 0.01
)

// Mode selects the filter response of a second-order section. First-order
// sections support only ModeLowpass and ModeHighpass.
type Mode int

const (
	ModeLowpass Mode = iota
	ModeHighpass
	ModeBandpass
	ModeNotch
	ModeAllpass
)

func (m Mode) String() string {
	switch m {
	case ModeLowpass:
		return "lowpass"
	case ModeHighpass:
		return "highpass"
	case ModeBandpass:
		return "bandpass"
	case ModeNotch:
		return "notch"
	case ModeAllpass:
		return "allpass"
	default:
		return "unknown"
	}
}

// CutoffParamToHz maps a control value in [0, 1000] exponentially onto
// [20, 20000] Hz.
func CutoffParamToHz(param float64) float64 {
	return 20 * math.Pow(1000, param/cutoffParamMax)
}

// ResonanceToDamping maps a control value in [0, 1000] linearly from
// Butterworth damping (0.707) down to near self-oscillation (0.01).
func ResonanceToDamping(param float64) float64 {
	t := param / cutoffParamMax

	return maxDamping*(1-t) + minDamping*t
}

// sigmaWarp returns the sigma correction for a normalized angular period w.
// Below the warp threshold the correction is the small-angle constant.
func sigmaWarp(w, threshold, scale, c0, c1 float64) float64 {
	if w <= threshold {
		return threshold
	}

	return scale * (c0 - w*w) / (c1 - w*w)
}

// Section1 is a first-order (6 dB/oct) warped state-space stage.
type Section1 struct {
	mode Mode

	z      float64
	b0, b1 float64
}

// NewSection1 constructs a configured first-order section.
func NewSection1(sampleRate, cutoffHz float64, mode Mode) (*Section1, error) {
	s := &Section1{}
	if err := s.Configure(sampleRate, cutoffHz, mode); err != nil {
		return nil, err
	}

	return s, nil
}

// Configure recomputes coefficients. Only ModeLowpass and ModeHighpass are
// valid for a first-order stage. State is preserved so cutoff can be swept
// while processing.
func (s *Section1) Configure(sampleRate, cutoffHz float64, mode Mode) error {
	if err := validateRates(sampleRate, cutoffHz); err != nil {
		return err
	}

	if mode != ModeLowpass && mode != ModeHighpass {
		return fmt.Errorf("warped: first-order section mode must be lowpass or highpass: %v", mode)
	}

	w := sampleRate / (2 * math.Pi * cutoffHz)
	sigma := sigmaWarp(w, invPi, 0.40824999, 0.05843357, 0.04593294)
	v := math.Sqrt(w*w + sigma*sigma)

	s.mode = mode
	s.b0 = 1 / (0.5 + v)

	if mode == ModeLowpass {
		s.b1 = 0.5 + sigma
	} else {
		s.b1 = w
	}

	return nil
}

// Mode returns the configured response mode.
func (s *Section1) Mode() Mode { return s.mode }

// Reset clears the state variable.
func (s *Section1) Reset() {
	s.z = 0
}

// ProcessSample filters one sample.
func (s *Section1) ProcessSample(x float64) float64 {
	theta := (x - s.z) * s.b0

	var y float64
	if s.mode == ModeLowpass {
		y = theta*s.b1 + s.z
	} else {
		y = theta * s.b1
	}

	s.z = core.FlushDenormal(s.z + theta)

	return y
}

// ProcessInPlace filters a mono buffer in place.
func (s *Section1) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = s.ProcessSample(buf[i])
	}
}

// Section2 is a second-order (12 dB/oct) warped state-space stage.
type Section2 struct {
	mode Mode

	z0, z1         float64
	b0, b1, b2, b3 float64
}

// NewSection2 constructs a configured second-order section. damping is
// 1/(2*Q): 0.707 for Butterworth, lower values for stronger resonance.
func NewSection2(sampleRate, cutoffHz, damping float64, mode Mode) (*Section2, error) {
	s := &Section2{}
	if err := s.Configure(sampleRate, cutoffHz, damping, mode); err != nil {
		return nil, err
	}

	return s, nil
}

// Configure recomputes coefficients for the given response. State is
// preserved so cutoff and damping can be swept while processing.
func (s *Section2) Configure(sampleRate, cutoffHz, damping float64, mode Mode) error {
	if err := validateRates(sampleRate, cutoffHz); err != nil {
		return err
	}

	if !core.IsFinite(damping) || damping <= 0 {
		return fmt.Errorf("warped: damping must be > 0 and finite: %f", damping)
	}

	if mode < ModeLowpass || mode > ModeAllpass {
		return fmt.Errorf("warped: invalid mode: %d", mode)
	}

	w := sampleRate / (sqrt2 * math.Pi * cutoffHz)
	sigma := sigmaWarp(w, sqrt2*invPi, 0.57735268, 0.11686715, 0.09186588)

	wSq := w * w
	sigmaSq := sigma * sigma
	zetaSq := damping * damping

	// State-space eigenvalue decomposition.
	t := wSq * (2*zetaSq - 1)
	v := math.Sqrt(wSq*wSq + sigmaSq*(2*t+sigmaSq))
	k := t + sigmaSq

	s.mode = mode
	s.b0 = 1 / (v + math.Sqrt(v+k) + 0.5)
	s.b1 = math.Sqrt(2 * v)

	switch mode {
	case ModeLowpass:
		s.b2 = 2 * sigmaSq / s.b1
		s.b3 = 0.5 + sigmaSq + sqrt2*sigma
	case ModeHighpass:
		s.b2 = 2 * wSq / s.b1
		s.b3 = wSq
	case ModeBandpass:
		s.b2 = 4 * w * damping * sigma / s.b1
		s.b3 = 2 * w * damping * (sigma + invSqrt2)
	case ModeNotch:
		s.b2 = 2 * (wSq - sigmaSq) / s.b1
		s.b3 = 0.5 + wSq - sigmaSq
	case ModeAllpass:
		s.b2 = s.b1
		s.b3 = 0.5 + v - math.Sqrt(v+k)
	}

	return nil
}

// Mode returns the configured response mode.
func (s *Section2) Mode() Mode { return s.mode }

// Reset clears both state variables.
func (s *Section2) Reset() {
	s.z0 = 0
	s.z1 = 0
}

// ProcessSample filters one sample. High-pass and band-pass responses
// exclude the z0 term from the output; the state update is shared.
func (s *Section2) ProcessSample(x float64) float64 {
	theta := (x - s.z0 - s.z1*s.b1) * s.b0

	y := theta*s.b3 + s.z1*s.b2
	if s.mode != ModeHighpass && s.mode != ModeBandpass {
		y += s.z0
	}

	s.z0 = core.FlushDenormal(s.z0 + theta)
	s.z1 = core.FlushDenormal(-s.z1 - theta*s.b1)

	return y
}

// ProcessInPlace filters a mono buffer in place.
func (s *Section2) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = s.ProcessSample(buf[i])
	}
}

func validateRates(sampleRate, cutoffHz float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("warped: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if !core.IsFinite(cutoffHz) || cutoffHz < minCutoffHz {
		return fmt.Errorf("warped: cutoff must be >= %g Hz and finite: %f", minCutoffHz, cutoffHz)
	}

	if cutoffHz >= sampleRate*0.5 {
		return fmt.Errorf("warped: cutoff must be < Nyquist (%f Hz): %f", sampleRate*0.5, cutoffHz)
	}

	return nil
}
