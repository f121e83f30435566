// Package spectral provides FFT-based spectrum measurements for rendered
// audio blocks: single-sided magnitude spectra and band energy ratios. Its
// main use is quantifying alias energy above a split frequency, e.g. to
// compare band-limited and naive waveform synthesis.
package spectral

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Magnitude returns the single-sided magnitude spectrum of signal,
// zero-padded to the next power of two. The result has fftSize/2+1 bins;
// bin k corresponds to k*sampleRate/fftSize Hz.
func Magnitude(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("spectral: signal must not be empty")
	}

	fftSize := nextPowerOf2(len(signal))

	in := make([]complex128, fftSize)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

// BandEnergyRatio returns the fraction of total spectral energy above
// splitHz. A ratio near zero means the signal is effectively band-limited
// below the split.
func BandEnergyRatio(signal []float64, sampleRate, splitHz float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("spectral: sample rate must be > 0: %f", sampleRate)
	}

	if splitHz < 0 || splitHz > sampleRate*0.5 {
		return 0, fmt.Errorf("spectral: split must be in [0, Nyquist]: %f", splitHz)
	}

	mag, err := Magnitude(signal)
	if err != nil {
		return 0, err
	}

	fftSize := 2 * (len(mag) - 1)
	splitBin := int(math.Ceil(splitHz / sampleRate * float64(fftSize)))

	total := 0.0
	high := 0.0

	for i, m := range mag {
		e := m * m
		total += e

		if i >= splitBin {
			high += e
		}
	}

	if total == 0 {
		return 0, nil
	}

	return high / total, nil
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
