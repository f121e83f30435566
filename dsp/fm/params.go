package fm

import (
	"fmt"

	"github.com/cwbudde/algo-fm/dsp/fold"
)

// FreqMode selects how an operator's coarse value is interpreted.
type FreqMode int

const (
	// FreqModeRatio multiplies the voice's base frequency by the coarse ratio.
	FreqModeRatio FreqMode = iota
	// FreqModeFixed treats the coarse value as an absolute frequency in Hz,
	// independent of the voice's base frequency.
	FreqModeFixed
)

func (m FreqMode) String() string {
	switch m {
	case FreqModeRatio:
		return "ratio"
	case FreqModeFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// OperatorParams holds one operator's control values for a single sample.
type OperatorParams struct {
	Coarse   float64 // frequency ratio in ratio mode, Hz in fixed mode
	Fine     float64 // frequency multiplier, typically from tuning.CentsToMultiplier
	Level    float64 // output/modulation level in [0, 1]
	Warp     float64 // waveform morph in [0, 1]
	Fold     float64 // fold amount in [0, 1]
	Feedback float64 // self-modulation amount in [0, 1]
	FreqMode FreqMode
	FoldType fold.Type
}

// Params is a transient snapshot of every control value consumed by one
// ProcessSample call. Callers rebuild it each sample from their resolved
// control sources; the engine never retains a reference to it.
//
// Levels, warp, fold and feedback amounts are expected to be clamped to
// [0, 1] and Algorithm to [0, NumAlgorithms) before the call. The hot path
// does not re-validate; Validate is available for callers that want a check
// at control rate.
type Params struct {
	Algorithm int     // index into Algorithms
	ModDepth  float64 // global modulation depth in [0, 1]
	ExtDepth  float64 // external phase-modulation depth in [0, 1]
	Gain      float64 // output gain in [0, 1]
	BaseFreq  float64 // voice base frequency in Hz
	Ops       [4]OperatorParams
}

// DefaultParams returns a snapshot with all four operators at unity ratio
// and full level, no shaping, and the base frequency at middle C.
func DefaultParams() Params {
	p := Params{
		Gain:     1,
		BaseFreq: 261.63,
	}

	for op := range p.Ops {
		p.Ops[op] = OperatorParams{
			Coarse: 1,
			Fine:   1,
			Level:  1,
		}
	}

	return p
}

// Validate reports the first contract violation in the snapshot. The engine
// itself never calls this; it exists for callers that populate Params from
// unclamped sources.
func (p *Params) Validate() error {
	if p.Algorithm < 0 || p.Algorithm >= NumAlgorithms {
		return fmt.Errorf("fm: algorithm index must be in [0, %d]: %d", NumAlgorithms-1, p.Algorithm)
	}

	if err := validateUnitRange(p.ModDepth, "modulation depth"); err != nil {
		return err
	}

	if err := validateUnitRange(p.ExtDepth, "external depth"); err != nil {
		return err
	}

	if err := validateUnitRange(p.Gain, "gain"); err != nil {
		return err
	}

	if p.BaseFreq < 0 {
		return fmt.Errorf("fm: base frequency must be >= 0 Hz: %f", p.BaseFreq)
	}

	for op := range p.Ops {
		o := &p.Ops[op]

		field := func(name string) string {
			return fmt.Sprintf("operator %d %s", op+1, name)
		}

		if o.Coarse < 0 {
			return fmt.Errorf("fm: %s must be >= 0: %f", field("coarse"), o.Coarse)
		}

		if err := validateUnitRange(o.Level, field("level")); err != nil {
			return err
		}

		if err := validateUnitRange(o.Warp, field("warp")); err != nil {
			return err
		}

		if err := validateUnitRange(o.Fold, field("fold")); err != nil {
			return err
		}

		if err := validateUnitRange(o.Feedback, field("feedback")); err != nil {
			return err
		}

		if o.FreqMode != FreqModeRatio && o.FreqMode != FreqModeFixed {
			return fmt.Errorf("fm: %s is invalid: %d", field("frequency mode"), o.FreqMode)
		}

		if o.FoldType < fold.TypeSymmetric || o.FoldType > fold.TypeSoftClip {
			return fmt.Errorf("fm: %s is invalid: %d", field("fold type"), o.FoldType)
		}
	}

	return nil
}

func validateUnitRange(value float64, name string) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("fm: %s must be in [0, 1]: %f", name, value)
	}

	return nil
}
