package fm

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fm/dsp/core"
	"github.com/cwbudde/algo-fm/dsp/fold"
	"github.com/cwbudde/algo-fm/dsp/osc"
)

const (
	defaultDCCutoffHz = 20.0
	minDCCutoffHz     = 0.1

	// extPMThreshold gates the external phase-modulation stage; signals
	// below it are treated as silence so the stage stays a strict identity.
	extPMThreshold = 1e-6

	twoPi = 2 * math.Pi
)

// OperatorState is one operator's persistent memory: its phase accumulator
// and the previous output sample, which feeds only the operator's own
// feedback path.
type OperatorState struct {
	Phase      float64
	PrevOutput float64
}

// State is the complete persistent state of one synthesis voice: the four
// operator records plus the DC blocker memory cells. It is exclusively
// owned by its engine and must not be shared across voices or goroutines.
type State struct {
	Ops          [4]OperatorState
	DCPrevInput  float64
	DCPrevOutput float64
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	dcCutoffHz float64
}

func defaultConfig() config {
	return config{
		dcCutoffHz: defaultDCCutoffHz,
	}
}

// WithDCCutoffHz sets the DC blocker corner frequency in Hz. It must stay
// far below audio rate for the blocker to pass sustained audio content
// unattenuated.
func WithDCCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(cutoffHz) || cutoffHz < minDCCutoffHz {
			return fmt.Errorf("fm: DC cutoff must be >= %g Hz and finite: %f", minDCCutoffHz, cutoffHz)
		}

		cfg.dcCutoffHz = cutoffHz

		return nil
	}
}

// Engine is a four-operator phase-modulation voice. It runs the operator
// network twice per host sample at half the sample period and averages the
// two results, removes residual offset with a one-pole DC blocker, and
// optionally re-modulates its own output with an external audio-rate signal.
//
// ProcessSample performs no allocation and has fixed cost; an Engine is
// deterministic and single-owner.
type Engine struct {
	sampleRate float64
	sampleTime float64
	dcCutoffHz float64
	dcPole     float64

	state State
}

// New constructs an engine for the given host sample rate.
func New(sampleRate float64, opts ...Option) (*Engine, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("fm: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.dcCutoffHz >= sampleRate*0.5 {
		return nil, fmt.Errorf("fm: DC cutoff must be < Nyquist (%f Hz): %f", sampleRate*0.5, cfg.dcCutoffHz)
	}

	e := &Engine{
		sampleRate: sampleRate,
		sampleTime: 1 / sampleRate,
		dcCutoffHz: cfg.dcCutoffHz,
	}
	e.dcPole = 1 - twoPi*cfg.dcCutoffHz/sampleRate

	return e, nil
}

// SampleRate returns the host sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// DCCutoffHz returns the DC blocker corner frequency in Hz.
func (e *Engine) DCCutoffHz() float64 { return e.dcCutoffHz }

// Reset clears all operator phases, feedback memory and DC blocker state.
func (e *Engine) Reset() {
	e.state = State{}
}

// State returns a copy of the voice state.
func (e *Engine) State() State {
	return e.state
}

// SetState restores an externally saved voice state.
func (e *Engine) SetState(state State) error {
	if !stateIsFinite(state) {
		return fmt.Errorf("fm: state contains NaN or Inf")
	}

	e.state = state

	return nil
}

// Feedback returns the bounded self-phase-modulation term derived from an
// operator's previous output. The product is soft-clipped, so the result
// stays in [-1, 1] for any input magnitude; amount 0 yields exactly 0.
func Feedback(prevOutput, amount float64) float64 {
	return fold.SoftClip(prevOutput * amount)
}

// ProcessSample advances the voice by one host sample and returns the
// output, nominally within [-1, 1.1] before any host-side scaling.
//
// params must satisfy the contract documented on Params; extPM is an
// optional external phase-modulation signal (pass 0 when unused). The call
// is allocation-free and must not run concurrently with any other method of
// the same engine.
func (e *Engine) ProcessSample(params Params, extPM float64) float64 {
	osTime := e.sampleTime * 0.5
	algo := &Algorithms[params.Algorithm]

	var result [2]float64

	for pass := range result {
		var opOut [4]float64

		// Descending order: every modulation source is evaluated before
		// its targets, valid because the table is acyclic with src > dst.
		for op := 3; op >= 0; op-- {
			p := &params.Ops[op]

			var freq float64
			if p.FreqMode == FreqModeFixed {
				freq = p.Coarse * p.Fine
			} else {
				freq = params.BaseFreq * p.Coarse * p.Fine
			}

			inc := freq * osTime

			st := &e.state.Ops[op]
			st.Phase = osc.AdvancePhase(st.Phase, inc)

			pm := gatherModulation(op, &opOut, &params, algo)
			pm += Feedback(st.PrevOutput, p.Feedback)

			modPhase := osc.WrapPhase(st.Phase + pm)

			out := osc.WarpBLEP(modPhase, p.Warp, inc)
			out = fold.Fold(out, p.Fold, p.FoldType)

			opOut[op] = out
			st.PrevOutput = out
		}

		result[pass] = sumCarriers(&opOut, &params, algo)
	}

	// Half-band average of the two oversampled passes.
	out := (result[0] + result[1]) * 0.5
	out = e.dcBlock(out)

	// External PM reinterprets the blocked output as the sine of a carrier
	// phase and re-emits a sine at the shifted phase. The inverse sine is
	// two-to-one, so rising and falling half-cycles reconstruct to the same
	// phase; that ambiguity is part of the stage's character.
	if params.ExtDepth > 0 && math.Abs(extPM) > extPMThreshold {
		carrierPhase := math.Asin(core.Clamp(out, -1, 1))/twoPi + 0.25
		out = osc.Sine(carrierPhase + extPM*params.ExtDepth)
	}

	return out * params.Gain
}

// Render fills dst by processing one sample per element with a constant
// parameter snapshot and no external modulation.
func (e *Engine) Render(dst []float64, params Params) {
	for i := range dst {
		dst[i] = e.ProcessSample(params, 0)
	}
}

// gatherModulation sums the phase modulation arriving at target from every
// source the algorithm routes into it, weighted by the source's level and
// the global modulation depth. Sources with a higher index were evaluated
// earlier in the current pass.
func gatherModulation(target int, opOut *[4]float64, params *Params, algo *Algorithm) float64 {
	pm := 0.0

	for src := target + 1; src < 4; src++ {
		if algo.Mod[src][target] {
			pm += opOut[src] * params.Ops[src].Level * params.ModDepth
		}
	}

	return pm
}

// sumCarriers mixes the operators flagged as carriers, each weighted by its
// own level.
func sumCarriers(opOut *[4]float64, params *Params, algo *Algorithm) float64 {
	mix := 0.0

	for op := range 4 {
		if algo.Carrier[op] {
			mix += opOut[op] * params.Ops[op].Level
		}
	}

	return mix
}

// dcBlock runs the one-pole high-pass over the averaged output. Both memory
// cells are flushed so decaying tails cannot park the filter in subnormal
// range.
func (e *Engine) dcBlock(in float64) float64 {
	s := &e.state
	out := in - s.DCPrevInput + e.dcPole*s.DCPrevOutput

	s.DCPrevInput = core.FlushDenormal(in)
	s.DCPrevOutput = core.FlushDenormal(out)

	return out
}

func stateIsFinite(state State) bool {
	for _, op := range state.Ops {
		if !core.IsFinite(op.Phase) || !core.IsFinite(op.PrevOutput) {
			return false
		}
	}

	return core.IsFinite(state.DCPrevInput) && core.IsFinite(state.DCPrevOutput)
}
