package fm

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fm/dsp/fold"
	"github.com/cwbudde/algo-fm/dsp/tuning"
	"github.com/cwbudde/algo-fm/measure/levels"
)

const testRate = 48000.0

// singleCarrierParams selects algorithm 8 (index 7, all carriers, no
// modulation) with only operator 1 audible.
func singleCarrierParams() Params {
	p := DefaultParams()
	p.Algorithm = 7
	p.Ops[1].Level = 0
	p.Ops[2].Level = 0
	p.Ops[3].Level = 0

	return p
}

func render(t *testing.T, params Params, samples int) []float64 {
	t.Helper()

	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out := make([]float64, samples)
	e.Render(out, params)

	return out
}

func diffRMS(a, b []float64) float64 {
	diff := make([]float64, len(a))
	for i := range a {
		diff[i] = a[i] - b[i]
	}

	return levels.RMS(diff)
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := New(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}

	if _, err := New(testRate, WithDCCutoffHz(0)); err == nil {
		t.Fatal("expected error for DC cutoff below minimum")
	}

	if _, err := New(100, WithDCCutoffHz(60)); err == nil {
		t.Fatal("expected error for DC cutoff at Nyquist")
	}
}

func TestSingleCarrierFrequency(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Params)
		min, max int
	}{
		{"base frequency", func(*Params) {}, 259, 264},
		{"double coarse ratio", func(p *Params) { p.Ops[0].Coarse = 2 }, 520, 526},
		{"fixed 440 Hz", func(p *Params) {
			p.Ops[0].FreqMode = FreqModeFixed
			p.Ops[0].Coarse = 440
		}, 437, 443},
		{"+100 cents fine", func(p *Params) {
			p.Ops[0].Fine = tuning.CentsToMultiplier(100)
		}, 274, 280},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := singleCarrierParams()
			tt.mutate(&params)

			out := render(t, params, 48000)

			got := levels.ZeroCrossings(out)
			if got < tt.min || got > tt.max {
				t.Fatalf("zero crossings per second = %d, want in [%d, %d]", got, tt.min, tt.max)
			}
		})
	}
}

func TestAlgorithm8SumsFourEqualCarriers(t *testing.T) {
	quad := DefaultParams()
	quad.Algorithm = 7

	single := singleCarrierParams()

	quadOut := render(t, quad, 4800)
	singleOut := render(t, single, 4800)

	quadRMS := levels.RMS(quadOut)
	singleRMS := levels.RMS(singleOut)

	if singleRMS == 0 {
		t.Fatal("single carrier produced silence")
	}

	ratio := quadRMS / singleRMS
	if ratio < 4*0.95 || ratio > 4*1.05 {
		t.Fatalf("four equal carriers at %g x single carrier, want 4 +/- 5%%", ratio)
	}
}

func TestGainZeroForcesExactZero(t *testing.T) {
	params := DefaultParams()
	params.Algorithm = 0
	params.ModDepth = 1
	params.Gain = 0

	for op := range params.Ops {
		params.Ops[op].Warp = 1
		params.Ops[op].Fold = 1
		params.Ops[op].Feedback = 1
	}

	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := range 100 {
		if out := e.ProcessSample(params, 0.5); math.Abs(out) > 1e-10 {
			t.Fatalf("sample %d with zero gain = %g, want 0", i, out)
		}
	}
}

func TestShapingChangesOutput(t *testing.T) {
	baseline := render(t, singleCarrierParams(), 4800)

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"warp", func(p *Params) { p.Ops[0].Warp = 0.5 }},
		{"fold", func(p *Params) { p.Ops[0].Fold = 0.5 }},
		{"feedback", func(p *Params) { p.Ops[0].Feedback = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := singleCarrierParams()
			tt.mutate(&params)

			out := render(t, params, 4800)

			if d := diffRMS(out, baseline); d <= 0.01 {
				t.Fatalf("%s RMS difference versus clean sine = %g, want > 0.01", tt.name, d)
			}
		})
	}
}

func TestModulationDeepensSpectrumViaChain(t *testing.T) {
	// Algorithm 1 (index 0) is the full 4=>3=>2=>1 chain; raising the global
	// modulation depth must change the carrier output.
	params := DefaultParams()
	params.Algorithm = 0

	dry := render(t, params, 4800)

	params.ModDepth = 1

	wet := render(t, params, 4800)

	if d := diffRMS(wet, dry); d <= 0.01 {
		t.Fatalf("modulation depth 1 changed output by RMS %g, want > 0.01", d)
	}
}

func TestDCBlockerDecaysConstantInput(t *testing.T) {
	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out := 1.0
	for range 10000 {
		out = e.dcBlock(1)
	}

	if math.Abs(out) > 0.01 {
		t.Fatalf("DC blocker output after 10000 constant samples = %g, want < 0.01", out)
	}
}

func TestDCBlockerPassesAudioRate(t *testing.T) {
	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	peak := 0.0
	for i := range 9600 {
		out := e.dcBlock(math.Sin(2 * math.Pi * 440 * float64(i) / testRate))
		if i > 4800 {
			if a := math.Abs(out); a > peak {
				peak = a
			}
		}
	}

	if peak < 0.9 {
		t.Fatalf("settled 440 Hz peak through DC blocker = %g, want > 0.9", peak)
	}
}

func TestAsymmetricFoldOffsetRemoved(t *testing.T) {
	params := singleCarrierParams()
	params.Ops[0].Fold = 1
	params.Ops[0].FoldType = fold.TypeAsymmetric
	params.Ops[0].Feedback = 0.5

	out := render(t, params, 48000)

	if mean := math.Abs(levels.Mean(out)); mean > 0.05 {
		t.Fatalf("mean after DC blocking = %g, want < 0.05", mean)
	}
}

func TestWorstCaseParametersStayBounded(t *testing.T) {
	params := DefaultParams()
	params.Algorithm = 0 // deepest chain
	params.ModDepth = 1

	for op := range params.Ops {
		params.Ops[op].Warp = 1
		params.Ops[op].Fold = 1
		params.Ops[op].Feedback = 1
	}

	out := render(t, params, 48000)

	if peak := levels.Peak(out); peak >= 10 {
		t.Fatalf("worst-case peak = %g, want < 10", peak)
	}
}

func TestExternalPMIdentityWhenSilent(t *testing.T) {
	params := singleCarrierParams()

	withDepth := params
	withDepth.ExtDepth = 1

	e1, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e2, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := range 4800 {
		y1 := e1.ProcessSample(params, 0)

		y2 := e2.ProcessSample(withDepth, 0)
		if y1 != y2 {
			t.Fatalf("external PM with silent input altered sample %d: %g vs %g", i, y1, y2)
		}
	}
}

func TestExternalPMShiftsOutput(t *testing.T) {
	params := singleCarrierParams()
	params.ExtDepth = 1

	e1, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e2, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	changed := false
	for i := range 4800 {
		ext := 0.3 * math.Sin(2*math.Pi*110*float64(i)/testRate)

		y1 := e1.ProcessSample(params, 0)
		y2 := e2.ProcessSample(params, ext)

		// While the external stage is active, the output is a fresh sine
		// and stays strictly within [-1, 1].
		if math.Abs(ext) > 1e-6 && math.Abs(y2) > 1+1e-9 {
			t.Fatalf("external PM output at sample %d = %g, outside sine range", i, y2)
		}

		if y1 != y2 {
			changed = true
		}
	}

	if !changed {
		t.Fatal("external PM with a live signal never altered the output")
	}
}

func TestFeedbackBounds(t *testing.T) {
	if got := Feedback(0.8, 0); got != 0 {
		t.Fatalf("Feedback(0.8, 0) = %g, want exactly 0", got)
	}

	if got := Feedback(10, 1); got < -1 || got > 1 {
		t.Fatalf("Feedback(10, 1) = %g, outside [-1, 1]", got)
	}

	if got := Feedback(-10, 1); got < -1 || got > 1 {
		t.Fatalf("Feedback(-10, 1) = %g, outside [-1, 1]", got)
	}
}

func TestDenormalFlushEmptiesDCState(t *testing.T) {
	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	params := singleCarrierParams()
	for range 1000 {
		e.ProcessSample(params, 0)
	}

	// Mute everything; the blocker tail must decay to exact zero instead of
	// lingering in subnormal range.
	for op := range params.Ops {
		params.Ops[op].Level = 0
	}

	for range 60000 {
		e.ProcessSample(params, 0)
	}

	if e.state.DCPrevInput != 0 || e.state.DCPrevOutput != 0 {
		t.Fatalf("DC blocker cells not flushed: in=%g out=%g", e.state.DCPrevInput, e.state.DCPrevOutput)
	}
}

func TestStateRoundTrip(t *testing.T) {
	params := DefaultParams()
	params.Algorithm = 2
	params.ModDepth = 0.7
	params.Ops[3].Feedback = 0.4

	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for range 512 {
		e.ProcessSample(params, 0)
	}

	clone, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := clone.SetState(e.State()); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	for i := range 512 {
		y1 := e.ProcessSample(params, 0.1)

		y2 := clone.ProcessSample(params, 0.1)
		if math.Abs(y1-y2) > 1e-12 {
			t.Fatalf("state mismatch at sample %d: %g vs %g", i, y1, y2)
		}
	}
}

func TestSetStateRejectsNonFinite(t *testing.T) {
	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	st := State{}
	st.Ops[2].Phase = math.NaN()

	if err := e.SetState(st); err == nil {
		t.Fatal("expected error for non-finite state")
	}

	st = State{}
	st.DCPrevOutput = math.Inf(1)

	if err := e.SetState(st); err == nil {
		t.Fatal("expected error for non-finite DC state")
	}
}

func TestResetClearsState(t *testing.T) {
	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	params := DefaultParams()
	params.Algorithm = 7

	for range 100 {
		e.ProcessSample(params, 0)
	}

	e.Reset()

	if e.State() != (State{}) {
		t.Fatalf("state after Reset = %+v, want zero value", e.State())
	}
}

func TestProcessSampleDoesNotAllocate(t *testing.T) {
	e, err := New(testRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	params := DefaultParams()
	params.Algorithm = 0
	params.ModDepth = 1

	if allocs := testing.AllocsPerRun(1000, func() {
		e.ProcessSample(params, 0.2)
	}); allocs != 0 {
		t.Fatalf("ProcessSample allocates %v times per call, want 0", allocs)
	}
}
