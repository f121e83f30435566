package tuning

import (
	"math"
	"testing"
)

func TestVOctToFreq(t *testing.T) {
	tests := []struct {
		voltage float64
		wantHz  float64
	}{
		{0, 261.63},
		{1, 523.26},
		{-1, 130.815},
		{2, 1046.52},
	}

	for _, tt := range tests {
		if got := VOctToFreq(tt.voltage); math.Abs(got-tt.wantHz) > 0.5 {
			t.Fatalf("VOctToFreq(%g) = %g Hz, want %g Hz", tt.voltage, got, tt.wantHz)
		}
	}
}

func TestNoteToFreq(t *testing.T) {
	tests := []struct {
		note   float64
		wantHz float64
	}{
		{69, 440},
		{81, 880},
		{57, 220},
		{60, 261.6256},
	}

	for _, tt := range tests {
		if got := NoteToFreq(tt.note); math.Abs(got-tt.wantHz) > 0.01 {
			t.Fatalf("NoteToFreq(%g) = %g Hz, want %g Hz", tt.note, got, tt.wantHz)
		}
	}
}

func TestCoarseRatioFromIndexExact(t *testing.T) {
	tests := []struct {
		index int
		want  float64
	}{
		{0, 0.25},
		{1, 0.5},
		{2, 0.75},
		{3, 1.0},
		{4, 1.5},
		{5, 2.0},
		{64, 31.5},
	}

	for _, tt := range tests {
		if got := CoarseRatioFromIndex(tt.index); got != tt.want {
			t.Fatalf("CoarseRatioFromIndex(%d) = %v, want exactly %v", tt.index, got, tt.want)
		}
	}
}

func TestCoarseFixedFromParamEndpoints(t *testing.T) {
	if got := CoarseFixedFromParam(0); math.Abs(got-1) > 1e-9 {
		t.Fatalf("CoarseFixedFromParam(0) = %g, want 1 Hz", got)
	}

	if got := CoarseFixedFromParam(64); math.Abs(got-9999) > 0.5 {
		t.Fatalf("CoarseFixedFromParam(64) = %g, want 9999 Hz", got)
	}
}

func TestCoarseFixedFromParamMonotonic(t *testing.T) {
	prev := CoarseFixedFromParam(0)
	for p := 0.5; p <= 64; p += 0.5 {
		cur := CoarseFixedFromParam(p)
		if cur <= prev {
			t.Fatalf("CoarseFixedFromParam not strictly increasing at %g: %g <= %g", p, cur, prev)
		}

		prev = cur
	}
}

func TestCentsToMultiplier(t *testing.T) {
	if got := CentsToMultiplier(0); got != 1 {
		t.Fatalf("CentsToMultiplier(0) = %v, want exactly 1", got)
	}

	if got := CentsToMultiplier(1200); math.Abs(got-2) > 1e-9 {
		t.Fatalf("CentsToMultiplier(1200) = %g, want 2", got)
	}

	if got := CentsToMultiplier(-1200); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("CentsToMultiplier(-1200) = %g, want 0.5", got)
	}

	if got := CentsToMultiplier(100); math.Abs(got-math.Exp2(1.0/12.0)) > 1e-12 {
		t.Fatalf("CentsToMultiplier(100) = %g, want one semitone", got)
	}
}
