// Package fold provides nonlinear wave-folding of signals in roughly
// [-1, 1]: a drive stage followed by one of three selectable characters
// that wrap or saturate the driven signal back into range.
package fold

import "math"

const (
	// maxDrive is the gain applied ahead of the nonlinearity at full fold
	// amount: drive = 1 + amount*maxDriveBoost, up to 5x.
	maxDriveBoost = 4.0

	// softClipKnee is where the rational saturator meets exactly +/-1.
	softClipKnee = 3.0
)

// Type selects the folding character.
type Type int

const (
	// TypeSymmetric wraps the driven signal into [-1, 1] with no
	// discontinuity, as a period-4 triangle of the input.
	TypeSymmetric Type = iota
	// TypeAsymmetric folds positive excursions and soft-clips negative ones.
	TypeAsymmetric
	// TypeSoftClip saturates smoothly toward +/-1 without folding.
	TypeSoftClip
)

func (t Type) String() string {
	switch t {
	case TypeSymmetric:
		return "symmetric"
	case TypeAsymmetric:
		return "asymmetric"
	case TypeSoftClip:
		return "soft_clip"
	default:
		return "unknown"
	}
}

// SoftClip saturates x smoothly toward +/-1 using the rational shaper
// x*(27+x^2)/(27+9x^2), exact at x=0 and clipped to exactly +/-1 beyond
// |x| = 3 where the curve meets the rails.
func SoftClip(x float64) float64 {
	if x < -softClipKnee {
		return -1
	}

	if x > softClipKnee {
		return 1
	}

	x2 := x * x

	return x * (27 + x2) / (27 + 9*x2)
}

// triangleWrap maps x onto a period-4 unit triangle so that any input lands
// in [-1, 1] continuously. x=0 maps to the rising zero crossing.
func triangleWrap(x float64) float64 {
	t := x + 1
	t -= 4 * math.Floor(t*0.25)

	if t < 2 {
		return t - 1
	}

	return 3 - t
}

// Fold drives x by 1 + amount*4 and applies the selected nonlinearity.
// Amount 0 is an exact identity for every input and type. For inputs in
// [-1, 1] and any amount in [0, 1] the result stays within [-1, 1] up to
// rounding.
func Fold(x, amount float64, t Type) float64 {
	if amount <= 0 {
		return x
	}

	driven := x * (1 + amount*maxDriveBoost)

	switch t {
	case TypeSymmetric:
		return triangleWrap(driven)
	case TypeAsymmetric:
		if driven >= 0 {
			return triangleWrap(driven)
		}

		return SoftClip(driven)
	default:
		return SoftClip(driven)
	}
}
