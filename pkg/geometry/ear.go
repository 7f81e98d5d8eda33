// Package geometry derives per-frame facial features from landmark
// positions: eye openness, iris gaze ratios, head orientation, and
// the coarse direction labels built on top of them.
package geometry

import "github.com/StutiRuparel/FocusMind/pkg/landmark"

// Default thresholds for mapping a raw eye aspect ratio onto a 0-1
// openness value. Empirically tuned for webcam distances.
const (
	DefaultClosedEAR = 0.15
	DefaultOpenEAR   = 0.35
)

// EyeAspectRatio returns the eye aspect ratio (lid separation over
// corner separation) averaged across both eyes. An eye with missing
// landmarks or zero corner separation contributes 0.
func EyeAspectRatio(f landmark.Frame) float64 {
	right := singleEyeAspectRatio(f,
		landmark.RightEyeUpper, landmark.RightEyeLower,
		landmark.RightEyeOuter, landmark.RightEyeInner)
	left := singleEyeAspectRatio(f,
		landmark.LeftEyeUpper, landmark.LeftEyeLower,
		landmark.LeftEyeInner, landmark.LeftEyeOuter)
	return (right + left) / 2
}

func singleEyeAspectRatio(f landmark.Frame, upper, lower, cornerA, cornerB int) float64 {
	if !f.Has(upper, lower, cornerA, cornerB) {
		return 0
	}
	up, _ := f.At(upper)
	lo, _ := f.At(lower)
	a, _ := f.At(cornerA)
	b, _ := f.At(cornerB)

	width := dist(a, b)
	if width == 0 {
		return 0
	}
	return dist(up, lo) / width
}

// NormalizeEAR maps a raw eye aspect ratio onto [0, 1] where 0 is
// closed and 1 fully open. Equal thresholds yield 0.
func NormalizeEAR(ear, closedThresh, openThresh float64) float64 {
	if openThresh == closedThresh {
		return 0
	}
	return clamp((ear-closedThresh)/(openThresh-closedThresh), 0, 1)
}
