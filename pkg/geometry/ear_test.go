package geometry

import (
	"math"
	"testing"

	"github.com/StutiRuparel/FocusMind/pkg/landmark"
)

// frameWith builds a full-size frame with the given landmarks set and
// everything else at the origin.
func frameWith(points map[int]landmark.Point) landmark.Frame {
	f := landmark.Frame{
		Points: make([]landmark.Point, landmark.MeshPoints),
		Width:  640,
		Height: 480,
	}
	for i, p := range points {
		f.Points[i] = p
	}
	return f
}

// eyePoints places both eyes with the given lid separations over a
// 40px corner width.
func eyePoints(rightGap, leftGap float64) map[int]landmark.Point {
	return map[int]landmark.Point{
		landmark.RightEyeOuter: {X: 100, Y: 100},
		landmark.RightEyeInner: {X: 140, Y: 100},
		landmark.RightEyeUpper: {X: 120, Y: 100 - rightGap/2},
		landmark.RightEyeLower: {X: 120, Y: 100 + rightGap/2},

		landmark.LeftEyeInner: {X: 200, Y: 100},
		landmark.LeftEyeOuter: {X: 240, Y: 100},
		landmark.LeftEyeUpper: {X: 220, Y: 100 - leftGap/2},
		landmark.LeftEyeLower: {X: 220, Y: 100 + leftGap/2},
	}
}

func TestEyeAspectRatio(t *testing.T) {
	tests := []struct {
		name     string
		rightGap float64
		leftGap  float64
		want     float64
	}{
		{name: "both open", rightGap: 20, leftGap: 10, want: 0.375},
		{name: "both closed", rightGap: 0, leftGap: 0, want: 0},
		{name: "one eye closed", rightGap: 16, leftGap: 0, want: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := frameWith(eyePoints(tt.rightGap, tt.leftGap))
			got := EyeAspectRatio(f)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EyeAspectRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEyeAspectRatioZeroWidth(t *testing.T) {
	pts := eyePoints(20, 20)
	// Collapse the right eye corners onto one point.
	pts[landmark.RightEyeInner] = pts[landmark.RightEyeOuter]
	f := frameWith(pts)

	// Right eye contributes 0, left contributes 0.5.
	got := EyeAspectRatio(f)
	if math.Abs(got-0.25) > 1e-9 {
		t.Errorf("EyeAspectRatio() = %v, want 0.25", got)
	}
}

func TestEyeAspectRatioMissingLandmarks(t *testing.T) {
	f := landmark.Frame{Points: make([]landmark.Point, 10), Width: 640, Height: 480}
	if got := EyeAspectRatio(f); got != 0 {
		t.Errorf("EyeAspectRatio() = %v, want 0 for short frame", got)
	}
}

func TestNormalizeEAR(t *testing.T) {
	tests := []struct {
		name   string
		ear    float64
		closed float64
		open   float64
		want   float64
	}{
		{name: "fully open", ear: 0.35, closed: 0.15, open: 0.35, want: 1},
		{name: "fully closed", ear: 0.15, closed: 0.15, open: 0.35, want: 0},
		{name: "midpoint", ear: 0.25, closed: 0.15, open: 0.35, want: 0.5},
		{name: "above open clamps", ear: 0.6, closed: 0.15, open: 0.35, want: 1},
		{name: "below closed clamps", ear: 0.05, closed: 0.15, open: 0.35, want: 0},
		{name: "equal thresholds", ear: 0.25, closed: 0.3, open: 0.3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEAR(tt.ear, tt.closed, tt.open)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeEAR(%v) = %v, want %v", tt.ear, got, tt.want)
			}
		})
	}
}
