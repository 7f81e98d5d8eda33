package facemesh

import (
	"context"
	"math"

	"github.com/StutiRuparel/FocusMind/pkg/landmark"
	"github.com/StutiRuparel/FocusMind/pkg/tracker"
)

const (
	synthWidth  = 640
	synthHeight = 480

	// One scripted cycle. At the default 10 frames per second this is
	// thirty seconds of footage.
	synthCycle        = 300
	synthAbsentFrom   = 280
	synthGlanceFrom   = 200
	synthGlanceUntil  = 230
	synthBlinkPeriod  = 40
	synthBlinkAt      = 20
	synthBlinkLength  = 2
	synthEyeBoxSide   = 40.0
	synthEyeCenterY   = 206.569
	synthRightEyeMinX = 275.732
	synthLeftEyeMinX  = 324.268
)

// Synthetic is a camera-free landmark source that loops a scripted
// face: steady attention with periodic blinks, a sideways glance, and
// a short stretch with no face at all. It backs demo runs on machines
// without a webcam.
type Synthetic struct {
	frame int
}

var _ tracker.Source = (*Synthetic)(nil)

// NewSynthetic returns a source at the start of its script.
func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

// Next produces the next scripted frame.
func (s *Synthetic) Next(ctx context.Context) (landmark.Frame, error) {
	if err := ctx.Err(); err != nil {
		return landmark.Frame{}, err
	}
	n := s.frame
	s.frame++

	phase := n % synthCycle
	if phase >= synthAbsentFrom {
		return landmark.Frame{Width: synthWidth, Height: synthHeight}, nil
	}

	openness := 1.0
	if k := n % synthBlinkPeriod; k >= synthBlinkAt && k < synthBlinkAt+synthBlinkLength {
		openness = 0
	}

	ratio := 0.5 + 0.12*math.Sin(2*math.Pi*float64(n)/90)
	if phase >= synthGlanceFrom && phase < synthGlanceUntil {
		ratio = 0.08
	}

	return syntheticFace(openness, ratio), nil
}

// syntheticFace builds a frontal face mesh with the given eye openness
// and horizontal iris position, both in [0, 1].
func syntheticFace(openness, ratio float64) landmark.Frame {
	pts := make([]landmark.Point, landmark.MeshPoints)
	set := func(i int, x, y float64) {
		pts[i] = landmark.Point{X: x, Y: y}
	}

	// Rigid pose landmarks for a face looking straight at the camera
	// from 600mm away.
	set(landmark.NoseTip, 320, 240)
	set(landmark.Chin, 320, 306.455)
	set(landmark.RightEyeOuter, synthRightEyeMinX, synthEyeCenterY)
	set(landmark.LeftEyeOuter, synthLeftEyeMinX+synthEyeBoxSide, synthEyeCenterY)
	set(landmark.MouthRight, 290.364, 269.636)
	set(landmark.MouthLeft, 349.636, 269.636)

	set(landmark.RightEyeInner, synthRightEyeMinX+synthEyeBoxSide, synthEyeCenterY)
	set(landmark.LeftEyeInner, synthLeftEyeMinX, synthEyeCenterY)

	gap := (0.15 + 0.2*openness) * synthEyeBoxSide
	set(landmark.RightEyeUpper, synthRightEyeMinX+synthEyeBoxSide/2, synthEyeCenterY-gap/2)
	set(landmark.RightEyeLower, synthRightEyeMinX+synthEyeBoxSide/2, synthEyeCenterY+gap/2)
	set(landmark.LeftEyeUpper, synthLeftEyeMinX+synthEyeBoxSide/2, synthEyeCenterY-gap/2)
	set(landmark.LeftEyeLower, synthLeftEyeMinX+synthEyeBoxSide/2, synthEyeCenterY+gap/2)

	ringOffsets := [5][2]float64{{0, 0}, {2, 0}, {-2, 0}, {0, 2}, {0, -2}}
	rightIrisX := synthRightEyeMinX + ratio*synthEyeBoxSide
	leftIrisX := synthLeftEyeMinX + ratio*synthEyeBoxSide
	for i, off := range ringOffsets {
		set(landmark.RightIrisPoints[i], rightIrisX+off[0], synthEyeCenterY+off[1])
		set(landmark.LeftIrisPoints[i], leftIrisX+off[0], synthEyeCenterY+off[1])
	}

	return landmark.Frame{Points: pts, Width: synthWidth, Height: synthHeight}
}
