package geometry

import (
	"math"

	"github.com/StutiRuparel/FocusMind/pkg/landmark"
)

// eyeExtentEpsilon marks an eye box too small to place an iris in,
// usually a frame where landmark refinement failed.
const eyeExtentEpsilon = 1e-6

// eyeRegion groups the landmarks that bound one eye.
type eyeRegion struct {
	corners [2]int // horizontal extent
	lids    [2]int // vertical extent
	iris    []int  // iris ring, averaged into a centre estimate
}

var (
	rightEyeRegion = eyeRegion{
		corners: [2]int{landmark.RightEyeOuter, landmark.RightEyeInner},
		lids:    [2]int{landmark.RightEyeUpper, landmark.RightEyeLower},
		iris:    landmark.RightIrisPoints,
	}
	leftEyeRegion = eyeRegion{
		corners: [2]int{landmark.LeftEyeInner, landmark.LeftEyeOuter},
		lids:    [2]int{landmark.LeftEyeUpper, landmark.LeftEyeLower},
		iris:    landmark.LeftIrisPoints,
	}
)

// GazeRatios returns where the iris sits inside its eye box, averaged
// over both eyes and clamped to [0, 1]: 0 is the image-left corner
// (respectively upper lid), 1 the image-right corner (lower lid).
// ok is false when either eye box is degenerate this frame; callers
// must skip the sample rather than read it as a valid zero.
func GazeRatios(f landmark.Frame) (h, v float64, ok bool) {
	rh, rv, ok := eyeRatios(f, rightEyeRegion)
	if !ok {
		return 0, 0, false
	}
	lh, lv, ok := eyeRatios(f, leftEyeRegion)
	if !ok {
		return 0, 0, false
	}
	h = clamp((rh+lh)/2, 0, 1)
	v = clamp((rv+lv)/2, 0, 1)
	return h, v, true
}

func eyeRatios(f landmark.Frame, region eyeRegion) (h, v float64, ok bool) {
	if !f.Has(region.corners[0], region.corners[1], region.lids[0], region.lids[1]) {
		return 0, 0, false
	}
	if !f.Has(region.iris...) {
		return 0, 0, false
	}

	iris := irisCenter(f, region.iris)
	cornerA, _ := f.At(region.corners[0])
	cornerB, _ := f.At(region.corners[1])
	lidA, _ := f.At(region.lids[0])
	lidB, _ := f.At(region.lids[1])

	minX := math.Min(cornerA.X, cornerB.X)
	maxX := math.Max(cornerA.X, cornerB.X)
	minY := math.Min(lidA.Y, lidB.Y)
	maxY := math.Max(lidA.Y, lidB.Y)

	width := maxX - minX
	height := maxY - minY
	if width <= eyeExtentEpsilon || height <= eyeExtentEpsilon {
		return 0, 0, false
	}
	return (iris.X - minX) / width, (iris.Y - minY) / height, true
}

// irisCenter averages the iris ring into a centre estimate.
func irisCenter(f landmark.Frame, indices []int) landmark.Point {
	var sum landmark.Point
	for _, i := range indices {
		p, _ := f.At(i)
		sum.X += p.X
		sum.Y += p.Y
	}
	n := float64(len(indices))
	return landmark.Point{X: sum.X / n, Y: sum.Y / n}
}
