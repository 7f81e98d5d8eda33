// Package landmark defines the face landmark frame produced by the
// detection layer and the FaceMesh index scheme the geometry code
// keys into it with.
package landmark

// MeshPoints is the number of landmarks in the refined FaceMesh
// layout: 468 surface points plus 10 iris points.
const MeshPoints = 478

// Semantic landmark indices. Names are subject-relative, so the
// subject's right eye sits on the left side of an unmirrored image.
const (
	NoseTip = 1
	Chin    = 152

	RightEyeOuter = 33
	RightEyeInner = 133
	RightEyeUpper = 159
	RightEyeLower = 145

	LeftEyeInner = 362
	LeftEyeOuter = 263
	LeftEyeUpper = 386
	LeftEyeLower = 374

	MouthRight = 61
	MouthLeft  = 291

	RightIrisCenter = 468
	LeftIrisCenter  = 473
)

// Iris rings: the centre landmark followed by four boundary points.
// Averaging the ring is more stable than trusting the centre alone.
var (
	RightIrisPoints = []int{468, 469, 470, 471, 472}
	LeftIrisPoints  = []int{473, 474, 475, 476, 477}
)

// Point is a 2D landmark position in pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Frame holds one camera frame's landmarks in FaceMesh index order
// plus the frame dimensions. An empty Points slice means no face was
// found this frame.
type Frame struct {
	Points []Point
	Width  int
	Height int
}

// At returns the landmark at index i. The bool is false when the
// index is outside the frame, which callers treat the same as an
// absent face.
func (f Frame) At(i int) (Point, bool) {
	if i < 0 || i >= len(f.Points) {
		return Point{}, false
	}
	return f.Points[i], true
}

// Has reports whether every given index exists in the frame.
func (f Frame) Has(indices ...int) bool {
	for _, i := range indices {
		if i < 0 || i >= len(f.Points) {
			return false
		}
	}
	return true
}

// Empty reports whether the frame carries no landmarks at all.
func (f Frame) Empty() bool {
	return len(f.Points) == 0
}
