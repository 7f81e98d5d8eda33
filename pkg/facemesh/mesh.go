package facemesh

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/StutiRuparel/FocusMind/pkg/landmark"
)

const (
	// landmarkInputSize is the square side the landmark network expects.
	landmarkInputSize = 192
	// roiExpand grows the detected face box before cropping so the chin
	// and forehead stay inside the landmark network's input.
	roiExpand = 1.5
)

// Detector runs the two-stage face landmark pipeline on single frames.
type Detector struct {
	detector gocv.FaceDetectorYN
	net      gocv.Net
	mu       sync.Mutex
}

// NewDetector loads both models and returns a ready detector.
func NewDetector(cfg Config) (*Detector, error) {
	if _, err := os.Stat(cfg.DetectorModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("facemesh: detector model not found: %s", cfg.DetectorModelPath)
	}
	if _, err := os.Stat(cfg.LandmarkModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("facemesh: landmark model not found: %s", cfg.LandmarkModelPath)
	}

	detector := gocv.NewFaceDetectorYN(cfg.DetectorModelPath, "", image.Pt(320, 320))
	detector.SetScoreThreshold(cfg.ScoreThreshold)
	detector.SetNMSThreshold(0.3)
	detector.SetTopK(5000)

	net := gocv.ReadNetFromONNX(cfg.LandmarkModelPath)
	if net.Empty() {
		detector.Close()
		return nil, fmt.Errorf("facemesh: failed to load landmark model: %s", cfg.LandmarkModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &Detector{detector: detector, net: net}, nil
}

// Landmarks extracts the face mesh from one BGR frame. A frame with no
// detectable face returns an empty landmark set and no error.
func (d *Detector) Landmarks(img gocv.Mat) (landmark.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if img.Empty() {
		return landmark.Frame{}, errors.New("facemesh: empty frame")
	}
	frame := landmark.Frame{Width: img.Cols(), Height: img.Rows()}

	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))
	faces := gocv.NewMat()
	defer faces.Close()
	d.detector.Detect(img, &faces)

	box, ok := bestFace(faces)
	if !ok {
		return frame, nil
	}

	roi := squareROI(box, img.Cols(), img.Rows())
	if roi.Dx() <= 0 || roi.Dy() <= 0 {
		return frame, nil
	}

	crop := img.Region(roi)
	defer crop.Close()
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(crop, &resized, image.Pt(landmarkInputSize, landmarkInputSize), 0, 0, gocv.InterpolationLinear)

	blob := gocv.BlobFromImage(resized, 1.0/255.0, image.Pt(landmarkInputSize, landmarkInputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	data, err := out.DataPtrFloat32()
	if err != nil {
		return frame, fmt.Errorf("facemesh: reading landmark tensor: %w", err)
	}
	if len(data) < landmark.MeshPoints*3 {
		return frame, fmt.Errorf("facemesh: unexpected landmark tensor size %d", len(data))
	}

	// Landmark coordinates come back in crop space; map them onto the
	// full frame.
	sx := float64(roi.Dx()) / landmarkInputSize
	sy := float64(roi.Dy()) / landmarkInputSize
	pts := make([]landmark.Point, landmark.MeshPoints)
	for i := range pts {
		pts[i] = landmark.Point{
			X: float64(data[i*3])*sx + float64(roi.Min.X),
			Y: float64(data[i*3+1])*sy + float64(roi.Min.Y),
		}
	}
	frame.Points = pts
	return frame, nil
}

// Close releases both models.
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return d.net.Close()
}

// bestFace picks the highest-scoring detection row.
//
// YuNet rows carry 15 columns: box (x, y, w, h), five landmark pairs,
// then the confidence score.
func bestFace(faces gocv.Mat) (image.Rectangle, bool) {
	var (
		best      image.Rectangle
		bestScore float32
		found     bool
	)
	for r := 0; r < faces.Rows(); r++ {
		score := faces.GetFloatAt(r, 14)
		if found && score <= bestScore {
			continue
		}
		x := int(faces.GetFloatAt(r, 0))
		y := int(faces.GetFloatAt(r, 1))
		w := int(faces.GetFloatAt(r, 2))
		h := int(faces.GetFloatAt(r, 3))
		if w <= 0 || h <= 0 {
			continue
		}
		best = image.Rect(x, y, x+w, y+h)
		bestScore = score
		found = true
	}
	return best, found
}

// squareROI expands the face box into a clipped square crop region.
func squareROI(box image.Rectangle, imgW, imgH int) image.Rectangle {
	side := box.Dx()
	if box.Dy() > side {
		side = box.Dy()
	}
	side = int(float64(side) * roiExpand)

	cx := box.Min.X + box.Dx()/2
	cy := box.Min.Y + box.Dy()/2
	roi := image.Rect(cx-side/2, cy-side/2, cx+side/2, cy+side/2)
	return roi.Intersect(image.Rect(0, 0, imgW, imgH))
}
