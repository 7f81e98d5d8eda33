package facemesh

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/StutiRuparel/FocusMind/pkg/landmark"
	"github.com/StutiRuparel/FocusMind/pkg/tracker"
)

// Camera captures frames from a webcam and runs the landmark pipeline
// on each one.
type Camera struct {
	cap *gocv.VideoCapture
	det *Detector
	img gocv.Mat
}

var _ tracker.Source = (*Camera)(nil)

// OpenCamera opens the configured webcam and loads the models.
func OpenCamera(cfg Config) (*Camera, error) {
	det, err := NewDetector(cfg)
	if err != nil {
		return nil, err
	}

	cap, err := gocv.OpenVideoCapture(cfg.CameraIndex)
	if err != nil {
		det.Close()
		return nil, fmt.Errorf("facemesh: opening camera %d: %w", cfg.CameraIndex, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		det.Close()
		return nil, fmt.Errorf("facemesh: camera %d not opened", cfg.CameraIndex)
	}
	if cfg.Width > 0 {
		cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	}
	if cfg.Height > 0 {
		cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}

	return &Camera{cap: cap, det: det, img: gocv.NewMat()}, nil
}

// Next grabs one frame and returns its landmark set.
func (c *Camera) Next(ctx context.Context) (landmark.Frame, error) {
	if err := ctx.Err(); err != nil {
		return landmark.Frame{}, err
	}
	if ok := c.cap.Read(&c.img); !ok || c.img.Empty() {
		return landmark.Frame{}, errors.New("facemesh: camera read failed")
	}
	return c.det.Landmarks(c.img)
}

// Close releases the camera and both models.
func (c *Camera) Close() error {
	c.img.Close()
	c.cap.Close()
	return c.det.Close()
}
