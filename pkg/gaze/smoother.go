// Package gaze smooths raw iris ratios into a stable gaze vector,
// classifies it against calibrated boundaries, and owns the
// calibration procedure that produces them.
package gaze

// Smoothing defaults. Monitoring favours responsiveness; calibration
// favours stability while the subject holds a pose.
const (
	DefaultSmoothingAlpha   = 0.3
	DefaultCalibrationAlpha = 0.2
)

// Smoother is an exponential moving average over the 2D gaze vector.
// The first sample becomes the state verbatim; later samples are
// blended in by alpha. Higher alpha means less lag.
type Smoother struct {
	alpha  float64
	dx, dy float64
	primed bool
}

// NewSmoother returns a smoother with the given blend factor. Values
// outside (0, 1] fall back to DefaultSmoothingAlpha.
func NewSmoother(alpha float64) *Smoother {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultSmoothingAlpha
	}
	return &Smoother{alpha: alpha}
}

// Update blends a new sample into the state and returns the smoothed
// vector.
func (s *Smoother) Update(dx, dy float64) (float64, float64) {
	if !s.primed {
		s.dx, s.dy = dx, dy
		s.primed = true
		return s.dx, s.dy
	}
	s.dx = s.alpha*dx + (1-s.alpha)*s.dx
	s.dy = s.alpha*dy + (1-s.alpha)*s.dy
	return s.dx, s.dy
}

// Current returns the smoothed vector. ok is false before the first
// sample arrives.
func (s *Smoother) Current() (dx, dy float64, ok bool) {
	return s.dx, s.dy, s.primed
}

// Reset drops the state so the next sample is taken verbatim again.
func (s *Smoother) Reset() {
	s.dx, s.dy = 0, 0
	s.primed = false
}
