package tracker

import (
	"time"

	"github.com/StutiRuparel/FocusMind/pkg/blink"
	"github.com/StutiRuparel/FocusMind/pkg/fusion"
	"github.com/StutiRuparel/FocusMind/pkg/geometry"
)

// Config holds the monitor loop tuning.
type Config struct {
	// UpdateInterval is how often a smoothed score is emitted to the
	// recorder, notifier and metrics. Internal state still updates
	// every frame. Zero emits on every frame.
	UpdateInterval time.Duration

	// Eye openness normalization thresholds, raw aspect-ratio units.
	ClosedEAR float64
	OpenEAR   float64

	// Blink hysteresis band, normalized openness units.
	BlinkCloseBelow float64
	BlinkOpenAbove  float64

	// GazeAlpha is the EMA factor for the gaze vector.
	GazeAlpha float64

	// HeadWindow is how many recent pose estimates are averaged
	// before deriving the head direction.
	HeadWindow int

	// AwayWindow is how many recent gaze observations feed the
	// away-fraction signal.
	AwayWindow int

	// AlertThresholds are the descending score boundaries that fire
	// the notifier.
	AlertThresholds []int

	// AlertRecovery re-arms all alerts once the score climbs this far
	// above the last fired threshold.
	AlertRecovery float64

	// Fusion carries the score engine weights.
	Fusion fusion.Config
}

// DefaultConfig returns the tuned monitor settings.
func DefaultConfig() Config {
	return Config{
		UpdateInterval: 2 * time.Second,

		ClosedEAR: geometry.DefaultClosedEAR,
		OpenEAR:   geometry.DefaultOpenEAR,

		BlinkCloseBelow: blink.DefaultCloseBelow,
		BlinkOpenAbove:  blink.DefaultOpenAbove,

		GazeAlpha:  0.3,
		HeadWindow: 5,
		AwayWindow: 30,

		AlertThresholds: []int{80, 60, 50, 40, 20},
		AlertRecovery:   10,

		Fusion: fusion.DefaultConfig(),
	}
}
