package geometry

import "math"

// Eye direction bands over smoothed iris ratios.
const (
	eyeDirLow  = 0.35
	eyeDirHigh = 0.65
)

// Head direction thresholds in degrees.
const (
	headForwardMargin = 35.0
	headPitchDeadZone = 10.0
	headYawDeadZone   = 10.0
)

// EyeDirection reduces smoothed iris ratios to a coarse label. The
// vertical axis is checked first and wins over the horizontal one.
func EyeDirection(h, v float64) string {
	switch {
	case v < eyeDirLow:
		return "Up"
	case v > eyeDirHigh:
		return "Down"
	case h < eyeDirLow:
		return "Left"
	case h > eyeDirHigh:
		return "Right"
	}
	return "Forward"
}

// HeadDirection reduces pitch and yaw in degrees to a coarse label.
// Inside the forward margin on both axes the head reads as Forward;
// otherwise the axis that deviates most wins, with yaw breaking ties.
func HeadDirection(pitch, yaw float64) string {
	if math.Abs(pitch) <= headForwardMargin && math.Abs(yaw) <= headForwardMargin {
		return "Forward"
	}

	var pitchDev, yawDev float64
	if math.Abs(pitch) >= headPitchDeadZone {
		pitchDev = pitch
	}
	if math.Abs(yaw) >= headYawDeadZone {
		yawDev = yaw
	}

	if math.Abs(yawDev) >= math.Abs(pitchDev) {
		if yawDev > 0 {
			return "Right"
		}
		if yawDev < 0 {
			return "Left"
		}
	} else {
		if pitchDev > 0 {
			return "Down"
		}
		if pitchDev < 0 {
			return "Up"
		}
	}
	return "Forward"
}
