package gaze

// Direction labels emitted by Classify. Away is produced by callers
// when no face is visible; Classify itself never returns it.
const (
	DirectionCenter = "Center"
	DirectionLeft   = "Left"
	DirectionRight  = "Right"
	DirectionUp     = "Up"
	DirectionDown   = "Down"
	DirectionAway   = "Away"
)

// Classify maps a smoothed gaze vector onto a direction label. The
// iris drifts toward the opposite image side when the subject looks
// left or right on an unmirrored camera, so a vector below the left
// boundary reads as Right and vice versa, and likewise for the
// vertical axis. Horizontal boundaries are checked before vertical
// ones and the first match wins.
func Classify(dx, dy float64, p Profile) string {
	switch {
	case dx < p.LeftThresh:
		return DirectionRight
	case dx > p.RightThresh:
		return DirectionLeft
	case dy < p.TopThresh:
		return DirectionDown
	case dy > p.DownThresh:
		return DirectionUp
	}
	return DirectionCenter
}
