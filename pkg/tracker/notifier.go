package tracker

import "github.com/StutiRuparel/FocusMind/internal/log"

// Notifier receives focus threshold crossings. How they reach the
// user (toast, speech, nudge) is the consumer's concern; the monitor
// only decides when one fires.
type Notifier interface {
	// ThresholdCrossed fires once when the score drops below a
	// threshold, and not again until the score has recovered.
	ThresholdCrossed(threshold int, score float64)
}

// LogNotifier reports threshold crossings through the structured
// logger. It is the default sink when nothing else is wired in.
type LogNotifier struct{}

// ThresholdCrossed implements Notifier.
func (LogNotifier) ThresholdCrossed(threshold int, score float64) {
	log.Warn("focus dropped below threshold",
		"threshold", threshold,
		"score", score,
	)
}
