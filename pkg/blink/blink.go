// Package blink detects completed blinks from the eye openness
// signal using a hysteresis band, and tracks a trailing
// blinks-per-minute rate.
package blink

import "time"

// Hysteresis band defaults in normalized openness units. The gap
// between the two boundaries keeps jitter around a single threshold
// from counting as repeated blinks.
const (
	DefaultCloseBelow = 0.20
	DefaultOpenAbove  = 0.25
)

// rateWindow is how long the blink counter accumulates before the
// rate measurement starts over.
const rateWindow = time.Minute

// Detector tracks blink state across frames. It is not safe for
// concurrent use; feed it from the frame loop only.
type Detector struct {
	closeBelow float64
	openAbove  float64

	closedSince     time.Time
	closedFor       time.Duration
	blinkInProgress bool

	count       int
	windowStart time.Time
}

// New returns a detector with the given hysteresis band, counting
// from start. An inverted or non-positive band falls back to the
// defaults.
func New(closeBelow, openAbove float64, start time.Time) *Detector {
	if closeBelow <= 0 || openAbove <= closeBelow {
		closeBelow = DefaultCloseBelow
		openAbove = DefaultOpenAbove
	}
	return &Detector{
		closeBelow:  closeBelow,
		openAbove:   openAbove,
		windowStart: start,
	}
}

// Update feeds one openness sample. It returns true when this sample
// completes a blink, that is the eyes reopened after a closed
// stretch. Samples inside the hysteresis band keep the closed clock
// running but flip no state.
func (d *Detector) Update(openness float64, now time.Time) bool {
	switch {
	case openness < d.closeBelow:
		if d.closedSince.IsZero() {
			d.closedSince = now
		}
		d.closedFor = now.Sub(d.closedSince)
		d.blinkInProgress = true
	case openness > d.openAbove:
		completed := d.blinkInProgress
		if completed {
			d.count++
		}
		d.closedSince = time.Time{}
		d.closedFor = 0
		d.blinkInProgress = false
		return completed
	default:
		if !d.closedSince.IsZero() {
			d.closedFor = now.Sub(d.closedSince)
		}
	}
	return false
}

// FaceLost clears the in-flight blink state when the face disappears,
// so a reappearing face cannot complete a phantom blink. The counter
// and rate window survive.
func (d *Detector) FaceLost() {
	d.closedSince = time.Time{}
	d.closedFor = 0
	d.blinkInProgress = false
}

// ClosedFor returns how long the eyes have currently been closed,
// zero while they are open.
func (d *Detector) ClosedFor() time.Duration {
	return d.closedFor
}

// Count returns the blinks recorded in the current rate window.
func (d *Detector) Count() int {
	return d.count
}

// Rate returns blinks per minute over the current window. Once the
// window is a full minute old the counter starts over, so the rate
// always reflects recent behaviour.
func (d *Detector) Rate(now time.Time) float64 {
	if now.Sub(d.windowStart) >= rateWindow {
		d.count = 0
		d.windowStart = now
	}
	if d.count == 0 {
		return 0
	}
	minutes := now.Sub(d.windowStart).Minutes()
	if minutes < 1e-6 {
		minutes = 1e-6
	}
	return float64(d.count) / minutes
}
