// Package typing tracks keystroke activity over a trailing window as
// a lightweight engagement signal for the focus score.
package typing

import (
	"context"
	"sync"
	"time"
)

// DefaultWindow is the trailing window keystrokes are counted over.
const DefaultWindow = 30 * time.Second

// Recorder counts keystrokes over a trailing window. It is safe for
// concurrent use: the capture side records events while the monitor
// loop reads snapshots.
type Recorder struct {
	mu     sync.Mutex
	window time.Duration
	events []time.Time
}

// NewRecorder returns a recorder over the given window; non-positive
// windows fall back to DefaultWindow.
func NewRecorder(window time.Duration) *Recorder {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Recorder{window: window}
}

// Record notes one keystroke at time t.
func (r *Recorder) Record(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, t)
}

// Snapshot returns the keystroke count inside the window ending at
// now and whether any typing happened in it.
func (r *Recorder) Snapshot(now time.Time) (count int, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune(now)
	return len(r.events), len(r.events) > 0
}

// prune drops events older than the window. Callers hold mu.
func (r *Recorder) prune(now time.Time) {
	cutoff := now.Add(-r.window)
	keep := r.events[:0]
	for _, t := range r.events {
		if !t.Before(cutoff) {
			keep = append(keep, t)
		}
	}
	r.events = keep
}

// Run prunes stale events once a second until the context ends, so
// memory stays bounded even when nothing reads snapshots.
func (r *Recorder) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			r.prune(time.Now())
			r.mu.Unlock()
		}
	}
}
