// Package session records the focus score time series for one
// monitoring session, aggregates it into summary statistics, and
// persists finished sessions to SQLite.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Sample is one recorded focus score observation.
type Sample struct {
	Timestamp time.Time
	Score     float64
}

// Recorder owns the append-only score history of a single session.
// It is driven by the monitor loop and is not safe for concurrent
// use.
type Recorder struct {
	id        uuid.UUID
	startedAt time.Time
	samples   []Sample
}

// NewRecorder starts an empty session history with a fresh id.
func NewRecorder(start time.Time) *Recorder {
	return &Recorder{id: uuid.New(), startedAt: start}
}

// ID returns the session identifier.
func (r *Recorder) ID() uuid.UUID {
	return r.id
}

// StartedAt returns when the session began.
func (r *Recorder) StartedAt() time.Time {
	return r.startedAt
}

// Append records one score observation.
func (r *Recorder) Append(t time.Time, score float64) {
	r.samples = append(r.samples, Sample{Timestamp: t, Score: score})
}

// Len returns the number of recorded observations.
func (r *Recorder) Len() int {
	return len(r.samples)
}

// Samples returns a copy of the recorded history.
func (r *Recorder) Samples() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}
