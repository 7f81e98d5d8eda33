package session

import (
	"time"

	"github.com/montanaflynn/stats"
)

// DefaultRecoveryThreshold is the score swing that counts as a drop
// or a rebound in the session summary.
const DefaultRecoveryThreshold = 8.0

// Stats is the numeric breakdown of one session's score history.
type Stats struct {
	SampleCount int
	Duration    time.Duration

	AverageFocus float64
	MedianFocus  float64
	StdDevFocus  float64

	MinFocus   float64
	MinFocusAt time.Time
	MaxFocus   float64
	MaxFocusAt time.Time

	FirstScore float64
	LastScore  float64

	UpChanges        int
	DownChanges      int
	PositiveDeltaSum float64
	NegativeDeltaSum float64

	LargestGain float64
	LargestDrop float64

	// Recoveries counts drops of at least the threshold that are
	// followed later by a gain of at least the threshold. A single
	// rebound may satisfy several earlier drops; the count is a
	// coarse heuristic, not a strict pairing.
	Recoveries int
}

// Aggregate summarizes an ordered score history. ok is false for an
// empty history, the normal state of a session that never emitted,
// rather than an error.
func Aggregate(samples []Sample, recoveryThreshold float64) (Stats, bool) {
	if len(samples) == 0 {
		return Stats{}, false
	}
	if recoveryThreshold <= 0 {
		recoveryThreshold = DefaultRecoveryThreshold
	}

	scores := make([]float64, len(samples))
	for i, s := range samples {
		scores[i] = s.Score
	}

	mean, _ := stats.Mean(scores)
	median, _ := stats.Median(scores)
	stddev, _ := stats.StandardDeviationPopulation(scores)

	st := Stats{
		SampleCount:  len(samples),
		Duration:     samples[len(samples)-1].Timestamp.Sub(samples[0].Timestamp),
		AverageFocus: mean,
		MedianFocus:  median,
		StdDevFocus:  stddev,
		MinFocus:     samples[0].Score,
		MinFocusAt:   samples[0].Timestamp,
		MaxFocus:     samples[0].Score,
		MaxFocusAt:   samples[0].Timestamp,
		FirstScore:   samples[0].Score,
		LastScore:    samples[len(samples)-1].Score,
	}

	// Strict comparisons keep the first occurrence of ties.
	for _, s := range samples[1:] {
		if s.Score < st.MinFocus {
			st.MinFocus = s.Score
			st.MinFocusAt = s.Timestamp
		}
		if s.Score > st.MaxFocus {
			st.MaxFocus = s.Score
			st.MaxFocusAt = s.Timestamp
		}
	}

	deltas := successiveDeltas(scores)
	for _, d := range deltas {
		switch {
		case d > 0:
			st.UpChanges++
			st.PositiveDeltaSum += d
		case d < 0:
			st.DownChanges++
			st.NegativeDeltaSum += d
		}
		if d > st.LargestGain {
			st.LargestGain = d
		}
		if d < st.LargestDrop {
			st.LargestDrop = d
		}
	}
	st.Recoveries = countRecoveries(deltas, recoveryThreshold)

	return st, true
}

// successiveDeltas returns scores[i] - scores[i-1] with the first
// delta defined as 0, the score measured against itself.
func successiveDeltas(scores []float64) []float64 {
	out := make([]float64, len(scores))
	for i := 1; i < len(scores); i++ {
		out[i] = scores[i] - scores[i-1]
	}
	return out
}

// countRecoveries counts drops at or beyond the threshold that some
// later delta rebounds from by at least the same threshold. The
// forward scan deliberately lets one rebound answer multiple drops.
func countRecoveries(deltas []float64, threshold float64) int {
	count := 0
	for i := 0; i < len(deltas)-1; i++ {
		if deltas[i] > -threshold {
			continue
		}
		for j := i + 1; j < len(deltas); j++ {
			if deltas[j] >= threshold {
				count++
				break
			}
		}
	}
	return count
}
