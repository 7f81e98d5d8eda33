package fusion

import "time"

// Config holds the fusion weights and smoothing behaviour.
type Config struct {
	// Signal weights. They are fractions of the final score and are
	// expected to sum to 1.
	FaceWeight   float64
	GazeWeight   float64
	EyeWeight    float64
	HeadWeight   float64
	BlinkWeight  float64
	TypingWeight float64

	// Smoothing rates. ImproveRate applies when the raw score is
	// above the previous score, DeclineRate when it is below.
	// Deliberately small so the visible score never jumps.
	ImproveRate float64
	DeclineRate float64

	// ClosedEyesPenaltyAfter is how long the eyes may stay closed
	// before the eye signal is penalized.
	ClosedEyesPenaltyAfter time.Duration

	// TypingTarget is the keystrokes-per-window count treated as
	// fully engaged typing.
	TypingTarget float64
}

// DefaultConfig returns the tuned production weights.
func DefaultConfig() Config {
	return Config{
		FaceWeight:   0.25,
		GazeWeight:   0.25,
		EyeWeight:    0.20,
		HeadWeight:   0.15,
		BlinkWeight:  0.08,
		TypingWeight: 0.07,

		ImproveRate: 0.20,
		DeclineRate: 0.15,

		ClosedEyesPenaltyAfter: 3 * time.Second,
		TypingTarget:           15,
	}
}
