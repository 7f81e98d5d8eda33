// Package fusion combines the per-frame focus signals into a single
// bounded score with asymmetric exponential smoothing.
package fusion

import (
	"math"
	"strings"
	"time"
)

// InitialScore is the score a fresh session starts from; everyone
// begins fully focused and the evidence pulls the score down.
const InitialScore = 100.0

// Inputs is the per-frame signal snapshot the engine scores. Callers
// are expected to hand in sanitized values; the engine clamps where a
// wild value could leak through.
type Inputs struct {
	FacePresent bool

	// EyeOpenness is the normalized eye aspect ratio in [0, 1].
	EyeOpenness float64

	// EyesClosedFor is how long the eyes have currently been closed.
	EyesClosedFor time.Duration

	// GazeDirection is the classified gaze label (Center, Left, ...).
	GazeDirection string

	// GazeAwayRatio is the recent fraction of frames spent looking
	// away from the screen, in [0, 1].
	GazeAwayRatio float64

	// Smoothed head angles in degrees.
	HeadPitch float64
	HeadYaw   float64

	// BlinkRate is blinks per minute over the trailing window.
	BlinkRate float64

	// Typing activity over the trailing window.
	KeysInWindow int
	TypingActive bool
}

// Engine turns signal snapshots into the running focus score.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine with the given weights.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score fuses the inputs into the next focus score given the previous
// one. The raw weighted score is blended into the previous value at
// the improve or decline rate, then clamped to [0, 100] and rounded
// to two decimals.
func (e *Engine) Score(in Inputs, prev float64) float64 {
	weighted := e.cfg.FaceWeight*faceScore(in) +
		e.cfg.GazeWeight*gazeScore(in) +
		e.cfg.EyeWeight*e.eyeScore(in) +
		e.cfg.HeadWeight*headScore(in) +
		e.cfg.BlinkWeight*blinkScore(in) +
		e.cfg.TypingWeight*e.typingScore(in)

	raw := weighted * 100

	alpha := e.cfg.DeclineRate
	if raw > prev {
		alpha = e.cfg.ImproveRate
	}
	score := (1-alpha)*prev + alpha*raw

	// Small sustained-excellence bonus, kept tiny so it cannot make
	// the score jump.
	if score > 85 && prev > 80 {
		score = math.Min(100, score+0.5)
	}

	return round2(clamp(score, 0, 100))
}

func faceScore(in Inputs) float64 {
	if in.FacePresent {
		return 1
	}
	return 0
}

// gazeBase maps lowercased direction labels to their engagement
// value. Glancing down or up often means notes or thought; sideways
// reads as a stronger distraction.
var gazeBase = map[string]float64{
	"center":  1.0,
	"forward": 1.0,
	"down":    0.9,
	"up":      0.9,
	"left":    0.8,
	"right":   0.8,
}

func gazeScore(in Inputs) float64 {
	base, known := gazeBase[strings.ToLower(in.GazeDirection)]
	if !known {
		base = 0.8
	}
	penalty := clamp(in.GazeAwayRatio, 0, 0.25)
	return base * (1 - penalty)
}

// eyeScore rewards open eyes. A long closed stretch is penalized but
// floored so a doze cannot zero the whole signal.
func (e *Engine) eyeScore(in Inputs) float64 {
	s := clamp(in.EyeOpenness, 0, 1)
	if in.EyesClosedFor > e.cfg.ClosedEyesPenaltyAfter {
		s = math.Max(0.6, s-0.2)
	}
	return s
}

func headScore(in Inputs) float64 {
	s := 1 - math.Min(math.Abs(in.HeadYaw)/120, 0.5)
	if in.HeadPitch < -45 {
		s = math.Max(0.6, s-0.15)
	}
	return clamp(s, 0.6, 1)
}

// blinkScore is highest near a natural 20 blinks per minute; both a
// fixed stare and rapid blinking trail off toward the floor.
func blinkScore(in Inputs) float64 {
	s := 1 - math.Min(math.Abs(in.BlinkRate-20)/80, 0.3)
	return math.Max(0.7, s)
}

func (e *Engine) typingScore(in Inputs) float64 {
	if !in.TypingActive {
		return 0.6
	}
	return math.Min(float64(in.KeysInWindow)/e.cfg.TypingTarget, 1)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
