// Package tracker runs the per-frame focus pipeline: landmarks in,
// one smoothed score out, with session recording and threshold
// alerts on the update interval.
package tracker

import (
	"context"
	"time"

	"github.com/StutiRuparel/FocusMind/internal/log"
	"github.com/StutiRuparel/FocusMind/internal/metrics"
	"github.com/StutiRuparel/FocusMind/pkg/blink"
	"github.com/StutiRuparel/FocusMind/pkg/fusion"
	"github.com/StutiRuparel/FocusMind/pkg/gaze"
	"github.com/StutiRuparel/FocusMind/pkg/geometry"
	"github.com/StutiRuparel/FocusMind/pkg/landmark"
	"github.com/StutiRuparel/FocusMind/pkg/session"
)

// DefaultFrameInterval paces the capture loop at 10 frames a second,
// plenty for blink detection while keeping pose solves cheap.
const DefaultFrameInterval = 100 * time.Millisecond

// Source yields one landmark frame per call. An empty frame means no
// face was visible.
type Source interface {
	Next(ctx context.Context) (landmark.Frame, error)
}

// TypingSource yields the trailing-window typing snapshot.
type TypingSource interface {
	Snapshot(now time.Time) (count int, active bool)
}

// Monitor owns the full per-frame pipeline state. Frames must be fed
// from a single goroutine; the optional typing source is the only
// collaborator read concurrently.
type Monitor struct {
	cfg      Config
	profile  gaze.Profile
	smoother *gaze.Smoother
	blinks   *blink.Detector
	engine   *fusion.Engine
	recorder *session.Recorder

	typing   TypingSource
	notifier Notifier
	metrics  *metrics.Metrics
	observer func(Observation)

	score     float64
	gazeLabel string
	eyeLabel  string
	headLabel string
	pitch     *meanWindow
	yaw       *meanWindow
	away      *ratioWindow
	lastEmit  time.Time
	lastAlert int
}

// New assembles a monitor starting a fresh session at start. The
// score begins at 100 and the evidence pulls it down from there.
func New(cfg Config, profile gaze.Profile, start time.Time) *Monitor {
	return &Monitor{
		cfg:      cfg,
		profile:  profile,
		smoother: gaze.NewSmoother(cfg.GazeAlpha),
		blinks:   blink.New(cfg.BlinkCloseBelow, cfg.BlinkOpenAbove, start),
		engine:   fusion.NewEngine(cfg.Fusion),
		recorder: session.NewRecorder(start),

		score:     fusion.InitialScore,
		gazeLabel: gaze.DirectionCenter,
		eyeLabel:  "Forward",
		headLabel: "Forward",
		pitch:     newMeanWindow(cfg.HeadWindow),
		yaw:       newMeanWindow(cfg.HeadWindow),
		away:      newRatioWindow(cfg.AwayWindow),
		lastAlert: 100,
	}
}

// SetNotifier wires in the alert sink.
func (m *Monitor) SetNotifier(n Notifier) {
	m.notifier = n
}

// SetTypingSource wires in the keyboard activity signal.
func (m *Monitor) SetTypingSource(t TypingSource) {
	m.typing = t
}

// SetMetrics wires in the counters.
func (m *Monitor) SetMetrics(mx *metrics.Metrics) {
	m.metrics = mx
}

// SetObserver registers a callback invoked after every processed
// frame. Used by the CLI to render status.
func (m *Monitor) SetObserver(fn func(Observation)) {
	m.observer = fn
}

// Observation is the per-frame pipeline output.
type Observation struct {
	FacePresent    bool
	EyeOpenness    float64
	BlinkCompleted bool
	BlinkRate      float64
	GazeDirection  string
	EyeDirection   string
	HeadDirection  string
	HeadPitch      float64
	HeadYaw        float64
	Score          float64

	// Emitted reports whether this frame crossed the update interval
	// and reached the recorder and notifier.
	Emitted bool
}

// Process runs one frame through the pipeline and returns the
// resulting observation. The score updates on every frame; recording
// and alerting happen at most once per update interval.
func (m *Monitor) Process(f landmark.Frame, now time.Time) Observation {
	var obs Observation
	facePresent := !f.Empty()

	if facePresent {
		ear := geometry.EyeAspectRatio(f)
		obs.EyeOpenness = geometry.NormalizeEAR(ear, m.cfg.ClosedEAR, m.cfg.OpenEAR)
		obs.BlinkCompleted = m.blinks.Update(obs.EyeOpenness, now)
		if obs.BlinkCompleted && m.metrics != nil {
			m.metrics.BlinksTotal.Add(1)
		}

		// Degenerate frames keep the previous smoothed gaze.
		if h, v, ok := geometry.GazeRatios(f); ok {
			dx, dy := m.smoother.Update(h, v)
			m.gazeLabel = gaze.Classify(dx, dy, m.profile)
			m.eyeLabel = geometry.EyeDirection(dx, dy)
		}

		if pitch, yaw, ok := geometry.HeadPose(f); ok {
			m.pitch.push(pitch)
			m.yaw.push(yaw)
		}
		m.headLabel = geometry.HeadDirection(m.pitch.mean(), m.yaw.mean())
	} else {
		m.blinks.FaceLost()
		m.smoother.Reset()
		m.pitch.reset()
		m.yaw.reset()
		m.gazeLabel = gaze.DirectionAway
		m.eyeLabel = gaze.DirectionAway
		m.headLabel = gaze.DirectionAway
	}

	m.away.push(m.gazeLabel != gaze.DirectionCenter)

	in := fusion.Inputs{
		FacePresent:   facePresent,
		EyeOpenness:   obs.EyeOpenness,
		EyesClosedFor: m.blinks.ClosedFor(),
		GazeDirection: m.gazeLabel,
		GazeAwayRatio: m.away.ratio(),
		HeadPitch:     m.pitch.mean(),
		HeadYaw:       m.yaw.mean(),
		BlinkRate:     m.blinks.Rate(now),
	}
	if m.typing != nil {
		in.KeysInWindow, in.TypingActive = m.typing.Snapshot(now)
	}
	m.score = m.engine.Score(in, m.score)

	obs.FacePresent = facePresent
	obs.GazeDirection = m.gazeLabel
	obs.EyeDirection = m.eyeLabel
	obs.HeadDirection = m.headLabel
	obs.HeadPitch = in.HeadPitch
	obs.HeadYaw = in.HeadYaw
	obs.BlinkRate = in.BlinkRate
	obs.Score = m.score

	if m.metrics != nil {
		m.metrics.ObserveFrame(facePresent, m.score)
	}

	if m.lastEmit.IsZero() || now.Sub(m.lastEmit) >= m.cfg.UpdateInterval {
		m.recorder.Append(now, m.score)
		m.checkThresholds(m.score)
		if m.metrics != nil {
			m.metrics.ScoresEmitted.Add(1)
		}
		m.lastEmit = now
		obs.Emitted = true
	}
	return obs
}

// checkThresholds fires at most one alert per emission: the highest
// threshold the score has newly fallen below. Once the score climbs
// back past the last fired threshold plus the recovery margin, all
// thresholds re-arm.
func (m *Monitor) checkThresholds(score float64) {
	if score > float64(m.lastAlert)+m.cfg.AlertRecovery {
		m.lastAlert = 100
	}
	for _, t := range m.cfg.AlertThresholds {
		if score < float64(t) && m.lastAlert > t {
			m.lastAlert = t
			if m.metrics != nil {
				m.metrics.AlertsTotal.Add(1)
			}
			if m.notifier != nil {
				m.notifier.ThresholdCrossed(t, score)
			}
			break
		}
	}
}

// Score returns the current smoothed focus score.
func (m *Monitor) Score() float64 {
	return m.score
}

// Recorder returns the session history being written.
func (m *Monitor) Recorder() *session.Recorder {
	return m.recorder
}

// Run drives the monitor from a frame source until the context ends.
// Capture errors skip the frame; a persistently failing source shows
// up as an absent face once it starts returning empty frames.
func (m *Monitor) Run(ctx context.Context, src Source, frameInterval time.Duration) error {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	log.Info("focus monitor started",
		"session", m.recorder.ID(),
		"frame_interval", frameInterval,
		"update_interval", m.cfg.UpdateInterval,
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame, err := src.Next(ctx)
			if err != nil {
				log.Debug("frame capture failed", "error", err)
				continue
			}
			obs := m.Process(frame, time.Now())
			if m.observer != nil {
				m.observer(obs)
			}
		}
	}
}
