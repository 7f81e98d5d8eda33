package gaze

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Calibration errors.
var (
	// ErrNoSampleSource indicates Calibrate was started without a
	// sample function.
	ErrNoSampleSource = errors.New("gaze: calibration requires a sample source")

	// ErrNoConfirmSignal indicates Calibrate was started without a
	// confirm channel.
	ErrNoConfirmSignal = errors.New("gaze: calibration requires a confirm signal")

	// ErrPoseNotSampled indicates a pose was confirmed before any
	// usable gaze sample arrived.
	ErrPoseNotSampled = errors.New("gaze: pose produced no usable samples")
)

// Pose is one step of the five-pose calibration protocol.
type Pose int

const (
	PoseCenter Pose = iota
	PoseLeft
	PoseRight
	PoseUp
	PoseDown
)

func (p Pose) String() string {
	switch p {
	case PoseCenter:
		return "center"
	case PoseLeft:
		return "left"
	case PoseRight:
		return "right"
	case PoseUp:
		return "up"
	case PoseDown:
		return "down"
	}
	return "unknown"
}

// calibrationPoses in protocol order. The centre pose anchors the
// neutral point and the four directional poses define the spans.
var calibrationPoses = [5]Pose{PoseCenter, PoseLeft, PoseRight, PoseUp, PoseDown}

// verticalTolerance below which the up and down extremes count as
// indistinguishable.
const verticalTolerance = 1e-6

// SampleFunc produces one raw gaze sample. ok is false when the
// current frame has no usable gaze (no face, degenerate eye box);
// such frames are skipped, not recorded.
type SampleFunc func(ctx context.Context) (dx, dy float64, ok bool, err error)

// CalibratorConfig wires the calibration procedure to its inputs.
type CalibratorConfig struct {
	// Sample produces raw gaze vectors, typically from live camera
	// frames. Required.
	Sample SampleFunc

	// Confirm advances to the next pose, typically from a keypress.
	// Required.
	Confirm <-chan struct{}

	// OnPose is called as each pose starts, for prompting. Optional.
	OnPose func(Pose)

	// SmoothingAlpha for the sampling smoother. Out-of-range values
	// fall back to DefaultCalibrationAlpha.
	SmoothingAlpha float64
}

// Calibrate runs the five-pose protocol: for each pose it collects
// smoothed gaze samples until the confirm signal fires, takes the
// per-pose median, and derives the personalized classification
// boundaries. Cancelling the context aborts the whole procedure.
func Calibrate(ctx context.Context, cfg CalibratorConfig) (Profile, error) {
	if cfg.Sample == nil {
		return Profile{}, ErrNoSampleSource
	}
	if cfg.Confirm == nil {
		return Profile{}, ErrNoConfirmSignal
	}
	alpha := cfg.SmoothingAlpha
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultCalibrationAlpha
	}
	smoother := NewSmoother(alpha)

	var horiz, vert [5]float64
	for i, pose := range calibrationPoses {
		if cfg.OnPose != nil {
			cfg.OnPose(pose)
		}

		var hs, vs []float64
	sampling:
		for {
			select {
			case <-ctx.Done():
				return Profile{}, fmt.Errorf("gaze: calibration aborted: %w", ctx.Err())
			case <-cfg.Confirm:
				break sampling
			default:
			}

			dx, dy, ok, err := cfg.Sample(ctx)
			if err != nil {
				return Profile{}, fmt.Errorf("gaze: calibration sample: %w", err)
			}
			if !ok {
				continue
			}
			sdx, sdy := smoother.Update(dx, dy)
			hs = append(hs, sdx)
			vs = append(vs, sdy)
		}

		if len(hs) == 0 {
			return Profile{}, fmt.Errorf("%w: %s", ErrPoseNotSampled, pose)
		}
		mh, err := stats.Median(hs)
		if err != nil {
			return Profile{}, fmt.Errorf("gaze: median for pose %s: %w", pose, err)
		}
		mv, err := stats.Median(vs)
		if err != nil {
			return Profile{}, fmt.Errorf("gaze: median for pose %s: %w", pose, err)
		}
		horiz[i] = mh
		vert[i] = mv
	}

	return deriveProfile(horiz, vert), nil
}

// deriveProfile turns per-pose medians into classification
// boundaries. The centre pose anchors the neutral point; margins are
// half the span between the directional extremes.
func deriveProfile(horiz, vert [5]float64) Profile {
	hCenter := horiz[0]
	vCenter := vert[0]

	hLeft := minOf(horiz[1:])
	hRight := maxOf(horiz[2:])
	vUp := minOf(vert[3:])
	vDown := maxOf(vert[4:])

	// Indistinguishable vertical extremes would collapse the band;
	// synthesize a small split around their midpoint instead.
	if math.Abs(vUp-vDown) <= verticalTolerance {
		mid := (vUp + vDown) / 2
		vUp = math.Max(0, mid-0.05)
		vDown = math.Min(1, mid+0.05)
	}

	hMargin := 0.5 * (hRight - hLeft)
	vMargin := 0.5 * (vDown - vUp)

	return Profile{
		LeftThresh:  hCenter - hMargin,
		RightThresh: hCenter + hMargin,
		TopThresh:   vCenter - vMargin,
		DownThresh:  vCenter + vMargin,
	}
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
