package gaze

import (
	"context"
	"errors"
	"math"
	"testing"
)

// script drives Calibrate deterministically: each pose yields its
// samples and then fires the confirm signal.
type script struct {
	poses   [][][2]float64
	confirm chan struct{}
	pose    int
	idx     int
}

func newScript(poses [][][2]float64) *script {
	return &script{poses: poses, confirm: make(chan struct{}, 1)}
}

func (s *script) sample(ctx context.Context) (float64, float64, bool, error) {
	if s.pose >= len(s.poses) {
		return 0, 0, false, nil
	}
	samples := s.poses[s.pose]
	if s.idx >= len(samples) {
		s.confirm <- struct{}{}
		s.pose++
		s.idx = 0
		return 0, 0, false, nil
	}
	v := samples[s.idx]
	s.idx++
	return v[0], v[1], true, nil
}

func repeat(dx, dy float64, n int) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{dx, dy}
	}
	return out
}

func TestCalibrateDerivesProfile(t *testing.T) {
	sc := newScript([][][2]float64{
		repeat(0.5, 0.5, 3),
		repeat(0.3, 0.5, 3),
		repeat(0.7, 0.5, 3),
		repeat(0.5, 0.35, 3),
		repeat(0.5, 0.68, 3),
	})

	var seen []Pose
	got, err := Calibrate(context.Background(), CalibratorConfig{
		Sample:         sc.sample,
		Confirm:        sc.confirm,
		OnPose:         func(p Pose) { seen = append(seen, p) },
		SmoothingAlpha: 1,
	})
	if err != nil {
		t.Fatalf("Calibrate() error: %v", err)
	}

	want := Profile{LeftThresh: 0.3, RightThresh: 0.7, TopThresh: 0.335, DownThresh: 0.665}
	assertProfileNear(t, got, want)

	wantOrder := []Pose{PoseCenter, PoseLeft, PoseRight, PoseUp, PoseDown}
	if len(seen) != len(wantOrder) {
		t.Fatalf("OnPose fired %d times, want %d", len(seen), len(wantOrder))
	}
	for i, p := range wantOrder {
		if seen[i] != p {
			t.Errorf("pose %d = %s, want %s", i, seen[i], p)
		}
	}
}

func TestCalibrateMedianIgnoresOutliers(t *testing.T) {
	centre := append(repeat(0.5, 0.5, 4), [2]float64{0.95, 0.95})
	sc := newScript([][][2]float64{
		centre,
		repeat(0.3, 0.5, 3),
		repeat(0.7, 0.5, 3),
		repeat(0.5, 0.35, 3),
		repeat(0.5, 0.68, 3),
	})

	got, err := Calibrate(context.Background(), CalibratorConfig{
		Sample:         sc.sample,
		Confirm:        sc.confirm,
		SmoothingAlpha: 1,
	})
	if err != nil {
		t.Fatalf("Calibrate() error: %v", err)
	}

	// The outlier frame must not move the centre medians.
	want := Profile{LeftThresh: 0.3, RightThresh: 0.7, TopThresh: 0.335, DownThresh: 0.665}
	assertProfileNear(t, got, want)
}

func TestCalibrateDegenerateVerticalRange(t *testing.T) {
	// The subject's vertical ratio never moves across poses.
	sc := newScript([][][2]float64{
		repeat(0.5, 0.5, 3),
		repeat(0.3, 0.5, 3),
		repeat(0.7, 0.5, 3),
		repeat(0.5, 0.5, 3),
		repeat(0.5, 0.5, 3),
	})

	got, err := Calibrate(context.Background(), CalibratorConfig{
		Sample:         sc.sample,
		Confirm:        sc.confirm,
		SmoothingAlpha: 1,
	})
	if err != nil {
		t.Fatalf("Calibrate() error: %v", err)
	}

	if gap := got.DownThresh - got.TopThresh; math.Abs(gap-0.1) > 1e-9 {
		t.Errorf("vertical band = %v, want the synthesized 0.1 split", gap)
	}
	assertProfileNear(t, got, Profile{LeftThresh: 0.3, RightThresh: 0.7, TopThresh: 0.45, DownThresh: 0.55})
}

func TestCalibratePoseWithoutSamples(t *testing.T) {
	sc := newScript([][][2]float64{
		{}, // centre confirmed before any usable frame
		repeat(0.3, 0.5, 3),
		repeat(0.7, 0.5, 3),
		repeat(0.5, 0.35, 3),
		repeat(0.5, 0.68, 3),
	})

	_, err := Calibrate(context.Background(), CalibratorConfig{
		Sample:  sc.sample,
		Confirm: sc.confirm,
	})
	if !errors.Is(err, ErrPoseNotSampled) {
		t.Errorf("error = %v, want ErrPoseNotSampled", err)
	}
}

func TestCalibrateAbortsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Calibrate(ctx, CalibratorConfig{
		Sample:  func(context.Context) (float64, float64, bool, error) { return 0.5, 0.5, true, nil },
		Confirm: make(chan struct{}),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestCalibrateValidatesConfig(t *testing.T) {
	if _, err := Calibrate(context.Background(), CalibratorConfig{Confirm: make(chan struct{})}); !errors.Is(err, ErrNoSampleSource) {
		t.Errorf("error = %v, want ErrNoSampleSource", err)
	}
	if _, err := Calibrate(context.Background(), CalibratorConfig{
		Sample: func(context.Context) (float64, float64, bool, error) { return 0, 0, false, nil },
	}); !errors.Is(err, ErrNoConfirmSignal) {
		t.Errorf("error = %v, want ErrNoConfirmSignal", err)
	}
}

func assertProfileNear(t *testing.T, got, want Profile) {
	t.Helper()
	const tol = 1e-9
	if math.Abs(got.LeftThresh-want.LeftThresh) > tol ||
		math.Abs(got.RightThresh-want.RightThresh) > tol ||
		math.Abs(got.TopThresh-want.TopThresh) > tol ||
		math.Abs(got.DownThresh-want.DownThresh) > tol {
		t.Errorf("profile = %+v, want %+v", got, want)
	}
}
