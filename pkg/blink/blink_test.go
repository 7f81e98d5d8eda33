package blink

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// feed runs a sample sequence at 100ms spacing and returns the number
// of completed blinks reported.
func feed(d *Detector, samples []float64) int {
	blinks := 0
	for i, s := range samples {
		if d.Update(s, t0.Add(time.Duration(i)*100*time.Millisecond)) {
			blinks++
		}
	}
	return blinks
}

func TestDetectorCountsBlinks(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    int
	}{
		{
			name:    "close then reopen",
			samples: []float64{0.5, 0.1, 0.1, 0.1, 0.5},
			want:    1,
		},
		{
			name:    "band dip is not a blink",
			samples: []float64{0.5, 0.22, 0.5},
			want:    0,
		},
		{
			name:    "jitter through the band stays one blink",
			samples: []float64{0.5, 0.1, 0.22, 0.1, 0.22, 0.5},
			want:    1,
		},
		{
			name:    "two separate blinks",
			samples: []float64{0.5, 0.1, 0.5, 0.1, 0.5},
			want:    2,
		},
		{
			name:    "never closing",
			samples: []float64{0.5, 0.4, 0.5, 0.6},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(DefaultCloseBelow, DefaultOpenAbove, t0)
			if got := feed(d, tt.samples); got != tt.want {
				t.Errorf("got %d blinks, want %d", got, tt.want)
			}
		})
	}
}

func TestDetectorClosedDuration(t *testing.T) {
	d := New(DefaultCloseBelow, DefaultOpenAbove, t0)

	d.Update(0.1, t0)
	if got := d.ClosedFor(); got != 0 {
		t.Errorf("ClosedFor() right after closing = %v, want 0", got)
	}

	d.Update(0.1, t0.Add(4*time.Second))
	if got := d.ClosedFor(); got != 4*time.Second {
		t.Errorf("ClosedFor() = %v, want 4s", got)
	}

	// A sample inside the hysteresis band keeps the clock running.
	d.Update(0.22, t0.Add(5*time.Second))
	if got := d.ClosedFor(); got != 5*time.Second {
		t.Errorf("ClosedFor() in band = %v, want 5s", got)
	}

	d.Update(0.5, t0.Add(6*time.Second))
	if got := d.ClosedFor(); got != 0 {
		t.Errorf("ClosedFor() after reopening = %v, want 0", got)
	}
}

func TestDetectorFaceLost(t *testing.T) {
	d := New(DefaultCloseBelow, DefaultOpenAbove, t0)

	d.Update(0.1, t0)
	d.FaceLost()
	if d.Update(0.5, t0.Add(time.Second)) {
		t.Error("blink completed across a face loss, want none")
	}
	if got := d.ClosedFor(); got != 0 {
		t.Errorf("ClosedFor() after face loss = %v, want 0", got)
	}

	// A full blink before the loss keeps its count.
	d.Update(0.1, t0.Add(2*time.Second))
	d.Update(0.5, t0.Add(3*time.Second))
	d.FaceLost()
	if got := d.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestDetectorRate(t *testing.T) {
	d := New(DefaultCloseBelow, DefaultOpenAbove, t0)

	if got := d.Rate(t0.Add(10 * time.Second)); got != 0 {
		t.Errorf("Rate() with no blinks = %v, want 0", got)
	}

	// Two blinks inside the first half minute.
	d.Update(0.1, t0.Add(5*time.Second))
	d.Update(0.5, t0.Add(6*time.Second))
	d.Update(0.1, t0.Add(20*time.Second))
	d.Update(0.5, t0.Add(21*time.Second))

	got := d.Rate(t0.Add(30 * time.Second))
	if got < 3.99 || got > 4.01 {
		t.Errorf("Rate() = %v, want 4 blinks/min", got)
	}

	// Past the minute mark the window resets.
	if got := d.Rate(t0.Add(61 * time.Second)); got != 0 {
		t.Errorf("Rate() after window reset = %v, want 0", got)
	}

	// Blinks after the reset measure against the new window.
	d.Update(0.1, t0.Add(64*time.Second))
	d.Update(0.5, t0.Add(65*time.Second))
	got = d.Rate(t0.Add(70 * time.Second))
	want := 1.0 / (9.0 / 60.0)
	if got < want-0.01 || got > want+0.01 {
		t.Errorf("Rate() = %v, want %v", got, want)
	}
}

func TestNewFallsBackOnBadBand(t *testing.T) {
	d := New(0.4, 0.2, t0)
	if d.closeBelow != DefaultCloseBelow || d.openAbove != DefaultOpenAbove {
		t.Errorf("band = (%v, %v), want defaults", d.closeBelow, d.openAbove)
	}
}
