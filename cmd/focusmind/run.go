package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/StutiRuparel/FocusMind/internal/config"
	"github.com/StutiRuparel/FocusMind/internal/log"
	"github.com/StutiRuparel/FocusMind/internal/metrics"
	"github.com/StutiRuparel/FocusMind/pkg/facemesh"
	"github.com/StutiRuparel/FocusMind/pkg/gaze"
	"github.com/StutiRuparel/FocusMind/pkg/session"
	"github.com/StutiRuparel/FocusMind/pkg/tracker"
	"github.com/StutiRuparel/FocusMind/pkg/typing"
)

func runMonitorCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log.Init(s.LogLevel)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	profile, err := gaze.LoadProfile(s.ProfilePath)
	if err != nil {
		log.Warn("using default gaze profile",
			"path", s.ProfilePath,
			"error", err,
		)
	}

	src, closeSrc, err := openSource(s)
	if err != nil {
		return err
	}
	defer closeSrc()

	store, err := session.Open(s.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warn("closing session store", "error", cerr)
		}
	}()

	monitor := tracker.New(s.Tracker(), profile, time.Now())
	monitor.SetNotifier(tracker.LogNotifier{})

	out := cmd.OutOrStdout()
	monitor.SetObserver(func(obs tracker.Observation) {
		if !obs.Emitted {
			return
		}
		fmt.Fprintf(out, "%s  focus %5.1f  gaze %-7s head %-8s blink %4.1f/min\n",
			time.Now().Format("15:04:05"),
			obs.Score, obs.GazeDirection, obs.HeadDirection, obs.BlinkRate)
	})

	keys := typing.NewRecorder(typing.DefaultWindow)
	go keys.Run(ctx)
	monitor.SetTypingSource(keys)
	if flagDemo {
		go simulateTyping(ctx, keys)
	}

	if s.MetricsAddr != "" {
		m := metrics.New()
		monitor.SetMetrics(m)
		go serveMetrics(ctx, s.MetricsAddr, m)
	}

	runErr := monitor.Run(ctx, src, s.FrameInterval)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	return saveSession(cmd, store, monitor.Recorder())
}

// openSource picks the landmark source: a webcam by default, the
// scripted synthetic face with --demo.
func openSource(s config.Settings) (tracker.Source, func(), error) {
	if flagDemo {
		return facemesh.NewSynthetic(), func() {}, nil
	}

	fc := facemesh.DefaultConfig()
	fc.CameraIndex = s.CameraIndex
	fc.Width = s.FrameWidth
	fc.Height = s.FrameHeight
	fc.DetectorModelPath = flagDetectorModel
	fc.LandmarkModelPath = flagLandmarkModel

	cam, err := facemesh.OpenCamera(fc)
	if err != nil {
		return nil, nil, err
	}
	closeCam := func() {
		if cerr := cam.Close(); cerr != nil {
			log.Warn("closing camera", "error", cerr)
		}
	}
	return cam, closeCam, nil
}

// saveSession aggregates the recorded scores and persists the session.
func saveSession(cmd *cobra.Command, store *session.Store, rec *session.Recorder) error {
	stats, ok := session.Aggregate(rec.Samples(), session.DefaultRecoveryThreshold)
	if !ok {
		log.Info("no scores recorded, skipping session save")
		return nil
	}

	// The run context is already cancelled at shutdown.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	endedAt := time.Now()
	if err := store.SaveSession(ctx, rec, stats, endedAt); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nSession %s saved\n", rec.ID())
	fmt.Fprintf(out, "  duration   %s\n", formatDuration(stats.Duration))
	fmt.Fprintf(out, "  average    %.1f\n", stats.AverageFocus)
	fmt.Fprintf(out, "  range      %.1f - %.1f\n", stats.MinFocus, stats.MaxFocus)
	fmt.Fprintf(out, "  recoveries %d\n", stats.Recoveries)
	return nil
}

// serveMetrics exposes the Prometheus endpoint until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server failed", "error", err)
	}
}

// simulateTyping feeds the typing recorder with bursty keystrokes so
// demo runs exercise the typing signal.
func simulateTyping(ctx context.Context, keys *typing.Recorder) {
	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// Type for twenty seconds, rest for ten.
			if now.Unix()%30 < 20 {
				keys.Record(now)
			}
		}
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%02ds", m, s)
}
