package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/StutiRuparel/FocusMind/internal/log"
	"github.com/StutiRuparel/FocusMind/pkg/gaze"
	"github.com/StutiRuparel/FocusMind/pkg/geometry"
)

func newCalibrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate",
		Short: "Calibrate gaze thresholds for your face and camera",
		Args:  cobra.NoArgs,
		RunE:  runCalibrateCmd,
	}
}

func runCalibrateCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log.Init(s.LogLevel)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, closeSrc, err := openSource(s)
	if err != nil {
		return err
	}
	defer closeSrc()

	confirm := make(chan struct{}, 1)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case confirm <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Gaze calibration")
	fmt.Fprintln(out, "Hold each pose with your head still, then press Enter.")
	fmt.Fprintln(out)

	profile, err := gaze.Calibrate(ctx, gaze.CalibratorConfig{
		Sample: func(ctx context.Context) (float64, float64, bool, error) {
			if flagDemo {
				// The synthetic source never blocks; pace it like a camera.
				time.Sleep(33 * time.Millisecond)
			}
			frame, err := src.Next(ctx)
			if err != nil {
				return 0, 0, false, err
			}
			h, v, ok := geometry.GazeRatios(frame)
			return h, v, ok, nil
		},
		Confirm: confirm,
		OnPose: func(p gaze.Pose) {
			fmt.Fprintf(out, "Look %s and press Enter...\n", p)
		},
	})
	if err != nil {
		return fmt.Errorf("calibration failed: %w", err)
	}

	if err := profile.Save(s.ProfilePath); err != nil {
		return fmt.Errorf("failed to save gaze profile: %w", err)
	}
	fmt.Fprintf(out, "\nSaved gaze profile to %s\n", s.ProfilePath)
	fmt.Fprintf(out, "  horizontal %.3f - %.3f\n", profile.LeftThresh, profile.RightThresh)
	fmt.Fprintf(out, "  vertical   %.3f - %.3f\n", profile.TopThresh, profile.DownThresh)
	return nil
}
