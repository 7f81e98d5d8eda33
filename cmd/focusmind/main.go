// Package main provides the CLI entrypoint for FocusMind.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/StutiRuparel/FocusMind/internal/config"
	"github.com/StutiRuparel/FocusMind/pkg/facemesh"
)

// version is stamped via -ldflags at release time.
var version = "dev"

var (
	flagConfig        string
	flagLogLevel      string
	flagCamera        int
	flagDemo          bool
	flagProfile       string
	flagDB            string
	flagDetectorModel string
	flagLandmarkModel string

	flagMetricsAddr   string
	flagUpdateEvery   time.Duration
	flagFrameEvery    time.Duration

	statsSince  string
	statsLast   int
	statsScores string
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "focusmind",
		Short:         "Webcam focus tracking for deep work",
		Long: "FocusMind watches your webcam, estimates how focused you are from\n" +
			"eye, gaze and head-pose signals, and records focus sessions locally.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runMonitorCmd,
	}

	md := facemesh.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", config.DefaultConfigPath(), "config file path")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.IntVar(&flagCamera, "camera", 0, "camera index")
	pf.BoolVar(&flagDemo, "demo", false, "use the synthetic face source instead of a camera")
	pf.StringVar(&flagProfile, "gaze-profile", "", "gaze calibration profile path (default: XDG config dir)")
	pf.StringVar(&flagDB, "db", "", "session database path (default: XDG data dir)")
	pf.StringVar(&flagDetectorModel, "detector-model", md.DetectorModelPath, "YuNet face detection model path")
	pf.StringVar(&flagLandmarkModel, "landmark-model", md.LandmarkModelPath, "face landmark model path")

	rootCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.Flags().DurationVar(&flagUpdateEvery, "update-interval", 0, "score emission interval (default from config)")
	rootCmd.Flags().DurationVar(&flagFrameEvery, "frame-interval", 0, "frame capture interval (default from config)")

	rootCmd.AddCommand(newCalibrateCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the focusmind version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "focusmind "+version)
		},
	}
}

// loadSettings resolves the config file and applies flag overrides on
// top. Flags only win when they were set explicitly.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Load(flagConfig)
	if err != nil {
		return s, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	if flags.Changed("camera") {
		s.CameraIndex = flagCamera
	}
	if flagProfile != "" {
		s.ProfilePath = flagProfile
	}
	if flagDB != "" {
		s.DBPath = flagDB
	}
	if flags.Changed("metrics-addr") {
		s.MetricsAddr = flagMetricsAddr
	}
	if flags.Changed("update-interval") {
		s.UpdateInterval = flagUpdateEvery
	}
	if flags.Changed("frame-interval") {
		s.FrameInterval = flagFrameEvery
	}
	return s, nil
}
