// Package config loads FocusMind settings from an optional TOML file
// layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/StutiRuparel/FocusMind/pkg/fusion"
	"github.com/StutiRuparel/FocusMind/pkg/gaze"
	"github.com/StutiRuparel/FocusMind/pkg/geometry"
	"github.com/StutiRuparel/FocusMind/pkg/tracker"
)

// Settings is the fully resolved runtime configuration.
type Settings struct {
	LogLevel string

	CameraIndex   int
	FrameWidth    int
	FrameHeight   int
	FrameInterval time.Duration

	UpdateInterval time.Duration
	GazeAlpha      float64
	ClosedEAR      float64
	OpenEAR        float64
	HeadWindow     int
	AwayWindow     int

	AlertThresholds []int
	AlertRecovery   float64

	DBPath      string
	ProfilePath string
	MetricsAddr string
}

// Default returns the built-in settings, with file paths resolved
// against the XDG base directories.
func Default() Settings {
	tc := tracker.DefaultConfig()
	return Settings{
		LogLevel:        "info",
		CameraIndex:     0,
		FrameWidth:      640,
		FrameHeight:     480,
		FrameInterval:   tracker.DefaultFrameInterval,
		UpdateInterval:  tc.UpdateInterval,
		GazeAlpha:       gaze.DefaultSmoothingAlpha,
		ClosedEAR:       geometry.DefaultClosedEAR,
		OpenEAR:         geometry.DefaultOpenEAR,
		HeadWindow:      tc.HeadWindow,
		AwayWindow:      tc.AwayWindow,
		AlertThresholds: tc.AlertThresholds,
		AlertRecovery:   tc.AlertRecovery,
		DBPath:          DefaultDBPath(),
		ProfilePath:     DefaultProfilePath(),
		MetricsAddr:     "",
	}
}

// Tracker maps the resolved settings onto a tracker configuration.
func (s Settings) Tracker() tracker.Config {
	cfg := tracker.DefaultConfig()
	cfg.UpdateInterval = s.UpdateInterval
	cfg.ClosedEAR = s.ClosedEAR
	cfg.OpenEAR = s.OpenEAR
	cfg.GazeAlpha = s.GazeAlpha
	cfg.HeadWindow = s.HeadWindow
	cfg.AwayWindow = s.AwayWindow
	cfg.AlertThresholds = s.AlertThresholds
	cfg.AlertRecovery = s.AlertRecovery
	cfg.Fusion = fusion.DefaultConfig()
	return cfg
}

// FileConfig mirrors the TOML config file. Every field is optional;
// nil pointers leave the corresponding default untouched.
type FileConfig struct {
	Log     *LogSection     `toml:"log"`
	Camera  *CameraSection  `toml:"camera"`
	Monitor *MonitorSection `toml:"monitor"`
	Alerts  *AlertsSection  `toml:"alerts"`
	Storage *StorageSection `toml:"storage"`
	Metrics *MetricsSection `toml:"metrics"`
}

type LogSection struct {
	Level *string `toml:"level"`
}

type CameraSection struct {
	Index  *int `toml:"index"`
	Width  *int `toml:"width"`
	Height *int `toml:"height"`
}

type MonitorSection struct {
	FrameIntervalMS  *int     `toml:"frame_interval_ms"`
	UpdateIntervalMS *int     `toml:"update_interval_ms"`
	GazeAlpha        *float64 `toml:"gaze_alpha"`
	ClosedEAR        *float64 `toml:"closed_ear"`
	OpenEAR          *float64 `toml:"open_ear"`
	HeadWindow       *int     `toml:"head_window"`
	AwayWindow       *int     `toml:"away_window"`
}

type AlertsSection struct {
	Thresholds []int    `toml:"thresholds"`
	Recovery   *float64 `toml:"recovery"`
}

type StorageSection struct {
	DBPath      *string `toml:"db_path"`
	ProfilePath *string `toml:"profile_path"`
}

type MetricsSection struct {
	Addr *string `toml:"addr"`
}

// Load resolves settings in layers: built-in defaults, then the TOML
// file at path, then FOCUSMIND_* environment variables. A missing
// file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		s.applyEnv()
		return s, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s.applyEnv()
		return s, nil
	}
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return s, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	s.apply(fc)
	s.applyEnv()
	return s, nil
}

func (s *Settings) apply(fc FileConfig) {
	if fc.Log != nil {
		setString(&s.LogLevel, fc.Log.Level)
	}
	if fc.Camera != nil {
		setInt(&s.CameraIndex, fc.Camera.Index)
		setInt(&s.FrameWidth, fc.Camera.Width)
		setInt(&s.FrameHeight, fc.Camera.Height)
	}
	if fc.Monitor != nil {
		setMillis(&s.FrameInterval, fc.Monitor.FrameIntervalMS)
		setMillis(&s.UpdateInterval, fc.Monitor.UpdateIntervalMS)
		setFloat(&s.GazeAlpha, fc.Monitor.GazeAlpha)
		setFloat(&s.ClosedEAR, fc.Monitor.ClosedEAR)
		setFloat(&s.OpenEAR, fc.Monitor.OpenEAR)
		setInt(&s.HeadWindow, fc.Monitor.HeadWindow)
		setInt(&s.AwayWindow, fc.Monitor.AwayWindow)
	}
	if fc.Alerts != nil {
		if len(fc.Alerts.Thresholds) > 0 {
			s.AlertThresholds = fc.Alerts.Thresholds
		}
		setFloat(&s.AlertRecovery, fc.Alerts.Recovery)
	}
	if fc.Storage != nil {
		setString(&s.DBPath, fc.Storage.DBPath)
		setString(&s.ProfilePath, fc.Storage.ProfilePath)
	}
	if fc.Metrics != nil {
		setString(&s.MetricsAddr, fc.Metrics.Addr)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setMillis(dst *time.Duration, v *int) {
	if v != nil {
		*dst = time.Duration(*v) * time.Millisecond
	}
}
