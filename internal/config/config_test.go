package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if s.UpdateInterval != want.UpdateInterval || s.LogLevel != want.LogLevel {
		t.Errorf("Load() = %+v, want defaults %+v", s, want)
	}
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	path := writeConfig(t, `
[monitor]
update_interval_ms = 5000
gaze_alpha = 0.5

[alerts]
thresholds = [70, 30]

[storage]
db_path = "/tmp/focus.db"
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.UpdateInterval != 5*time.Second {
		t.Errorf("UpdateInterval = %v, want 5s", s.UpdateInterval)
	}
	if s.GazeAlpha != 0.5 {
		t.Errorf("GazeAlpha = %v, want 0.5", s.GazeAlpha)
	}
	if got, want := s.AlertThresholds, []int{70, 30}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AlertThresholds = %v, want %v", got, want)
	}
	if s.DBPath != "/tmp/focus.db" {
		t.Errorf("DBPath = %q, want /tmp/focus.db", s.DBPath)
	}

	// Untouched fields keep their defaults.
	def := Default()
	if s.ClosedEAR != def.ClosedEAR {
		t.Errorf("ClosedEAR = %v, want default %v", s.ClosedEAR, def.ClosedEAR)
	}
	if s.AlertRecovery != def.AlertRecovery {
		t.Errorf("AlertRecovery = %v, want default %v", s.AlertRecovery, def.AlertRecovery)
	}
	if s.ProfilePath != def.ProfilePath {
		t.Errorf("ProfilePath = %q, want default %q", s.ProfilePath, def.ProfilePath)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "[monitor\nupdate_interval_ms = oops")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected parse error, got nil")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", s.LogLevel)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := writeConfig(t, `
[storage]
db_path = "/tmp/from-file.db"
`)
	t.Setenv("FOCUSMIND_DB", "/tmp/from-env.db")
	t.Setenv("FOCUSMIND_CAMERA", "2")
	t.Setenv("FOCUSMIND_LOG_LEVEL", "debug")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.DBPath != "/tmp/from-env.db" {
		t.Errorf("DBPath = %q, want /tmp/from-env.db", s.DBPath)
	}
	if s.CameraIndex != 2 {
		t.Errorf("CameraIndex = %d, want 2", s.CameraIndex)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
}

func TestEnvIgnoresBadCameraIndex(t *testing.T) {
	t.Setenv("FOCUSMIND_CAMERA", "not-a-number")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.CameraIndex != Default().CameraIndex {
		t.Errorf("CameraIndex = %d, want default %d", s.CameraIndex, Default().CameraIndex)
	}
}

func TestTrackerMapping(t *testing.T) {
	s := Default()
	s.UpdateInterval = 7 * time.Second
	s.ClosedEAR = 0.12
	s.OpenEAR = 0.4
	s.AlertThresholds = []int{90}
	s.AlertRecovery = 15

	cfg := s.Tracker()
	if cfg.UpdateInterval != 7*time.Second {
		t.Errorf("UpdateInterval = %v, want 7s", cfg.UpdateInterval)
	}
	if cfg.ClosedEAR != 0.12 || cfg.OpenEAR != 0.4 {
		t.Errorf("EAR band = (%v, %v), want (0.12, 0.4)", cfg.ClosedEAR, cfg.OpenEAR)
	}
	if len(cfg.AlertThresholds) != 1 || cfg.AlertThresholds[0] != 90 {
		t.Errorf("AlertThresholds = %v, want [90]", cfg.AlertThresholds)
	}
	if cfg.AlertRecovery != 15 {
		t.Errorf("AlertRecovery = %v, want 15", cfg.AlertRecovery)
	}
}

func TestDefaultPathsHonorXDGOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	if got, want := DefaultConfigPath(), filepath.Join("/cfg", "focusmind", "config.toml"); got != want {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, want)
	}
	if got, want := DefaultDBPath(), filepath.Join("/data", "focusmind", "focusmind.db"); got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
	if got := DefaultProfilePath(); filepath.Dir(got) != filepath.Join("/cfg", "focusmind") {
		t.Errorf("DefaultProfilePath() = %q, want under /cfg/focusmind", got)
	}
}
