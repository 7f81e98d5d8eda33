package config

import (
	"os"
	"path/filepath"

	"github.com/StutiRuparel/FocusMind/pkg/gaze"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "focusmind", "config.toml")
}

// DefaultDBPath returns the default path for the session database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "focusmind", "focusmind.db")
}

// DefaultProfilePath returns the default path for the calibrated gaze
// profile.
func DefaultProfilePath() string {
	return filepath.Join(XDGConfigHome(), "focusmind", gaze.DefaultProfileName)
}
