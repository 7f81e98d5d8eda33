package config

import (
	"os"
	"strconv"
)

// Environment overrides sit between the config file and CLI flags.
// They pair with the .env bootstrap in main: anything godotenv loads
// lands here.
func (s *Settings) applyEnv() {
	if v := os.Getenv("FOCUSMIND_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("FOCUSMIND_DB"); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv("FOCUSMIND_PROFILE"); v != "" {
		s.ProfilePath = v
	}
	if v := os.Getenv("FOCUSMIND_METRICS_ADDR"); v != "" {
		s.MetricsAddr = v
	}
	if v := os.Getenv("FOCUSMIND_CAMERA"); v != "" {
		if idx, err := strconv.Atoi(v); err == nil {
			s.CameraIndex = idx
		}
	}
}
