package gaze

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultProfileName is the file Calibrate writes and LoadProfile
// reads, kept stable so recalibrating overwrites the old profile.
const DefaultProfileName = "gaze_calibration_parameters.json"

// Profile holds the personalized gaze classification boundaries, in
// the same normalized unit as the smoothed gaze vector.
type Profile struct {
	LeftThresh  float64 `json:"left_thresh"`
	RightThresh float64 `json:"right_thresh"`
	TopThresh   float64 `json:"top_thresh"`
	DownThresh  float64 `json:"down_thresh"`
}

// DefaultProfile returns generic boundaries that behave reasonably
// for an uncalibrated setup.
func DefaultProfile() Profile {
	return Profile{
		LeftThresh:  0.35,
		RightThresh: 0.65,
		TopThresh:   0.3,
		DownThresh:  0.7,
	}
}

// LoadProfile reads a saved profile. A missing file is not an error;
// the defaults are returned so a never-calibrated setup still works.
// On read or parse failures the defaults are returned alongside the
// error so callers can log it and keep going.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultProfile(), nil
	}
	if err != nil {
		return DefaultProfile(), fmt.Errorf("gaze: read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultProfile(), fmt.Errorf("gaze: parse profile: %w", err)
	}
	return p, nil
}

// Save writes the profile as indented JSON, creating parent
// directories as needed.
func (p Profile) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("gaze: create profile dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("gaze: encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gaze: write profile: %w", err)
	}
	return nil
}
