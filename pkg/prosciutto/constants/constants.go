// Package constants defines shared keys, environment variables and default
// values used throughout prosciutto.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// DebugEnvVar enables debug logging for the internal logger when set.
const DebugEnvVar = "PROSCIUTTO_DEBUG"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Preference keys. The names match the ones shipped builds already wrote, so
// they must not change.
const (
	PrefRememberedUsername = "RememberedUsername"
	PrefRememberMe         = "RememberMe"
	PrefPrivacyAccepted    = "PrivacyAccepted"
	PrefLanguage           = "Language"
	PrefVibration          = "Vibration"
	PrefPush               = "Push"
	PrefEnergy             = "Energy"
	PrefEnergyTimestamp    = "EnergyLastTime"
	PrefMusicVolume        = "MusicVolume"
	PrefSFXVolume          = "SFXVolume"
	PrefMusicMuted         = "MusicMuted"
	PrefSFXMuted           = "SFXMuted"
	PrefPlayerID           = "PlayerId"
)

// Defaults applied when neither configuration nor stored preferences say otherwise.
const (
	DefaultMaxEnergy      = 30
	DefaultEnergyInterval = 10 * time.Minute
	DefaultLanguage       = "en"
	DefaultVolume         = 80
	DefaultShowDuration   = 250 * time.Millisecond
	DefaultHideDuration   = 200 * time.Millisecond
	DefaultEase           = "out-quad"
)

// FrameRate is the nominal update rate used to sample spring eases.
const FrameRate = 60
