// Package settings holds the on/off preferences that are not audio: vibration
// and push notifications.
package settings

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/event"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/internal"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

// Vibrator is the platform haptics backend.
type Vibrator interface {
	Vibrate(d time.Duration)
}

// Toggle names a setting in Change notifications.
type Toggle string

const (
	ToggleVibration Toggle = "vibration"
	TogglePush      Toggle = "push"
)

// Change describes a toggle that was flipped.
type Change struct {
	Toggle  Toggle
	Enabled bool
}

type Manager struct {
	store    prefs.Prefs
	vibrator Vibrator
	logger   *slog.Logger
	changed  event.Feed[Change]
}

// New creates the manager. vibrator may be nil on platforms without haptics.
func New(store prefs.Prefs, vibrator Vibrator, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		vibrator: vibrator,
		logger:   internal.LoggerOr(logger).With("manager", "settings"),
	}
}

func (m *Manager) Changed() *event.Feed[Change] {
	return &m.changed
}

func (m *Manager) VibrationEnabled() bool {
	return m.store.GetBool(constants.PrefVibration, true)
}

func (m *Manager) PushEnabled() bool {
	return m.store.GetBool(constants.PrefPush, true)
}

func (m *Manager) SetVibration(enabled bool) {
	m.set(ToggleVibration, constants.PrefVibration, enabled)
}

func (m *Manager) SetPush(enabled bool) {
	m.set(TogglePush, constants.PrefPush, enabled)
}

// Vibrate forwards to the vibrator when vibration is on.
func (m *Manager) Vibrate(d time.Duration) {
	if !m.VibrationEnabled() {
		return
	}
	if m.vibrator == nil {
		m.logger.Debug("No vibrator available")
		return
	}
	m.vibrator.Vibrate(d)
}

func (m *Manager) set(toggle Toggle, key string, enabled bool) {
	if m.store.GetBool(key, true) == enabled {
		return
	}
	m.store.SetBool(key, enabled)
	if err := m.store.Save(); err != nil {
		m.logger.Error("Failed to save setting", "setting", toggle, "error", err)
	}
	m.changed.Emit(Change{Toggle: toggle, Enabled: enabled})
}
