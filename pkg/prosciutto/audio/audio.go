// Package audio keeps the player's music and sound-effect settings and
// forwards playback requests to the host's audio backend.
package audio

import (
	"log/slog"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/event"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/internal"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

// Player is the host's audio backend. Volumes are in [0,1].
type Player interface {
	PlayMusic(name string)
	StopMusic()
	PlaySFX(name string)
	SetMusicVolume(volume float64)
	SetSFXVolume(volume float64)
}

// NopPlayer discards everything.
type NopPlayer struct{}

func (NopPlayer) PlayMusic(string)       {}
func (NopPlayer) StopMusic()             {}
func (NopPlayer) PlaySFX(string)         {}
func (NopPlayer) SetMusicVolume(float64) {}
func (NopPlayer) SetSFXVolume(float64)   {}

// Settings is a snapshot of the stored audio settings. Volumes are 0-100.
type Settings struct {
	MusicVolume int
	SFXVolume   int
	MusicMuted  bool
	SFXMuted    bool
}

type Manager struct {
	player  Player
	store   prefs.Prefs
	logger  *slog.Logger
	music   string
	changed event.Feed[Settings]
}

// New reads the stored settings and pushes the effective volumes to player.
// A nil player is replaced by NopPlayer.
func New(player Player, store prefs.Prefs, logger *slog.Logger) *Manager {
	if player == nil {
		player = NopPlayer{}
	}
	m := &Manager{
		player: player,
		store:  store,
		logger: internal.LoggerOr(logger).With("manager", "audio"),
	}
	m.push()
	return m
}

// Settings returns the stored settings.
func (m *Manager) Settings() Settings {
	return Settings{
		MusicVolume: clamp(m.store.GetInt(constants.PrefMusicVolume, constants.DefaultVolume)),
		SFXVolume:   clamp(m.store.GetInt(constants.PrefSFXVolume, constants.DefaultVolume)),
		MusicMuted:  m.store.GetBool(constants.PrefMusicMuted, false),
		SFXMuted:    m.store.GetBool(constants.PrefSFXMuted, false),
	}
}

// Changed is emitted with the new settings after every change.
func (m *Manager) Changed() *event.Feed[Settings] {
	return &m.changed
}

func (m *Manager) SetMusicVolume(volume int) {
	m.store.SetInt(constants.PrefMusicVolume, clamp(volume))
	m.commit()
}

func (m *Manager) SetSFXVolume(volume int) {
	m.store.SetInt(constants.PrefSFXVolume, clamp(volume))
	m.commit()
}

// SetMusicMuted mutes or unmutes music. Unmuting resumes the last track.
func (m *Manager) SetMusicMuted(muted bool) {
	m.store.SetBool(constants.PrefMusicMuted, muted)
	if muted {
		m.player.StopMusic()
	} else if m.music != "" {
		m.player.PlayMusic(m.music)
	}
	m.commit()
}

func (m *Manager) SetSFXMuted(muted bool) {
	m.store.SetBool(constants.PrefSFXMuted, muted)
	m.commit()
}

// PlayMusic remembers name as the current track and plays it unless music is
// muted.
func (m *Manager) PlayMusic(name string) {
	m.music = name
	if m.Settings().MusicMuted {
		return
	}
	m.player.PlayMusic(name)
}

func (m *Manager) StopMusic() {
	m.music = ""
	m.player.StopMusic()
}

// PlaySFX plays a sound effect unless effects are muted.
func (m *Manager) PlaySFX(name string) {
	if m.Settings().SFXMuted {
		return
	}
	m.player.PlaySFX(name)
}

// CurrentMusic returns the last requested track, or "".
func (m *Manager) CurrentMusic() string {
	return m.music
}

func (m *Manager) commit() {
	if err := m.store.Save(); err != nil {
		m.logger.Error("Failed to save audio settings", "error", err)
	}
	m.push()
	m.changed.Emit(m.Settings())
}

func (m *Manager) push() {
	s := m.Settings()
	music, sfx := float64(s.MusicVolume)/100, float64(s.SFXVolume)/100
	if s.MusicMuted {
		music = 0
	}
	if s.SFXMuted {
		sfx = 0
	}
	m.player.SetMusicVolume(music)
	m.player.SetSFXVolume(sfx)
}

func clamp(v int) int {
	return min(max(v, 0), 100)
}
