package audio

import (
	"log/slog"
	"slices"
	"testing"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

type fakePlayer struct {
	calls       []string
	musicVolume float64
	sfxVolume   float64
}

func (p *fakePlayer) PlayMusic(name string)      { p.calls = append(p.calls, "music:"+name) }
func (p *fakePlayer) StopMusic()                 { p.calls = append(p.calls, "stop") }
func (p *fakePlayer) PlaySFX(name string)        { p.calls = append(p.calls, "sfx:"+name) }
func (p *fakePlayer) SetMusicVolume(v float64)   { p.musicVolume = v }
func (p *fakePlayer) SetSFXVolume(v float64)     { p.sfxVolume = v }

func newTestManager(store prefs.Prefs) (*Manager, *fakePlayer) {
	player := &fakePlayer{}
	return New(player, store, slog.New(slog.DiscardHandler)), player
}

func TestDefaultsPushedOnStart(t *testing.T) {
	_, player := newTestManager(prefs.NewMemory())
	want := float64(constants.DefaultVolume) / 100
	if player.musicVolume != want || player.sfxVolume != want {
		t.Errorf("volumes = %v/%v, want %v", player.musicVolume, player.sfxVolume, want)
	}
}

func TestVolumeClampedAndStored(t *testing.T) {
	store := prefs.NewMemory()
	m, player := newTestManager(store)

	m.SetMusicVolume(150)
	m.SetSFXVolume(-5)

	s := m.Settings()
	if s.MusicVolume != 100 || s.SFXVolume != 0 {
		t.Errorf("settings = %+v", s)
	}
	if player.musicVolume != 1 || player.sfxVolume != 0 {
		t.Errorf("player volumes = %v/%v", player.musicVolume, player.sfxVolume)
	}
	if store.GetInt(constants.PrefMusicVolume, -1) != 100 {
		t.Error("music volume not persisted")
	}
}

func TestMuteSuppressesPlayback(t *testing.T) {
	m, player := newTestManager(prefs.NewMemory())

	m.PlayMusic("lobby")
	m.SetMusicMuted(true)
	m.PlayMusic("shop")
	m.SetSFXMuted(true)
	m.PlaySFX("click")
	m.SetMusicMuted(false)
	m.SetSFXMuted(false)
	m.PlaySFX("click")

	want := []string{"music:lobby", "stop", "music:shop", "sfx:click"}
	if !slices.Equal(player.calls, want) {
		t.Errorf("calls = %v, want %v", player.calls, want)
	}
	if m.CurrentMusic() != "shop" {
		t.Errorf("CurrentMusic() = %q, want shop", m.CurrentMusic())
	}
}

func TestMutedVolumeIsZero(t *testing.T) {
	m, player := newTestManager(prefs.NewMemory())
	m.SetMusicMuted(true)
	if player.musicVolume != 0 {
		t.Errorf("muted music volume = %v, want 0", player.musicVolume)
	}
}

func TestChangedEmitsSettings(t *testing.T) {
	m, _ := newTestManager(prefs.NewMemory())

	var got []Settings
	m.Changed().Subscribe(func(s Settings) { got = append(got, s) })
	m.SetMusicVolume(40)
	m.SetSFXMuted(true)

	if len(got) != 2 || got[0].MusicVolume != 40 || !got[1].SFXMuted {
		t.Errorf("emitted %+v", got)
	}
}

func TestNilPlayer(t *testing.T) {
	m := New(nil, prefs.NewMemory(), slog.New(slog.DiscardHandler))
	m.PlayMusic("title")
	m.PlaySFX("click")
	m.StopMusic()
	if m.CurrentMusic() != "" {
		t.Error("StopMusic should clear the current track")
	}
}
