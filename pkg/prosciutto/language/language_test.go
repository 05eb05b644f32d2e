package language

import (
	"log/slog"
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

func newTestManager(t *testing.T, store prefs.Prefs, opts ...Option) *Manager {
	t.Helper()
	opts = append(opts, WithLogger(slog.New(slog.DiscardHandler)))
	m, err := New(store, language.English, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestDefaultLanguage(t *testing.T) {
	m := newTestManager(t, prefs.NewMemory())

	if m.Current() != language.English {
		t.Errorf("Current() = %v, want en", m.Current())
	}
	if got := m.Localize("button_play", nil); got != "Play" {
		t.Errorf("button_play = %q, want Play", got)
	}
}

func TestSupported(t *testing.T) {
	m := newTestManager(t, prefs.NewMemory())
	tags := m.Supported()

	if len(tags) != 3 || tags[0] != language.English {
		t.Fatalf("Supported() = %v, want en first and 3 languages", tags)
	}
	found := map[string]bool{}
	for _, tag := range tags {
		found[tag.String()] = true
	}
	for _, want := range []string{"en", "ko", "ja"} {
		if !found[want] {
			t.Errorf("Supported() missing %s", want)
		}
	}
}

func TestSetPersistsAndNotifies(t *testing.T) {
	store := prefs.NewMemory()
	m := newTestManager(t, store)

	var changes []string
	m.Changed().Subscribe(func(tag language.Tag) { changes = append(changes, tag.String()) })

	if got := m.Set(language.Korean); got.String() != "ko" {
		t.Fatalf("Set(ko) = %v", got)
	}
	m.Set(language.Korean)

	if got := m.Localize("button_play", nil); got != "시작" {
		t.Errorf("button_play in ko = %q", got)
	}
	if got := store.GetString(constants.PrefLanguage, ""); got != "ko" {
		t.Errorf("stored language = %q, want ko", got)
	}
	if len(changes) != 1 || changes[0] != "ko" {
		t.Errorf("changes = %v, want [ko]", changes)
	}
}

func TestSetMatchesRegionalAndUnsupported(t *testing.T) {
	m := newTestManager(t, prefs.NewMemory())

	if got := m.Set(language.MustParse("ja-JP")); got.String() != "ja" {
		t.Errorf("Set(ja-JP) = %v, want ja", got)
	}
	if got := m.Set(language.French); got != language.English {
		t.Errorf("Set(fr) = %v, want en", got)
	}
}

func TestSetString(t *testing.T) {
	m := newTestManager(t, prefs.NewMemory())

	if _, err := m.SetString("ko"); err != nil {
		t.Fatalf("SetString(ko): %v", err)
	}
	if m.Current().String() != "ko" {
		t.Errorf("Current() = %v", m.Current())
	}
	if _, err := m.SetString("!!"); err == nil {
		t.Error("SetString should reject malformed tags")
	}
	if m.Current().String() != "ko" {
		t.Error("failed SetString must keep the current language")
	}
}

func TestStoredLanguageIsRestored(t *testing.T) {
	store := prefs.NewMemory()
	store.SetString(constants.PrefLanguage, "ja")

	m := newTestManager(t, store)
	if m.Current().String() != "ja" {
		t.Errorf("Current() = %v, want ja", m.Current())
	}
}

func TestBadStoredLanguageFallsBack(t *testing.T) {
	store := prefs.NewMemory()
	store.SetString(constants.PrefLanguage, "not a tag")

	m := newTestManager(t, store)
	if m.Current() != language.English {
		t.Errorf("Current() = %v, want en", m.Current())
	}
}

func TestMissingMessageReturnsID(t *testing.T) {
	m := newTestManager(t, prefs.NewMemory())
	if got := m.Localize("no_such_message", nil); got != "no_such_message" {
		t.Errorf("Localize(missing) = %q", got)
	}
}

func TestTemplateAndPlural(t *testing.T) {
	m := newTestManager(t, prefs.NewMemory())

	if got := m.Localize("energy_next", map[string]any{"Time": "04:59"}); got != "Next energy in 04:59" {
		t.Errorf("energy_next = %q", got)
	}
	if got := m.LocalizeCount("energy_count", 1, nil); got != "1 energy" {
		t.Errorf("energy_count(1) = %q", got)
	}
	if got := m.LocalizeCount("energy_count", 5, nil); got != "5 energy points" {
		t.Errorf("energy_count(5) = %q", got)
	}
}

func TestWithMessagesOverrides(t *testing.T) {
	custom := fstest.MapFS{
		"active.en.toml": {Data: []byte("button_play = \"Start\"\nshop_title = \"Shop\"\n")},
	}
	m := newTestManager(t, prefs.NewMemory(), WithMessages(custom))

	if got := m.Localize("button_play", nil); got != "Start" {
		t.Errorf("button_play = %q, want Start", got)
	}
	if got := m.Localize("shop_title", nil); got != "Shop" {
		t.Errorf("shop_title = %q, want Shop", got)
	}
}

func TestWithMessagesRejectsBadFile(t *testing.T) {
	custom := fstest.MapFS{
		"active.en.toml": {Data: []byte("button_play = ")},
	}
	if _, err := New(prefs.NewMemory(), language.English, WithMessages(custom),
		WithLogger(slog.New(slog.DiscardHandler))); err == nil {
		t.Error("New should fail on malformed message file")
	}
}
