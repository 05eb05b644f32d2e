// Package language selects the UI language and localizes message IDs.
//
// Messages live in TOML files named active.<tag>.toml. A default set is
// embedded; applications can add their own files with WithMessages.
package language

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/event"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/internal"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

//go:embed locales/*.toml
var embeddedLocales embed.FS

// Manager holds the message bundle and the active language.
type Manager struct {
	bundle    *i18n.Bundle
	fallback  language.Tag
	tags      []language.Tag
	matcher   language.Matcher
	current   language.Tag
	localizer *i18n.Localizer
	store     prefs.Prefs
	changed   event.Feed[language.Tag]
	logger    *slog.Logger
	extra     []fs.FS
}

// Option configures a Manager.
type Option func(*Manager)

// WithMessages adds every *.toml file at the root of fsys to the bundle.
// Messages from later sources override earlier ones.
func WithMessages(fsys fs.FS) Option {
	return func(m *Manager) {
		m.extra = append(m.extra, fsys)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New builds the bundle and selects the stored language, or fallback when
// nothing usable is stored.
func New(store prefs.Prefs, fallback language.Tag, opts ...Option) (*Manager, error) {
	m := &Manager{
		bundle:   i18n.NewBundle(fallback),
		fallback: fallback,
		store:    store,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = internal.LoggerOr(m.logger).With("manager", "language")
	m.bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	sources := append([]fs.FS{locales}, m.extra...)
	for _, fsys := range sources {
		if err := m.load(fsys); err != nil {
			return nil, err
		}
	}

	m.tags = []language.Tag{fallback}
	for _, tag := range m.bundle.LanguageTags() {
		if tag != fallback {
			m.tags = append(m.tags, tag)
		}
	}
	m.matcher = language.NewMatcher(m.tags)

	initial := m.fallback
	if raw := store.GetString(constants.PrefLanguage, ""); raw != "" {
		if tag, err := language.Parse(raw); err == nil {
			initial = tag
		} else {
			m.logger.Warn("Ignoring stored language", "language", raw, "error", err)
		}
	}
	m.apply(m.match(initial))
	return m, nil
}

func (m *Manager) load(fsys fs.FS) error {
	files, err := fs.Glob(fsys, "*.toml")
	if err != nil {
		return err
	}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read messages %s: %w", name, err)
		}
		if _, err := m.bundle.ParseMessageFileBytes(data, path.Base(name)); err != nil {
			return fmt.Errorf("parse messages %s: %w", name, err)
		}
	}
	return nil
}

// match maps tag to the closest supported language, or the fallback.
func (m *Manager) match(tag language.Tag) language.Tag {
	_, index, confidence := m.matcher.Match(tag)
	if confidence == language.No {
		return m.fallback
	}
	return m.tags[index]
}

func (m *Manager) apply(tag language.Tag) {
	m.current = tag
	m.localizer = i18n.NewLocalizer(m.bundle, tag.String(), m.fallback.String())
}

// Set switches to the supported language closest to tag, stores the choice
// and emits Changed when the language actually changes. It returns the
// language now in use.
func (m *Manager) Set(tag language.Tag) language.Tag {
	chosen := m.match(tag)
	if chosen != tag {
		m.logger.Debug("Language matched", "requested", tag.String(), "chosen", chosen.String())
	}

	m.store.SetString(constants.PrefLanguage, chosen.String())
	if err := m.store.Save(); err != nil {
		m.logger.Error("Failed to save language", "error", err)
	}

	if chosen == m.current {
		return chosen
	}
	m.apply(chosen)
	m.changed.Emit(chosen)
	return chosen
}

// SetString parses raw as a BCP 47 tag and calls Set.
func (m *Manager) SetString(raw string) (language.Tag, error) {
	tag, err := language.Parse(raw)
	if err != nil {
		return m.current, fmt.Errorf("parse language %q: %w", raw, err)
	}
	return m.Set(tag), nil
}

// Current returns the active language.
func (m *Manager) Current() language.Tag {
	return m.current
}

// Supported returns every language with a message file, fallback first.
func (m *Manager) Supported() []language.Tag {
	out := make([]language.Tag, len(m.tags))
	copy(out, m.tags)
	return out
}

// Changed is emitted with the new language after a switch.
func (m *Manager) Changed() *event.Feed[language.Tag] {
	return &m.changed
}

// Localize returns the message for id in the active language. Missing
// messages are logged and the id itself is returned.
func (m *Manager) Localize(id string, data map[string]any) string {
	return m.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// LocalizeCount is Localize for messages with plural forms. Count is added
// to the template data.
func (m *Manager) LocalizeCount(id string, count int, data map[string]any) string {
	merged := map[string]any{"Count": count}
	for k, v := range data {
		merged[k] = v
	}
	return m.localize(&i18n.LocalizeConfig{MessageID: id, PluralCount: count, TemplateData: merged})
}

func (m *Manager) localize(cfg *i18n.LocalizeConfig) string {
	msg, err := m.localizer.Localize(cfg)
	if err != nil && msg != "" {
		m.logger.Debug("Message served from fallback language", "id", cfg.MessageID, "language", m.current.String())
		return msg
	}
	if err != nil {
		m.logger.Warn("Missing message", "id", cfg.MessageID, "language", m.current.String(), "error", err)
		return cfg.MessageID
	}
	return msg
}
