// Package prosciutto is the engine-independent core of a mobile-game UI
// toolkit: view and popup navigation, persistent player preferences, energy
// regeneration, localisation, audio/haptics/auth settings and frame-driven
// tweens.
//
// Init wires every manager once and returns them on an App. Hosts call
// App.Update from their frame loop and App.Close on shutdown.
package prosciutto

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/audio"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/auth"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/config"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/energy"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/event"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/internal"
	lang "github.com/BrandonKowalski/prosciutto/pkg/prosciutto/language"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/router"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/settings"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/tween"
)

// KindNetworkError is the popup shown when an external service fails. It is
// only used if the application registers a popup of this kind.
const KindNetworkError router.Kind = "network_error"

// Options configures Init.
type Options struct {
	LogPath         string            // Full path for the log file; empty logs to stdout only
	LogLevel        string            // "debug", "info", "warn" or "error"
	Logger          *slog.Logger      // Overrides LogPath/LogLevel when set
	PrefsPath       string            // Preference file; empty keeps preferences in memory
	Energy          energy.Config     // Regeneration rules
	DefaultLanguage string            // BCP 47 tag used until the player picks one
	Messages        fs.FS             // Extra active.<tag>.toml message files
	ShowDuration    time.Duration     // Fade-in for panels created with App.NewPanel
	HideDuration    time.Duration     // Fade-out for panels created with App.NewPanel
	Ease            string            // Ease name for panel fades
	AudioPlayer     audio.Player      // Audio backend; nil discards playback
	Vibrator        settings.Vibrator // Haptics backend; nil disables vibration
	AuthProvider    auth.Provider     // Nil uses a LocalProvider
	Clock           func() time.Time  // Replaces time.Now for energy
}

// OptionsFromConfig maps loaded configuration onto Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		LogPath:   cfg.Log.Path,
		LogLevel:  cfg.Log.Level,
		PrefsPath: cfg.Prefs.Path,
		Energy: energy.Config{
			Max:      cfg.Energy.Max,
			Interval: cfg.Energy.Interval,
			Initial:  cfg.Energy.Initial,
		},
		DefaultLanguage: cfg.Language.Default,
		ShowDuration:    cfg.Animation.ShowDuration,
		HideDuration:    cfg.Animation.HideDuration,
		Ease:            cfg.Animation.Ease,
	}
}

// App owns one instance of every manager.
type App struct {
	Logger   *slog.Logger
	Prefs    *prefs.Store
	Animator *tween.Animator
	Views    *router.Navigator
	Popups   *router.Navigator
	Energy   *energy.Manager
	Language *lang.Manager
	Audio    *audio.Manager
	Settings *settings.Manager
	Auth     *auth.Manager

	ease         tween.Ease
	showDuration time.Duration
	hideDuration time.Duration
	subs         []*event.Subscription
}

// Init builds the managers. Only preference and message loading can fail.
func Init(options Options) (*App, error) {
	logger := options.Logger
	if logger == nil {
		if options.LogPath != "" {
			internal.SetLogPath(options.LogPath)
		}
		internal.SetRawLogLevel(options.LogLevel)
		if os.Getenv(constants.DebugEnvVar) != "" || constants.IsDevMode() {
			internal.SetInternalLogLevel(slog.LevelDebug)
		} else {
			internal.SetInternalLogLevel(internal.ParseLevel(options.LogLevel))
		}
		logger = internal.GetLogger()
	}

	store := prefs.NewMemory()
	if options.PrefsPath != "" {
		var err error
		store, err = prefs.Open(options.PrefsPath)
		if err != nil {
			return nil, NewInfrastructureError("open_prefs", err)
		}
	}

	defaultTag := language.English
	if options.DefaultLanguage != "" {
		tag, err := language.Parse(options.DefaultLanguage)
		if err != nil {
			logger.Warn("Invalid default language, using English", "language", options.DefaultLanguage, "error", err)
		} else {
			defaultTag = tag
		}
	}
	langOpts := []lang.Option{lang.WithLogger(logger)}
	if options.Messages != nil {
		langOpts = append(langOpts, lang.WithMessages(options.Messages))
	}
	languages, err := lang.New(store, defaultTag, langOpts...)
	if err != nil {
		return nil, NewInfrastructureError("load_messages", err)
	}

	ease, ok := tween.ByName(options.Ease)
	if !ok {
		if options.Ease != "" {
			logger.Warn("Unknown ease, using default", "ease", options.Ease)
		}
		ease, _ = tween.ByName(constants.DefaultEase)
	}

	energyOpts := []energy.Option{energy.WithLogger(logger)}
	if options.Clock != nil {
		energyOpts = append(energyOpts, energy.WithClock(options.Clock))
	}

	provider := options.AuthProvider
	if provider == nil {
		provider = auth.NewLocalProvider(store, nil)
	}

	app := &App{
		Logger:       logger,
		Prefs:        store,
		Animator:     tween.NewAnimator(),
		Views:        router.New("views", router.WithLogger(logger)),
		Popups:       router.New("popups", router.WithLogger(logger)),
		Energy:       energy.New(options.Energy, store, energyOpts...),
		Language:     languages,
		Audio:        audio.New(options.AudioPlayer, store, logger),
		Settings:     settings.New(store, options.Vibrator, logger),
		Auth:         auth.New(provider, store, logger),
		ease:         ease,
		showDuration: options.ShowDuration,
		hideDuration: options.HideDuration,
	}
	app.wire()
	return app, nil
}

func (a *App) wire() {
	a.subs = append(a.subs,
		a.Language.Changed().Subscribe(func(language.Tag) {
			a.Views.RefreshCurrent()
			a.Popups.RefreshCurrent()
		}),
		a.Auth.Changed().Subscribe(func(state auth.State) {
			if state != auth.StateFailed {
				return
			}
			if _, ok := a.Popups.Registry().Get(KindNetworkError); ok {
				_ = a.Popups.ShowKind(KindNetworkError, true)
			}
		}),
	)
}

// NewPanel creates a panel that fades with the configured durations and ease.
func (a *App) NewPanel(kind router.Kind) *router.Panel {
	return router.NewPanel(kind, router.WithFade(a.Animator, a.showDuration, a.hideDuration, a.ease))
}

// Update advances animations by dt. Call it once per frame.
func (a *App) Update(dt time.Duration) {
	a.Animator.Update(dt)
}

// Start launches background work (energy regeneration).
func (a *App) Start(ctx context.Context) {
	a.Energy.Start(ctx)
}

// Close stops background work, resets both navigators and saves preferences.
func (a *App) Close() error {
	a.Energy.Stop()
	for _, sub := range a.subs {
		sub.Unsubscribe()
	}
	a.Animator.Complete()
	a.Popups.Reset()
	a.Views.Reset()

	var errs []error
	if err := a.Prefs.Save(); err != nil {
		errs = append(errs, NewInfrastructureError("save_prefs", err))
	}
	internal.CloseLogger()
	return errors.Join(errs...)
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// SetLogOutput replaces stdout as the log destination when no log path is set.
// Call before Init().
func SetLogOutput(w io.Writer) {
	internal.SetLogOutput(w)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
