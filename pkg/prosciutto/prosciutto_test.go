package prosciutto

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/auth"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/config"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/energy"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/router"
)

type offlineProvider struct{}

func (offlineProvider) SignInAnonymously(context.Context) (auth.Identity, error) {
	return auth.Identity{}, errors.New("offline")
}

func (offlineProvider) SignInWithPassword(context.Context, string, string) (auth.Identity, error) {
	return auth.Identity{}, errors.New("offline")
}

func (offlineProvider) SignOut(context.Context) error { return nil }

func testOptions() Options {
	return Options{
		Logger:       slog.New(slog.DiscardHandler),
		Energy:       energy.Config{Max: 5, Interval: time.Minute},
		ShowDuration: 100 * time.Millisecond,
		HideDuration: 100 * time.Millisecond,
		Ease:         "linear",
	}
}

func newTestApp(t *testing.T, options Options) *App {
	t.Helper()
	app, err := Init(options)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return app
}

func TestInitInMemory(t *testing.T) {
	app := newTestApp(t, testOptions())
	defer app.Close()

	if app.Views == app.Popups {
		t.Fatal("views and popups must be separate navigators")
	}
	if app.Energy.Max() != 5 || app.Energy.Current() != 5 {
		t.Errorf("energy = %d/%d, want 5/5", app.Energy.Current(), app.Energy.Max())
	}
	if app.Language.Current() != language.English {
		t.Errorf("language = %v, want en", app.Language.Current())
	}
	if app.Prefs.Path() != "" {
		t.Errorf("prefs path = %q, want in-memory", app.Prefs.Path())
	}
}

func TestPanelsFadeWithAppAnimator(t *testing.T) {
	app := newTestApp(t, testOptions())
	defer app.Close()

	title := app.NewPanel("title")
	lobby := app.NewPanel("lobby")
	app.Views.Register(title, lobby)

	if err := app.Views.Show(title, true); err != nil {
		t.Fatal(err)
	}
	app.Update(50 * time.Millisecond)
	if a := title.Alpha(); a < 0.49 || a > 0.51 {
		t.Errorf("alpha after half the fade = %v, want 0.5", a)
	}
	app.Update(50 * time.Millisecond)
	if title.Alpha() != 1 {
		t.Errorf("alpha after full fade = %v, want 1", title.Alpha())
	}

	if err := app.Views.ShowKind("lobby", true); err != nil {
		t.Fatal(err)
	}
	app.Update(time.Second)
	if title.Visible() || title.Alpha() != 0 {
		t.Errorf("title should be hidden, visible=%v alpha=%v", title.Visible(), title.Alpha())
	}
	if err := app.Views.ShowLast(); err != nil {
		t.Fatal(err)
	}
	if app.Views.Current() != router.Screen(title) {
		t.Error("ShowLast should return to title")
	}
}

func TestLanguageChangeRefreshesCurrentScreens(t *testing.T) {
	app := newTestApp(t, testOptions())
	defer app.Close()

	view := app.NewPanel("title")
	popup := app.NewPanel("settings")
	var viewRefreshes, popupRefreshes int
	view.OnRefresh = func() { viewRefreshes++ }
	popup.OnRefresh = func() { popupRefreshes++ }
	app.Views.Register(view)
	app.Popups.Register(popup)
	_ = app.Views.Show(view, true)
	_ = app.Popups.Show(popup, true)
	viewRefreshes, popupRefreshes = 0, 0

	app.Language.Set(language.Korean)
	if viewRefreshes != 1 || popupRefreshes != 1 {
		t.Errorf("refreshes = %d/%d, want 1/1", viewRefreshes, popupRefreshes)
	}
}

func TestAuthFailureShowsNetworkError(t *testing.T) {
	options := testOptions()
	options.AuthProvider = offlineProvider{}
	app := newTestApp(t, options)
	defer app.Close()

	netErr := app.NewPanel(KindNetworkError)
	app.Popups.Register(netErr)
	app.Auth.SetPrivacyAccepted(true)

	if err := app.Auth.SignInAnonymously(context.Background()); err == nil {
		t.Fatal("expected sign-in failure")
	}
	if app.Popups.Current() != router.Screen(netErr) {
		t.Error("network error popup should be showing")
	}
	if app.Views.Current() != nil {
		t.Error("views should be untouched")
	}
}

func TestAuthFailureWithoutPopupIsQuiet(t *testing.T) {
	options := testOptions()
	options.AuthProvider = offlineProvider{}
	app := newTestApp(t, options)
	defer app.Close()

	app.Auth.SetPrivacyAccepted(true)
	_ = app.Auth.SignInAnonymously(context.Background())
	if app.Popups.Current() != nil {
		t.Error("nothing should show without a registered network error popup")
	}
}

func TestCloseSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	options := testOptions()
	options.PrefsPath = path

	app := newTestApp(t, options)
	if err := app.Energy.Use(2); err != nil {
		t.Fatal(err)
	}
	app.Settings.SetVibration(false)
	if err := app.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err := prefs.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := store.GetInt(constants.PrefEnergy, -1); got != 3 {
		t.Errorf("stored energy = %d, want 3", got)
	}
	if store.GetBool(constants.PrefVibration, true) {
		t.Error("vibration setting should persist as off")
	}
}

func TestInitBadPrefsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("not = [toml"), 0o600); err != nil {
		t.Fatal(err)
	}
	options := testOptions()
	options.PrefsPath = path

	_, err := Init(options)
	if !IsInfrastructureError(err) {
		t.Fatalf("err = %v, want infrastructure error", err)
	}
}

func TestInitFallsBackOnBadLanguageAndEase(t *testing.T) {
	options := testOptions()
	options.DefaultLanguage = "!!"
	options.Ease = "wobble"
	app := newTestApp(t, options)
	defer app.Close()

	if app.Language.Current() != language.English {
		t.Errorf("language = %v, want en", app.Language.Current())
	}
	panel := app.NewPanel("title")
	app.Views.Register(panel)
	_ = app.Views.Show(panel, true)
	app.Update(time.Second)
	if panel.Alpha() != 1 {
		t.Errorf("alpha = %v, want 1", panel.Alpha())
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	options := OptionsFromConfig(cfg)
	if options.Energy.Max != cfg.Energy.Max || options.Energy.Interval != cfg.Energy.Interval {
		t.Errorf("energy = %+v", options.Energy)
	}
	if options.Ease != cfg.Animation.Ease || options.DefaultLanguage != cfg.Language.Default {
		t.Errorf("options = %+v", options)
	}
	if options.PrefsPath != cfg.Prefs.Path {
		t.Errorf("PrefsPath = %q", options.PrefsPath)
	}
}

func TestIsNavigationNoop(t *testing.T) {
	app := newTestApp(t, testOptions())
	defer app.Close()

	if err := app.Views.ShowLast(); !IsNavigationNoop(err) {
		t.Errorf("ShowLast on empty history: %v", err)
	}
	if err := app.Views.Show(app.NewPanel("ghost"), true); !IsNavigationNoop(err) {
		t.Errorf("Show of unregistered screen: %v", err)
	}
	if IsNavigationNoop(nil) || IsNavigationNoop(errors.New("boom")) {
		t.Error("only navigation errors are no-ops")
	}
}
