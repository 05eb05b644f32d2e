package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/router"
)

const (
	kindTitle    router.Kind = "title"
	kindLobby    router.Kind = "lobby"
	kindShop     router.Kind = "shop"
	kindSettings router.Kind = "settings"
)

func newDemoCmd(flags *globalFlags) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through view and popup navigation",
		Long: `Registers a title, lobby and shop view plus a settings popup, then
navigates forward and back, printing every screen change. Preferences are kept
in memory so the demo never touches stored player data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			cfg.Prefs.Path = ""

			app, err := flags.openApp(cmd, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if lang != "" {
				if _, err := app.Language.SetString(lang); err != nil {
					return err
				}
			}
			return runDemo(cmd.OutOrStdout(), app)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language for demo text (en, ko, ja)")
	return cmd
}

func runDemo(w io.Writer, app *prosciutto.App) error {
	say := func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	for _, kind := range []router.Kind{kindTitle, kindLobby, kindShop} {
		app.Views.Register(app.NewPanel(kind))
	}
	app.Popups.Register(app.NewPanel(kindSettings))

	viewSub := app.Views.Changed().Subscribe(func(s router.Screen) { say("views: %s", kindOf(s)) })
	defer viewSub.Unsubscribe()
	popupSub := app.Popups.Changed().Subscribe(func(s router.Screen) { say("popups: %s", kindOf(s)) })
	defer popupSub.Unsubscribe()

	steps := []struct {
		label string
		run   func() error
	}{
		{"show title", func() error { return app.Views.ShowKind(kindTitle, true) }},
		{app.Language.Localize("button_play", nil), func() error { return app.Views.ShowKind(kindLobby, true) }},
		{"open shop", func() error { return app.Views.ShowKind(kindShop, true) }},
		{"open settings", func() error { return app.Popups.ShowKind(kindSettings, true) }},
		{app.Language.Localize("button_close", nil), func() error { app.Popups.Close(); return nil }},
		{app.Language.Localize("button_back", nil), app.Views.ShowLast},
		{app.Language.Localize("button_back", nil), app.Views.ShowLast},
		{app.Language.Localize("button_back", nil), app.Views.ShowLast},
	}

	for _, step := range steps {
		say("> %s", step.label)
		err := step.run()
		app.Update(time.Second)
		switch {
		case err == nil:
		case prosciutto.IsNavigationNoop(err):
			say("  (%v)", err)
		default:
			return err
		}
	}

	if err := app.Energy.Use(5); err != nil {
		return err
	}
	say("%s", app.Language.LocalizeCount("energy_count", app.Energy.Current(), nil))
	return nil
}

func kindOf(s router.Screen) string {
	if s == nil {
		return "none"
	}
	return string(s.Kind())
}
