package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/config"
)

type globalFlags struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "prosciutto",
		Short: "Inspect and exercise the prosciutto UI core",
		Long: `prosciutto drives the navigation, preference, energy and language
managers outside a game engine. Use it to walk through a navigation demo or
to inspect and edit the stored player preferences.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default is config.toml in the user config dir)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newDemoCmd(flags),
		newPrefsCmd(flags),
		newEnergyCmd(flags),
		newConfigCmd(flags),
	)
	return root
}

func (f *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("error loading config: %w", err)
	}
	if f.debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// openApp initialises every manager from config. Without a log file, logs go
// to stderr so command output stays clean.
func (f *globalFlags) openApp(cmd *cobra.Command, cfg config.Config) (*prosciutto.App, error) {
	options := prosciutto.OptionsFromConfig(cfg)
	if cfg.Log.Path == "" {
		options.Logger = stderrLogger(cmd.ErrOrStderr(), f.debug)
	}
	app, err := prosciutto.Init(options)
	if err != nil {
		return nil, fmt.Errorf("error initializing: %w", err)
	}
	return app, nil
}

func stderrLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
