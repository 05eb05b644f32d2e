package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "log.path = %q\n", cfg.Log.Path)
			fmt.Fprintf(w, "log.level = %q\n", cfg.Log.Level)
			fmt.Fprintf(w, "prefs.path = %q\n", cfg.Prefs.Path)
			fmt.Fprintf(w, "energy.max = %d\n", cfg.Energy.Max)
			fmt.Fprintf(w, "energy.interval = %q\n", cfg.Energy.Interval)
			fmt.Fprintf(w, "energy.initial = %d\n", cfg.Energy.Initial)
			fmt.Fprintf(w, "language.default = %q\n", cfg.Language.Default)
			fmt.Fprintf(w, "animation.show_duration = %q\n", cfg.Animation.ShowDuration)
			fmt.Fprintf(w, "animation.hide_duration = %q\n", cfg.Animation.HideDuration)
			fmt.Fprintf(w, "animation.ease = %q\n", cfg.Animation.Ease)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the resolved configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if path == "" {
				path = filepath.Join(config.DefaultDir(), "config.toml")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}
