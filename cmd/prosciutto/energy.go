package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto"
)

func newEnergyCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Show or change the stored energy",
	}

	withApp := func(run func(cmd *cobra.Command, app *prosciutto.App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			app, err := flags.openApp(cmd, cfg)
			if err != nil {
				return err
			}
			runErr := run(cmd, app, args)
			if err := app.Close(); err != nil && runErr == nil {
				return err
			}
			return runErr
		}
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Print current energy and time to the next point",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *prosciutto.App, args []string) error {
			printEnergy(cmd.OutOrStdout(), app)
			return nil
		}),
	}

	use := &cobra.Command{
		Use:   "use N",
		Short: "Spend N energy",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *prosciutto.App, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid amount: %s", args[0])
			}
			if err := app.Energy.Use(n); err != nil {
				return err
			}
			printEnergy(cmd.OutOrStdout(), app)
			return nil
		}),
	}

	refill := &cobra.Command{
		Use:   "refill",
		Short: "Fill energy to the maximum",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *prosciutto.App, args []string) error {
			if missing := app.Energy.Max() - app.Energy.Current(); missing > 0 {
				app.Energy.Add(missing)
			}
			printEnergy(cmd.OutOrStdout(), app)
			return nil
		}),
	}

	cmd.AddCommand(status, use, refill)
	return cmd
}

func printEnergy(w io.Writer, app *prosciutto.App) {
	fmt.Fprintf(w, "Energy: %d/%d\n", app.Energy.Current(), app.Energy.Max())
	if app.Energy.IsFull() {
		fmt.Fprintln(w, app.Language.Localize("energy_full", nil))
		return
	}
	left := app.Energy.Until(time.Now()).Round(time.Second)
	fmt.Fprintln(w, app.Language.Localize("energy_next", map[string]any{"Time": left.String()}))
}
