package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

func newPrefsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and edit stored player preferences",
	}

	open := func() (*prefs.Store, error) {
		cfg, err := flags.loadConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Prefs.Path == "" {
			return nil, fmt.Errorf("no preference file configured")
		}
		store, err := prefs.Open(cfg.Prefs.Path)
		if err != nil {
			return nil, fmt.Errorf("error opening preferences: %w", err)
		}
		return store, nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print every stored key and value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			for _, key := range store.Keys() {
				v, _ := store.Value(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, formatValue(v))
			}
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			v, ok := store.Value(args[0])
			if !ok {
				return fmt.Errorf("no such key: %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			return nil
		},
	}

	var asString bool
	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a value; integers are stored as numbers unless --string is given",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			key, raw := args[0], args[1]
			if n, err := strconv.Atoi(raw); err == nil && !asString {
				store.SetInt(key, n)
			} else {
				store.SetString(key, raw)
			}
			return store.Save()
		},
	}
	set.Flags().BoolVar(&asString, "string", false, "Store the value as a string")

	del := &cobra.Command{
		Use:   "delete KEY",
		Short: "Remove a stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			store.Delete(args[0])
			return store.Save()
		},
	}

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Remove every stored value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all preferences without --yes")
			}
			store, err := open()
			if err != nil {
				return err
			}
			store.DeleteAll()
			return store.Save()
		},
	}
	reset.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the safety check")

	cmd.AddCommand(list, get, set, del, reset)
	return cmd
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
