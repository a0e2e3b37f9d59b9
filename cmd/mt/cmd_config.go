package main

import (
	"fmt"
	"io"

	"github.com/julianknutsen/mapping-tools/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stored defaults",
		Long: `Get and set the defaults the other commands fall back to.

Settings are stored in ` + "`$XDG_CONFIG_HOME/mapping-tools/config.json`" + `.`,
	}
	cmd.AddCommand(
		newConfigGetCmd(stdout, stderr),
		newConfigSetCmd(stdout, stderr),
		newConfigListCmd(stdout),
	)
	return cmd
}

func newConfigGetCmd(stdout, _ io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Print a setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return hintWrap(err)
			}
			fmt.Fprintln(stdout, v)
			return nil
		},
	}
}

func newConfigSetCmd(stdout, _ io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Change a setting",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(_ *cobra.Command, args []string) error {
			store := config.NewStore()
			cfg, err := store.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return hintWrap(err)
			}
			if err := store.Save(cfg); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			v, _ := cfg.Get(args[0])
			fmt.Fprintf(stdout, "%s = %s\n", args[0], v)
			return nil
		},
	}
}

func newConfigListCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every setting",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, k := range config.Keys() {
				v, _ := cfg.Get(k)
				fmt.Fprintf(stdout, "%s = %s\n", k, v)
			}
			return nil
		},
	}
}
