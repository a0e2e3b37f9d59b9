package main

import (
	"fmt"
	"io"
	"os"

	"github.com/julianknutsen/mapping-tools/internal/config"
	"github.com/julianknutsen/mapping-tools/internal/logging"
	"github.com/julianknutsen/mapping-tools/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(_, _ io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [mapset-dir]",
		Short: "Pick source and target difficulties interactively",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, args)
		},
	}
	cmd.Flags().Bool("backup", false, "Keep a .bak copy of each target (default from config)")
	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	info, err := os.Stat(dir)
	if err != nil {
		return hintWrap(err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := tui.Run(tuiConfig(cmd, dir, cfg)); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiConfig builds the TUI settings. Logging is discarded because the TUI
// owns the terminal while it runs.
func tuiConfig(cmd *cobra.Command, dir string, cfg *config.Config) tui.Config {
	return tui.Config{
		Dir:      dir,
		Leniency: cfg.Leniency,
		Backup:   backupFlag(cmd, cfg),
		Logger:   logging.Nop(),
	}
}
