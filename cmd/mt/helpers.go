package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/julianknutsen/mapping-tools/internal/config"
	"github.com/julianknutsen/mapping-tools/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig reads the stored defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewStore().Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// cliLogger returns the stderr logger, at debug level under --verbose.
func cliLogger(cmd *cobra.Command, stderr io.Writer) *zap.SugaredLogger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.ForCLI(stderr, verbose)
}

// backupFlag resolves --backup against the stored default.
func backupFlag(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Changed("backup") {
		b, _ := cmd.Flags().GetBool("backup")
		return b
	}
	return cfg.Backup
}

// plural returns "n word" with an s when n != 1.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func base(path string) string { return filepath.Base(path) }

// interruptContext is cancelled on SIGINT or SIGTERM so long-running commands
// can stop between steps.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
