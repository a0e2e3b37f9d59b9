package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/julianknutsen/mapping-tools/internal/api"
	"github.com/julianknutsen/mapping-tools/internal/logging"
	"github.com/julianknutsen/mapping-tools/internal/style"
	"github.com/julianknutsen/mapping-tools/web"
	"github.com/spf13/cobra"
)

func newServeCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI server",
		Long: `Serve the hitsound copier web UI and its JSON API.

Beatmaps travel in request bodies; the server never touches the local
filesystem. Set SENTRY_DSN to report errors and request traces to Sentry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, stdout, stderr)
		},
	}
	cmd.Flags().Int("port", 8999, "Port to listen on")
	cmd.Flags().Bool("dev", false, "Enable CORS for development (Vite proxy)")
	cmd.Flags().Float64("rate-limit", api.DefaultRateLimitConfig().RequestsPerSecond, "Requests per second per client (0 disables)")
	cmd.Flags().Bool("trust-proxy", false, "Identify clients by X-Forwarded-For (only behind a reverse proxy)")
	return cmd
}

func runServe(cmd *cobra.Command, stdout, stderr io.Writer) error {
	port, _ := cmd.Flags().GetInt("port")
	devMode, _ := cmd.Flags().GetBool("dev")
	rps, _ := cmd.Flags().GetFloat64("rate-limit")
	trustProxy, _ := cmd.Flags().GetBool("trust-proxy")
	verbose, _ := cmd.Flags().GetBool("verbose")
	log := logging.ForServer(stderr, verbose)
	defer log.Sync() //nolint:errcheck // stderr sync errors are not actionable

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sentryEnabled := false
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			Environment:      envOr("SENTRY_ENVIRONMENT", "production"),
			Release:          envOr("APP_VERSION", version),
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warnw("sentry initialization failed", "error", err)
		} else {
			log.Infow("sentry initialized", "environment", envOr("SENTRY_ENVIRONMENT", "production"))
			sentryEnabled = true
		}
	}

	limit := api.DefaultRateLimitConfig()
	limit.RequestsPerSecond = rps
	limit.TrustProxy = trustProxy
	server := api.New(api.Options{
		Logger:    log,
		Leniency:  cfg.Leniency,
		Version:   version,
		RateLimit: limit,
		Dev:       devMode,
	})
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.SPAHandler(server, web.Assets),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		fmt.Fprintf(stdout, "Hitsound copier listening on %s\n", style.Info.Render("http://localhost"+addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	case <-ctx.Done():
		log.Infow("shutting down server", "timeout", "15s")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Errorw("server shutdown error", "error", shutdownErr)
		}
	}

	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("serving on %s: %w", addr, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
