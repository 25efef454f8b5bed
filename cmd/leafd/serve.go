package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"leafd/internal/classifier"
	"leafd/internal/config"
	"leafd/internal/httpapi"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the model and serve the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), ln, cfg, log, nil)
		},
	}
}

// serve runs the API on ln until ctx is canceled, then drains in-flight
// requests for up to cfg.ShutdownSec seconds.
func serve(ctx context.Context, ln net.Listener, cfg config.Config, log zerolog.Logger, open classifier.OpenFunc) error {
	clf := startClassifier(cfg, log, open)
	defer shutdownRuntime(log)
	defer clf.Close()

	// Base context canceled on shutdown so handlers stop early.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	mux := httpapi.NewMux(clf, httpapi.Options{
		Logger:         &log,
		LogLevel:       httpapi.ParseLogLevel(cfg.LogLevel),
		StrictStatus:   cfg.StrictStatus,
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORS: httpapi.CORSOptions{
			Enabled:        cfg.CORSEnabled,
			AllowedOrigins: cfg.CORSOrigins,
		},
		BaseContext: baseCtx,
	})
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", ln.Addr().String()).
			Bool("ready", clf.Ready()).
			Bool("strict_status", cfg.StrictStatus).
			Msg("leafd listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	cancelBase()
	timeout := time.Duration(cfg.ShutdownSec) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultShutdownSec * time.Second
	}
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return <-errCh
}
