package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/registry"
	"github.com/soldes-dev/soldes/internal/server"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.env.HTTPAddr
			}
			return runServe(cmd.Context(), opts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $SOLDES_HTTP_ADDR or :8080)")

	return cmd
}

func runServe(ctx context.Context, opts *globalOptions, addr string) error {
	cfg, err := registrySettings(opts)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Logger:         opts.logger,
		Registry:       registry.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout),
		MaxUploadBytes: opts.env.MaxUploadMB << 20,
		RateLimit:      opts.env.RateLimit,
	})
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		opts.logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
