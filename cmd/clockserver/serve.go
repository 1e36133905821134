package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcrobe/nojs-clock/internal/server"
	"github.com/vcrobe/nojs-clock/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the page, live sessions, health and metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := zap.L()
			defer func() { _ = logger.Sync() }()

			logger.Info("Starting clockserver", zap.Any("build", version.Info()))
			srv := server.NewServer(cfg, server.WithLogger(logger))

			serverErrors := make(chan error, 1)
			go func() {
				serverErrors <- srv.Start()
			}()

			// Wait for interrupt signal or server error
			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				return err
			case sig := <-shutdown:
				logger.Info("Received shutdown signal, starting graceful shutdown", zap.String("signal", sig.String()))
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown failed", zap.Error(err))
				return err
			}
			logger.Info("Server stopped")
			return nil
		},
	}
}
