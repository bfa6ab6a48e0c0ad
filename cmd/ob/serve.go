package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/onboard/internal/config"
	"github.com/groblegark/onboard/internal/events"
	"github.com/groblegark/onboard/internal/export"
	"github.com/groblegark/onboard/internal/server"
	"github.com/groblegark/onboard/internal/store"
	"github.com/groblegark/onboard/internal/store/memory"
	"github.com/groblegark/onboard/internal/store/postgres"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the onboard HTTP server",
	// Override PersistentPreRunE so we don't create an API client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Open the store. A failed Postgres connection or schema migration
		// is fatal; serving without a working schema would corrupt nothing
		// but help nobody.
		var st store.Store
		switch cfg.Backend {
		case config.BackendPostgres:
			st, err = postgres.New(cfg.DSN())
			if err != nil {
				return err
			}
			logger.Info("using postgres backend")
		default:
			st = memory.New()
			if cfg.DatabaseURL == "" {
				logger.Warn("ONBOARD_DATABASE_URL not set, using in-memory backend; data is lost on restart")
			} else {
				logger.Info("using memory backend")
			}
		}

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				st.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (ONBOARD_NATS_URL not set)")
		}

		var opts []server.Option
		if cfg.ExportS3Bucket != "" {
			dest, err := export.NewS3Destination(
				context.Background(),
				cfg.ExportS3Bucket,
				cfg.ExportS3Key,
				cfg.ExportS3Region,
				cfg.ExportS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 export destination", "err", err)
			} else {
				opts = append(opts, server.WithExporter(dest))
				logger.Info("S3 export destination enabled", "bucket", cfg.ExportS3Bucket, "key", cfg.ExportS3Key)
			}
		}

		srv := server.New(st, publisher, opts...)
		httpServer := &http.Server{
			Addr: cfg.HTTPAddr(),
			Handler: srv.NewHTTPHandler(server.HandlerConfig{
				StaticDir:   cfg.StaticDir,
				AdminRoutes: cfg.AdminRoutes,
				AuthToken:   cfg.AuthToken,
			}),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr(), "static_dir", cfg.StaticDir)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		if cfg.AdminRoutes {
			logger.Info("admin routes enabled", "authenticated", cfg.AuthToken != "")
		}

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := st.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
