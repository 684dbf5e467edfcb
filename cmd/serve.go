package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peter890821/esg-eval-dashboard/internal/loader"
	"github.com/peter890821/esg-eval-dashboard/internal/model"
	"github.com/peter890821/esg-eval-dashboard/internal/server"
	"github.com/peter890821/esg-eval-dashboard/internal/store"
)

var (
	servePort     int
	serveSnapshot bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ld := loader.New(loader.Options{
			PrimaryURL:  cfg.Dataset.PrimaryURL,
			FallbackURL: cfg.Dataset.FallbackURL,
			Timeout:     time.Duration(cfg.Dataset.TimeoutSecs) * time.Second,
		})

		records, source, loadErr := ld.Load(ctx)

		if serveSnapshot {
			records, loadErr = reconcileSnapshot(ctx, records, source, loadErr)
		}

		if loadErr != nil {
			// The server still starts: the failure surfaces on every
			// API route instead of a dead socket.
			zap.L().Error("dataset unavailable", zap.Error(loadErr))
		} else {
			zap.L().Info("dataset loaded",
				zap.Int("records", len(records)),
				zap.String("source", source),
			)
		}

		srv := server.New(records, loadErr, server.Options{
			AllowedOrigins:   cfg.Server.AllowedOrigins,
			SearchRatePerSec: cfg.Server.SearchRatePerSec,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			httpSrv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// reconcileSnapshot persists a fresh dataset, or falls back to the
// latest stored snapshot when both remote sources failed.
func reconcileSnapshot(ctx context.Context, records []model.Record, source string, loadErr error) ([]model.Record, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		zap.L().Warn("snapshot store unavailable", zap.Error(err))
		return records, loadErr
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("snapshot migrate failed", zap.Error(err))
		return records, loadErr
	}

	if loadErr == nil {
		if snap, err := st.SaveSnapshot(ctx, source, records); err != nil {
			zap.L().Warn("snapshot save failed", zap.Error(err))
		} else {
			zap.L().Info("snapshot saved",
				zap.String("id", snap.ID),
				zap.Int("records", snap.Count),
			)
		}
		return records, nil
	}

	snap, err := st.LatestSnapshot(ctx)
	if err != nil {
		zap.L().Warn("no snapshot to fall back to", zap.Error(err))
		return records, loadErr
	}

	zap.L().Info("serving stored snapshot",
		zap.String("id", snap.ID),
		zap.Time("createdAt", snap.CreatedAt),
		zap.Int("records", snap.Count),
	)
	return snap.Records, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveSnapshot, "snapshot", false, "persist loaded datasets and fall back to the latest snapshot when loading fails")
	rootCmd.AddCommand(serveCmd)
}
