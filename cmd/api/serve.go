package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medication-tracker/internal/adapters/auth/jwtlocal"
	"medication-tracker/internal/adapters/auth/remote"
	pg "medication-tracker/internal/adapters/storage/postgres"
	"medication-tracker/internal/config"
	"medication-tracker/internal/domain/dashboard"
	"medication-tracker/internal/platform/logger"
	"medication-tracker/internal/ports/auth"
	"medication-tracker/internal/router"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var noSweep bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the alert sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(!noSweep)
		},
	}
	cmd.Flags().BoolVar(&noSweep, "no-sweep", false, "Do not schedule the alert sweep")
	return cmd
}

func runServer(sweep bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if verifier == nil {
		log.Warn("dev auth mode: requests are trusted via X-Debug-User-ID", nil)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		log.Info("connected to database", nil)
	} else {
		log.Warn("DB_DSN not set: using in-memory storage", nil)
	}

	opts := router.Options{
		AuthVerifier:  verifier,
		DB:            db,
		SettingsFile:  cfg.SettingsFile,
		Location:      loc,
		UpcomingLimit: cfg.UpcomingLimit,
		Logger:        log,
	}
	svcs, err := router.NewServices(opts)
	if err != nil {
		return err
	}

	if sweep {
		sweeper := dashboard.NewSweeper(svcs.Dashboard, log)
		if err := sweeper.Start(cfg.AlertSweepCron); err != nil {
			return err
		}
		defer sweeper.Stop()
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts, svcs),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "timezone": loc.String()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("shutting down server", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}

// newVerifier devuelve nil en modo dev.
func newVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		v, err := jwtlocal.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return nil, err
		}
		return v, nil
	case config.AuthModeRemote:
		v, err := remote.NewVerifier(remote.Config{
			BaseURL: cfg.AuthRemoteURL,
			APIKey:  cfg.AuthRemoteAPIKey,
		})
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, nil
	}
}
