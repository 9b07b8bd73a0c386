// @title Farm Livestock Records API
// @version 1.0
// @description Registro de animales, tratamientos, servicios y pendientes sanitarios del rodeo.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "farm-livestock-records/internal/adapters/storage/postgres"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/domain/reminders"
	"farm-livestock-records/internal/platform/config"
	"farm-livestock-records/internal/platform/logger"
	"farm-livestock-records/internal/router"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}
	log := cfg.Logger()

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	engine, err := lifecycle.NewEngine(policy, time.Now)
	if err != nil {
		return err
	}

	opts := router.Options{Engine: engine, Logger: log}
	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			return err
		}
		opts.DB = db
		log.Info("using postgres storage", nil)
	} else {
		log.Info("using in-memory storage", nil) // modo dev
	}

	app := router.Build(opts)

	if cfg.Reminders.Enabled {
		sweeper, err := reminders.NewSweeper(app.Reminders, log, cfg.Reminders.Schedule)
		if err != nil {
			return err
		}
		if err := sweeper.Start(ctx); err != nil {
			return err
		}
		defer sweeper.Stop()
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      app.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTPAddr, "policy": policy.Version})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down", nil)
	return srv.Shutdown(shutdownCtx)
}
