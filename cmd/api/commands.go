package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet-registry/internal/platform/config"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	var configPath string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Crea el schema en postgres o sqlite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), configPath)
		},
	}

	// Sin subcomando => serve.
	root := &cobra.Command{
		Use:          "pet-registry",
		Short:        "API de registro de mascotas",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "archivo YAML de configuración (opcional)")
	root.AddCommand(serve, migrate)
	return root
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LoggerOptions())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Storage, cfg.Storage.AutoMigrate)
	if err != nil {
		log.Error("open store", map[string]any{"driver": cfg.Storage.Driver, "error": err})
		return err
	}
	defer st.Close()

	h := router.NewRouter(router.Options{
		Logger:      log,
		DB:          st.DB,
		Dialect:     st.Dialect,
		PageSize:    cfg.Pagination.PageSize,
		UpdateMatch: cfg.UpdateMatch(),
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":      cfg.HTTP.Addr,
			"driver":    cfg.Storage.Driver,
			"page_size": cfg.Pagination.PageSize,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LoggerOptions())
	defer func() { _ = log.Sync() }()

	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn("memory driver has no schema, nothing to migrate", nil)
		return nil
	}

	st, err := openStore(ctx, cfg.Storage, true)
	if err != nil {
		return err
	}
	defer st.Close()

	log.Info("schema up to date", map[string]any{"driver": cfg.Storage.Driver})
	return nil
}
