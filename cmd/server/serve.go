package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-dashboard/internal/auth"
	"github.com/diewo77/go-dashboard/internal/cache"
	"github.com/diewo77/go-dashboard/internal/db"
	"github.com/diewo77/go-dashboard/internal/logger"
	"github.com/diewo77/go-dashboard/internal/metrics"
)

const viewCacheTTL = 5 * time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	conn, err := db.Connect(cfg.Database.DSN, cfg.App.Env == "development")
	if err != nil {
		return err
	}
	defer db.Close(conn)

	if cfg.App.Migrations {
		if err := db.RunSQLMigrations(cfg.Database.DSN); err != nil {
			return err
		}
		log.Info().Msg("SQL migrations completed")
	} else {
		if err := db.Migrate(conn); err != nil {
			return err
		}
	}
	if cfg.App.Seed {
		if err := db.Seed(conn); err != nil {
			return err
		}
		log.Info().Msg("fixture data seeded")
	}

	var viewCache cache.ViewCache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedis(cfg.Redis.URL, viewCacheTTL)
		if err != nil {
			return err
		}
		defer redisCache.Close()
		viewCache = redisCache
		log.Info().Msg("using redis view cache")
	} else {
		viewCache = cache.NewMemory(viewCacheTTL)
	}

	app := NewApp(conn, viewCache, metrics.New(), auth.NewSessions(cfg.Session.Secret), logger.WithComponent("server"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}
