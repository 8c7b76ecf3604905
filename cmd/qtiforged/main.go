package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	api "github.com/qtiforge/qtiforge/internal/api/http"
	"github.com/qtiforge/qtiforge/internal/auth"
	"github.com/qtiforge/qtiforge/internal/bank"
	"github.com/qtiforge/qtiforge/internal/config"
	"github.com/qtiforge/qtiforge/internal/db"
	"github.com/qtiforge/qtiforge/internal/logging"
	"github.com/qtiforge/qtiforge/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.Setup(cfg.Name, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DB.Driver), cfg.DB.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer dbh.Close()

	authSvc := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err := auth.EnsureAdmin(ctx, dbh, cfg.Auth.AdminUser, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal().Err(err).Msg("bootstrap admin")
	}

	blobs, err := storage.NewFSStore(cfg.Packages.BasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open package store")
	}

	handlers := &api.Handlers{
		Store: bank.NewSQLStore(dbh),
		Blobs: blobs,
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(cfg, dbh, authSvc, handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
