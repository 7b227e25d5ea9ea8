package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"logomotion/internal/gateway"
	"logomotion/internal/http/handlers"
	httpapi "logomotion/internal/http/httpapi"
	"logomotion/internal/infra"
	"logomotion/internal/infra/credentials"
	"logomotion/internal/orchestrator"
	"logomotion/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize artifact storage")
	}

	creds := credentials.NewStore(logger)
	gen := gateway.NewGenAI(creds, cfg.ImageModel, cfg.VideoModel, cfg.PollInterval, logger)
	orch := orchestrator.New(gen, creds, store, cfg.StatusInterval, &http.Client{Timeout: cfg.FetchTimeout}, logger)

	app := handlers.NewApp(orch, creds, store, logger)
	router := httpapi.NewRouter(app, logger, cfg.AllowedOrigins)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
