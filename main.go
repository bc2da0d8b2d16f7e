package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-venues/internal/app/domain/venues"
	"github.com/FACorreiaa/go-venues/internal/pkg/config"
	"github.com/FACorreiaa/go-venues/internal/server"
	"github.com/FACorreiaa/go-venues/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := logger.Init(level, zap.String("service", cfg.Observability.ServiceName)); err != nil {
		return err
	}
	defer logger.Log.Sync()

	m, otelShutdown, err := server.InitObservability(cfg.Observability, logger.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv := server.New(cfg, m, logger.Log)

	router := server.SetupRouter(srv.Service(), venues.Defaults{
		Category: cfg.Places.DefaultCategory,
		Keyword:  cfg.Places.DefaultKeyword,
	}, cfg.Observability.ServiceName, m, logger.Log)
	srv.SetRouter(router)

	server.StartPprofServer(cfg.Observability.PprofAddr, logger.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, srv.HTTPServer(), logger.Log); err != nil {
		logger.Log.Error("Server error", zap.Error(err))
		return err
	}

	logger.Log.Info("Graceful shutdown complete")
	return nil
}
