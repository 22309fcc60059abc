package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"skinrisk/internal/config"
	"skinrisk/internal/container"
	"skinrisk/internal/opsserver"
	"skinrisk/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	logger := appContainer.Logger.With("Main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = appContainer.LoadClassifier(loadCtx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load classifier: %v", err)
	}
	service := appContainer.BuildService()

	server := ui.NewServer(ui.Config{
		Port:        appConfig.Server.Port,
		GinMode:     appConfig.Server.GinMode,
		StrictInput: appConfig.Server.StrictInput,
	}, service, appContainer.Logger)

	var ops *opsserver.Server
	if appConfig.Ops.Enabled {
		ops = opsserver.New(appConfig.Ops.Port, appContainer.Metrics.Handler(), service.Ready, appContainer.Logger)
		go func() {
			if err := ops.Start(); err != nil {
				logger.Error("operations server failed: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("API server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown: %v", err)
	}
	if ops != nil {
		if err := ops.Shutdown(shutdownCtx); err != nil {
			logger.Error("operations server shutdown: %v", err)
		}
	}
	if err := appContainer.Shutdown(shutdownCtx); err != nil {
		logger.Error("container shutdown: %v", err)
	}
}
