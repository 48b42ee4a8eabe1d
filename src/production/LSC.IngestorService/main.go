package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	container "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Container"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.IngestorService/client"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.IngestorService/ingestor"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewIngestorContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger().WithService("ingestor-service")
	logger.Info("Starting MQTT Ingestor Service")

	// Get configuration
	config := ctr.GetConfig()

	// Create API client
	apiClient := client.NewAPIClient(config.ApiServiceURL, config.ApiRequestTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create and start MQTT ingestor
	ing := ingestor.New(config, apiClient, logger)
	if err := ing.Start(ctx); err != nil {
		logger.FatalWithError(err, "Failed to start MQTT ingestor")
	}
	defer ing.Stop()

	// Start health check server
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         ":" + config.Server.Port,
		Handler:      ingestor.NewHealthRouter(ing, apiClient),
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}
	go func() {
		logger.Info("Health server starting on port " + config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start health server")
		}
	}()

	logger.Info("MQTT ingestor running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.ErrorWithError(err, "Health server forced to shutdown")
	}
}
