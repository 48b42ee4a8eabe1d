package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/controllers"
	authService "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/auth"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/dashboard"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/ingest"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/ratelimit"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/middleware"
	container "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Container"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewApiContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger().WithService("api-service")
	logger.Info("Starting API Service")

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ctr.InitializeDatabase(ctx); err != nil {
		logger.FatalWithError(err, "Failed to initialize database")
	}

	// Create repositories
	repos, err := ctr.GetRepositories()
	if err != nil {
		logger.FatalWithError(err, "Failed to get repositories")
	}

	// Get configuration
	config := ctr.GetConfig()

	// Per-device reading throttle, nil when READING_RATE_LIMIT is 0
	limiter := ratelimit.FromConfig(config.RateLimit)
	if limiter == nil {
		logger.Info("Reading rate limiting disabled")
	}

	// Initialize services
	aggregator := dashboard.NewAggregator(repos.Devices, repos.Readings, config.Dashboard, logger)
	ingestService := ingest.NewService(repos.Devices, repos.Readings, limiter, logger)
	authServiceInstance := authService.NewAuthService(repos.Users, config.Auth.BcryptCost, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// Configure CORS from config
	corsConfig := cors.Config{
		AllowOrigins:     config.CORS.AllowedOrigins,
		AllowMethods:     config.CORS.AllowedMethods,
		AllowHeaders:     config.CORS.AllowedHeaders,
		ExposeHeaders:    config.CORS.ExposedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           time.Duration(config.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Create controllers and register routes
	controllers.NewDashboardController(aggregator, logger).RegisterRoutes(router)
	controllers.NewDeviceController(aggregator, logger).RegisterRoutes(router)
	controllers.NewReadingController(ingestService, logger).RegisterRoutes(router)
	controllers.NewAuthController(authServiceInstance, logger).RegisterRoutes(router)
	controllers.NewHealthController(ctr).RegisterRoutes(router)

	// Get port from configuration
	port := config.Server.Port

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("API service running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
}
