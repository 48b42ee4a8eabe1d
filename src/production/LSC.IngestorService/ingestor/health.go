package ingestor

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ConnectionState reports broker connectivity
type ConnectionState interface {
	IsConnected() bool
}

// APIChecker checks that the API service answers
type APIChecker interface {
	Health(ctx context.Context) error
}

// NewHealthRouter serves GET /health with the MQTT and API service status
func NewHealthRouter(mqttState ConnectionState, api APIChecker) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		mqttStatus := "disconnected"
		if mqttState.IsConnected() {
			mqttStatus = "connected"
		}

		apiStatus := "disconnected"
		if err := api.Health(ctx); err == nil {
			apiStatus = "connected"
		}

		status, code := "healthy", http.StatusOK
		if mqttStatus != "connected" || apiStatus != "connected" {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"mqtt":        mqttStatus,
				"api_service": apiStatus,
			},
		})
	})

	return router
}
