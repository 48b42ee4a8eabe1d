package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/health"
)

// StatusReporter is satisfied by the API container
type StatusReporter interface {
	HealthCheck(ctx context.Context) map[string]interface{}
}

// HealthController serves liveness and readiness checks
type HealthController struct {
	reporter StatusReporter
}

// NewHealthController creates a new health controller
func NewHealthController(reporter StatusReporter) *HealthController {
	return &HealthController{reporter: reporter}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health/live", c.HealthLive)
	router.GET("/health/ready", c.HealthReady)
}

func (c *HealthController) HealthLive(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": health.StatusOK,
	})
}

// HealthReady reports store reachability, 503 when degraded
func (c *HealthController) HealthReady(ctx *gin.Context) {
	status := c.reporter.HealthCheck(ctx.Request.Context())
	code := http.StatusOK
	if status["status"] != health.StatusOK {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, status)
}
