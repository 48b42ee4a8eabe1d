package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/dashboard"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/filter"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/metrics"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

// DashboardController serves the fleet overview
type DashboardController struct {
	aggregator *dashboard.Aggregator
	logger     *logger.Logger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(aggregator *dashboard.Aggregator, logger *logger.Logger) *DashboardController {
	return &DashboardController{
		aggregator: aggregator,
		logger:     logger,
	}
}

// RegisterRoutes registers the dashboard routes with Gin
func (c *DashboardController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/get-dashboard-data", c.GetDashboardData)
		api.GET("/devices", c.ListDevices)
	}
}

// GetDashboardData returns every device with its last known position
func (c *DashboardController) GetDashboardData(ctx *gin.Context) {
	devices, err := c.aggregator.ListDashboardDevices(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, devices)
}

type deviceListResponse struct {
	Devices []lscmodels.DashboardDevice `json:"devices"`
	Stats   metrics.FleetSummary        `json:"stats"`
	Matched int                         `json:"matched"`
}

// ListDevices searches and filters the fleet. Stats always cover the whole fleet.
func (c *DashboardController) ListDevices(ctx *gin.Context) {
	active, err := filter.ParseActiveFilter(ctx.Query("active"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	criteria := filter.DeviceCriteria{Search: ctx.Query("search"), Active: active}

	devices, err := c.aggregator.ListDashboardDevices(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	matched := filter.FilterDevices(devices, criteria)

	if ctx.Query("export") == "true" {
		respondAttachment(ctx, "devices.json", matched)
		return
	}

	records := make([]lscmodels.Device, 0, len(devices))
	for _, d := range devices {
		records = append(records, d.Device)
	}
	ctx.JSON(http.StatusOK, deviceListResponse{
		Devices: matched,
		Stats:   metrics.SummarizeFleet(records),
		Matched: len(matched),
	})
}
