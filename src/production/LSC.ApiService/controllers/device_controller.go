package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/dashboard"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/filter"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/metrics"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
)

// DeviceController serves single device views
type DeviceController struct {
	aggregator *dashboard.Aggregator
	logger     *logger.Logger
}

// NewDeviceController creates a new device controller
func NewDeviceController(aggregator *dashboard.Aggregator, logger *logger.Logger) *DeviceController {
	return &DeviceController{
		aggregator: aggregator,
		logger:     logger,
	}
}

// RegisterRoutes registers the device routes with Gin
func (c *DeviceController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/get-device-data", c.GetDeviceData)
		api.GET("/devices/:id/readings", c.GetDeviceReadings)
	}
}

type deviceDataRequest struct {
	DeviceID string `json:"deviceId"`
}

// deviceDataResponse flattens the device fields next to its readings
type deviceDataResponse struct {
	lscmodels.Device
	Readings []readingView          `json:"readings"`
	Summary  metrics.ReadingSummary `json:"summary"`
}

func (c *DeviceController) GetDeviceData(ctx *gin.Context) {
	var req deviceDataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, api_models.ValidationFailure("Device ID is required."))
		return
	}

	detail, err := c.aggregator.GetDeviceDetail(ctx.Request.Context(), req.DeviceID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, deviceDataResponse{
		Device:   detail.Device,
		Readings: readingViews(detail.Readings),
		Summary:  metrics.SummarizeReadings(detail.Readings),
	})
}

type deviceReadingsResponse struct {
	Device   lscmodels.Device       `json:"device"`
	Readings []readingView          `json:"readings"`
	Summary  metrics.ReadingSummary `json:"summary"`
}

// GetDeviceReadings filters and sorts one device's readings. The summary covers the
// readings left after the welfare filter.
func (c *DeviceController) GetDeviceReadings(ctx *gin.Context) {
	sortBy, err := filter.ParseSortKey(ctx.Query("sort_by"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	order, err := filter.ParseSortOrder(ctx.Query("order"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	detail, err := c.aggregator.GetDeviceDetail(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	readings := filter.SortReadings(detail.Readings, filter.ReadingCriteria{
		SortBy:  sortBy,
		Order:   order,
		Welfare: ctx.Query("welfare"),
	})

	if ctx.Query("export") == "true" {
		respondAttachment(ctx, detail.Device.HardwareID+"_readings.json", readingViews(readings))
		return
	}

	ctx.JSON(http.StatusOK, deviceReadingsResponse{
		Device:   detail.Device,
		Readings: readingViews(readings),
		Summary:  metrics.SummarizeReadings(readings),
	})
}
