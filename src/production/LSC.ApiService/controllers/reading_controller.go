package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/ingest"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
)

// ReadingController accepts collar readings
type ReadingController struct {
	ingest *ingest.Service
	logger *logger.Logger
}

// NewReadingController creates a new reading controller
func NewReadingController(ingest *ingest.Service, logger *logger.Logger) *ReadingController {
	return &ReadingController{
		ingest: ingest,
		logger: logger,
	}
}

// RegisterRoutes registers the reading routes with Gin
func (c *ReadingController) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/load-data", c.LoadData)
}

// activityText accepts the activity either as a JSON string or a bare number
type activityText string

func (a *activityText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = activityText(s)
		return nil
	}
	*a = activityText(bytes.TrimSpace(data))
	return nil
}

type loadDataRequest struct {
	ID          *string       `json:"id" binding:"required"`
	Lat         *float64      `json:"lat" binding:"required"`
	Lon         *float64      `json:"lon" binding:"required"`
	Temperature *float64      `json:"temperature" binding:"required"`
	Humidity    *float64      `json:"humidity" binding:"required"`
	Wind        float64       `json:"wind"`
	Clouds      float64       `json:"clouds"`
	Condition   string        `json:"condition"`
	THI         float64       `json:"thi"`
	Activity    *activityText `json:"activity" binding:"required"`
	Welfare     string        `json:"welfare"`
}

// LoadData stores one reading, throttled per device by the ingest service
func (c *ReadingController) LoadData(ctx *gin.Context) {
	var req loadDataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, c.logger, api_models.ValidationFailure("Reading must include id, lat, lon, temperature, humidity and activity."))
		return
	}

	_, err := c.ingest.SubmitReading(ctx.Request.Context(), ingest.SubmitReadingInput{
		HardwareID:  *req.ID,
		Lat:         *req.Lat,
		Lon:         *req.Lon,
		Temperature: *req.Temperature,
		Humidity:    *req.Humidity,
		Wind:        req.Wind,
		Clouds:      req.Clouds,
		Condition:   req.Condition,
		THI:         req.THI,
		Activity:    string(*req.Activity),
		Welfare:     req.Welfare,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
