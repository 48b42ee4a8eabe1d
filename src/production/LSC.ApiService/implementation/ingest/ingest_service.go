package ingest

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
	interfaces "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Interfaces"
)

// SubmitReadingInput is one collar sample as received on the write path. Activity arrives
// as text and is parsed here.
type SubmitReadingInput struct {
	HardwareID  string
	Lat         float64
	Lon         float64
	Temperature float64
	Humidity    float64
	Wind        float64
	Clouds      float64
	Condition   string
	THI         float64
	Activity    string
	Welfare     string
}

// Limiter throttles readings per device
type Limiter interface {
	Allow(key string) bool
}

// Service is the write path for collar readings
type Service struct {
	devices  interfaces.DeviceRepository
	readings interfaces.ReadingRepository
	limiter  Limiter
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates a new ingest service. A nil limiter disables throttling.
func NewService(devices interfaces.DeviceRepository, readings interfaces.ReadingRepository, limiter Limiter, log *logger.Logger) *Service {
	return &Service{
		devices:  devices,
		readings: readings,
		limiter:  limiter,
		logger:   log.WithComponent("ingest"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ParseActivity parses the activity text, rejecting NaN and infinities
func ParseActivity(text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, api_models.ValidationFailure("Activity must be a number.")
	}
	return value, nil
}

// SubmitReading stores a reading for the device owning in.HardwareID and marks the device
// active. Unknown hardware ids create nothing.
func (s *Service) SubmitReading(ctx context.Context, in SubmitReadingInput) (*lscmodels.Reading, error) {
	hardwareID := strings.TrimSpace(in.HardwareID)
	if hardwareID == "" {
		return nil, api_models.ValidationFailure("Device ID is required.")
	}

	activity, err := ParseActivity(in.Activity)
	if err != nil {
		return nil, err
	}

	position := lscmodels.Position{Lat: in.Lat, Lon: in.Lon}
	if !position.Valid() {
		return nil, api_models.ValidationFailure("Latitude must be within [-90, 90] and longitude within [-180, 180].")
	}

	log := s.logger.WithField("hardware_id", hardwareID)

	device, err := s.devices.GetDeviceByHardwareID(ctx, hardwareID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, api_models.NotFound("Device not found.")
		}
		log.ErrorWithError(err, "Device lookup failed")
		return nil, api_models.FetchFailure("Internal Server Error", err)
	}

	// one bucket per stored device, never per raw hardware id
	if s.limiter != nil && !s.limiter.Allow(device.ID) {
		log.Warn("Reading rate limit exceeded")
		return nil, api_models.RateLimited("Too many readings for this device.")
	}

	reading := &lscmodels.Reading{
		DeviceID:    device.ID,
		Position:    position,
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		WindSpeed:   in.Wind,
		CloudCover:  in.Clouds,
		Condition:   in.Condition,
		THI:         in.THI,
		Activity:    activity,
		Welfare:     in.Welfare,
		Time:        s.now(),
	}

	stored, err := s.readings.InsertReading(ctx, reading)
	if err != nil {
		log.ErrorWithError(err, "Reading insert failed")
		return nil, api_models.FetchFailure("Internal Server Error", err)
	}

	if !device.Active {
		if err := s.devices.SetActive(ctx, device.ID, true); err != nil {
			log.ErrorWithError(err, "Failed to activate device")
			return nil, api_models.FetchFailure("Internal Server Error", err)
		}
		log.Info("Device activated by first reading")
	}

	return stored, nil
}
