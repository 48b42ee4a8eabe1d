package dashboard

import (
	"context"
	"errors"
	"fmt"

	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
	interfaces "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Interfaces"
	"golang.org/x/sync/errgroup"
)

const (
	msgFetchDevices = "Failed to fetch devices."
	msgFetchDevice  = "Failed to fetch device data."
)

// Aggregator assembles dashboard and device detail views from the stores
type Aggregator struct {
	devices  interfaces.DeviceRepository
	readings interfaces.ReadingRepository
	cfg      config.DashboardConfig
	logger   *logger.Logger
}

// DeviceDetail is a device with its full reading history
type DeviceDetail struct {
	Device   lscmodels.Device
	Readings []lscmodels.Reading
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(devices interfaces.DeviceRepository, readings interfaces.ReadingRepository, cfg config.DashboardConfig, log *logger.Logger) *Aggregator {
	return &Aggregator{
		devices:  devices,
		readings: readings,
		cfg:      cfg,
		logger:   log.WithComponent("dashboard"),
	}
}

// ListDashboardDevices returns every device with the position of its latest reading.
// Any failed lookup fails the whole call.
func (a *Aggregator) ListDashboardDevices(ctx context.Context) ([]lscmodels.DashboardDevice, error) {
	devices, err := a.devices.ListDevices(ctx)
	if err != nil {
		a.logger.ErrorWithError(err, "Failed to list devices")
		return nil, api_models.FetchFailure(msgFetchDevices, err)
	}

	positions, err := a.latestPositions(ctx, devices)
	if err != nil {
		a.logger.ErrorWithError(err, "Failed to resolve latest positions")
		return nil, api_models.FetchFailure(msgFetchDevices, err)
	}

	out := make([]lscmodels.DashboardDevice, 0, len(devices))
	for _, d := range devices {
		entry := lscmodels.DashboardDevice{Device: d}
		if pos, ok := positions[d.ID]; ok {
			entry.LastPosition = &pos
		}
		out = append(out, entry)
	}
	return out, nil
}

func (a *Aggregator) latestPositions(ctx context.Context, devices []lscmodels.Device) (map[string]lscmodels.Position, error) {
	if len(devices) == 0 {
		return map[string]lscmodels.Position{}, nil
	}

	if batch, ok := a.readings.(interfaces.BatchLatestPositionLookup); ok && a.cfg.UseBatchLookup {
		ids := make([]string, 0, len(devices))
		for _, d := range devices {
			ids = append(ids, d.ID)
		}
		positions, err := batch.LatestPositions(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("batch latest positions: %w", err)
		}
		return positions, nil
	}

	return a.fanOutPositions(ctx, devices)
}

// fanOutPositions issues one latest reading lookup per device, at most LookupConcurrency at a time
func (a *Aggregator) fanOutPositions(ctx context.Context, devices []lscmodels.Device) (map[string]lscmodels.Position, error) {
	g, gctx := errgroup.WithContext(ctx)
	if a.cfg.LookupConcurrency > 0 {
		g.SetLimit(a.cfg.LookupConcurrency)
	}

	found := make([]*lscmodels.Position, len(devices))
	for i, d := range devices {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reading, err := a.readings.GetLatestReading(gctx, d.ID)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					a.logger.WithField("device_id", d.ID).ErrorWithError(err, "Latest reading lookup failed")
				}
				return fmt.Errorf("latest reading for device %s: %w", d.ID, err)
			}
			if reading != nil {
				pos := reading.Position
				found[i] = &pos
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	positions := make(map[string]lscmodels.Position, len(devices))
	for i, pos := range found {
		if pos != nil {
			positions[devices[i].ID] = *pos
		}
	}
	return positions, nil
}

// GetDeviceDetail fetches the device record and its readings concurrently
func (a *Aggregator) GetDeviceDetail(ctx context.Context, deviceID string) (*DeviceDetail, error) {
	if deviceID == "" {
		return nil, api_models.ValidationFailure("Device ID is required.")
	}

	var (
		device   *lscmodels.Device
		readings []lscmodels.Reading
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		device, err = a.devices.GetDevice(gctx, deviceID)
		return err
	})
	g.Go(func() error {
		var err error
		readings, err = a.readings.ListReadings(gctx, deviceID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, api_models.NotFound("Device not found.")
		}
		a.logger.WithField("device_id", deviceID).ErrorWithError(err, "Failed to fetch device detail")
		return nil, api_models.FetchFailure(msgFetchDevice, err)
	}

	if readings == nil {
		readings = []lscmodels.Reading{}
	}
	return &DeviceDetail{Device: *device, Readings: readings}, nil
}
