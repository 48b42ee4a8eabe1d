package interfaces

import (
	"context"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

//go:generate mockgen -source=Ireading_repo.go -destination=../mocks/mock_reading_repo.go -package=mocks

// ReadingRepository is the reading store accessor. Callers must not rely on the order of
// ListReadings.
type ReadingRepository interface {
	ListReadings(ctx context.Context, deviceID string) ([]lscmodels.Reading, error)

	// GetLatestReading returns nil, nil when the device has no readings
	GetLatestReading(ctx context.Context, deviceID string) (*lscmodels.Reading, error)

	InsertReading(ctx context.Context, reading *lscmodels.Reading) (*lscmodels.Reading, error)
}

// BatchLatestPositionLookup resolves the last known position of many devices in one query.
// Devices without readings are absent from the result.
type BatchLatestPositionLookup interface {
	LatestPositions(ctx context.Context, deviceIDs []string) (map[string]lscmodels.Position, error)
}
