package implementation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	"gorm.io/gorm"
)

type SQLiteReadingRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewSQLiteReadingRepository(db *gorm.DB, timeout time.Duration) *SQLiteReadingRepository {
	return &SQLiteReadingRepository{db: db, timeout: timeout}
}

func (r *SQLiteReadingRepository) ListReadings(ctx context.Context, deviceID string) ([]lscmodels.Reading, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []readingRow
	if err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).Order("time desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}

	readings := make([]lscmodels.Reading, 0, len(rows))
	for _, row := range rows {
		readings = append(readings, row.toModel())
	}
	return readings, nil
}

func (r *SQLiteReadingRepository) GetLatestReading(ctx context.Context, deviceID string) (*lscmodels.Reading, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []readingRow
	if err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).Order("time desc").Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find latest reading: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	reading := rows[0].toModel()
	return &reading, nil
}

func (r *SQLiteReadingRepository) InsertReading(ctx context.Context, reading *lscmodels.Reading) (*lscmodels.Reading, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := newReadingRow(uuid.NewString(), reading)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert reading: %w", err)
	}
	created := row.toModel()
	return &created, nil
}

type latestPositionRow struct {
	DeviceID  string
	Latitude  float64
	Longitude float64
}

const latestPositionsQuery = `
SELECT r.device_id, r.latitude, r.longitude
FROM readings r
JOIN (
	SELECT device_id, MAX(time) AS max_time
	FROM readings
	WHERE device_id IN ?
	GROUP BY device_id
) latest ON r.device_id = latest.device_id AND r.time = latest.max_time`

// LatestPositions resolves every device's newest reading with a single grouped join.
func (r *SQLiteReadingRepository) LatestPositions(ctx context.Context, deviceIDs []string) (map[string]lscmodels.Position, error) {
	positions := make(map[string]lscmodels.Position, len(deviceIDs))
	if len(deviceIDs) == 0 {
		return positions, nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []latestPositionRow
	if err := r.db.WithContext(ctx).Raw(latestPositionsQuery, deviceIDs).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query latest positions: %w", err)
	}
	for _, row := range rows {
		positions[row.DeviceID] = lscmodels.Position{Lat: row.Latitude, Lon: row.Longitude}
	}
	return positions, nil
}
