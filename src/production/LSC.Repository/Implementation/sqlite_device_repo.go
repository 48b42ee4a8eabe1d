package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	interfaces "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Interfaces"
	"gorm.io/gorm"
)

type SQLiteDeviceRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewSQLiteDeviceRepository creates a new SQLite device repository
func NewSQLiteDeviceRepository(db *gorm.DB, timeout time.Duration) *SQLiteDeviceRepository {
	return &SQLiteDeviceRepository{db: db, timeout: timeout}
}

func (r *SQLiteDeviceRepository) ListDevices(ctx context.Context) ([]lscmodels.Device, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []deviceRow
	if err := r.db.WithContext(ctx).Order("label, hardware_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	devices := make([]lscmodels.Device, 0, len(rows))
	for _, row := range rows {
		devices = append(devices, row.toModel())
	}
	return devices, nil
}

func (r *SQLiteDeviceRepository) GetDevice(ctx context.Context, deviceID string) (*lscmodels.Device, error) {
	return r.findOne(ctx, "id = ?", deviceID)
}

func (r *SQLiteDeviceRepository) GetDeviceByHardwareID(ctx context.Context, hardwareID string) (*lscmodels.Device, error) {
	return r.findOne(ctx, "hardware_id = ?", hardwareID)
}

func (r *SQLiteDeviceRepository) findOne(ctx context.Context, query string, arg string) (*lscmodels.Device, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []deviceRow
	if err := r.db.WithContext(ctx).Where(query, arg).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find device: %w", err)
	}
	if len(rows) == 0 {
		return nil, interfaces.ErrNotFound
	}
	device := rows[0].toModel()
	return &device, nil
}

func (r *SQLiteDeviceRepository) CreateDevice(ctx context.Context, device *lscmodels.Device) (*lscmodels.Device, error) {
	if _, err := r.GetDeviceByHardwareID(ctx, device.HardwareID); err == nil {
		return nil, interfaces.ErrDuplicate
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := deviceRow{
		ID:             uuid.NewString(),
		Label:          device.Label,
		HardwareID:     device.HardwareID,
		ActivationCode: device.ActivationCode,
		Active:         device.Active,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert device: %w", err)
	}
	created := row.toModel()
	return &created, nil
}

func (r *SQLiteDeviceRepository) SetActive(ctx context.Context, deviceID string, active bool) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&deviceRow{}).Where("id = ?", deviceID).Update("active", active)
	if res.Error != nil {
		return fmt.Errorf("update device: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}
