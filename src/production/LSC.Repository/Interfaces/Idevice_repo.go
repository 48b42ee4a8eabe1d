package interfaces

import (
	"context"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

//go:generate mockgen -source=Idevice_repo.go -destination=../mocks/mock_device_repo.go -package=mocks

type DeviceRepository interface {
	ListDevices(ctx context.Context) ([]lscmodels.Device, error)

	// GetDevice and GetDeviceByHardwareID return ErrNotFound for unknown devices
	GetDevice(ctx context.Context, deviceID string) (*lscmodels.Device, error)
	GetDeviceByHardwareID(ctx context.Context, hardwareID string) (*lscmodels.Device, error)

	// CreateDevice returns ErrDuplicate when the hardware id is taken
	CreateDevice(ctx context.Context, device *lscmodels.Device) (*lscmodels.Device, error)

	SetActive(ctx context.Context, deviceID string, active bool) error
}
