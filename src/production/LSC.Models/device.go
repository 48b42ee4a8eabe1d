package lscmodels

// Device represents a registered collar
type Device struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	HardwareID     string `json:"hardware_id"`
	ActivationCode string `json:"activation_code"`
	Active         bool   `json:"active"`
}

// DeviceRecord returns the device itself so plain devices and projections share filters
func (d Device) DeviceRecord() Device {
	return d
}

// DashboardDevice is the list projection of a device: no reading history, only the
// position of its most recent reading. LastPosition is nil when the device has no readings.
type DashboardDevice struct {
	Device
	LastPosition *Position `json:"lastPosition"`
}
