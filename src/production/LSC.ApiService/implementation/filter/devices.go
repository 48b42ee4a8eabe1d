package filter

import (
	"strings"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

// DeviceView is anything carrying a device record, plain devices and dashboard projections alike
type DeviceView interface {
	DeviceRecord() lscmodels.Device
}

// FilterDevices keeps devices whose label, hardware id or activation code contains the
// search term (case-insensitive) and whose active flag matches. Input order is preserved.
func FilterDevices[D DeviceView](devices []D, criteria DeviceCriteria) []D {
	term := strings.ToLower(strings.TrimSpace(criteria.Search))

	out := make([]D, 0, len(devices))
	for _, d := range devices {
		record := d.DeviceRecord()
		if !criteria.Active.matches(record.Active) {
			continue
		}
		if term != "" && !matchesSearch(record, term) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matchesSearch(d lscmodels.Device, term string) bool {
	return strings.Contains(strings.ToLower(d.Label), term) ||
		strings.Contains(strings.ToLower(d.HardwareID), term) ||
		strings.Contains(strings.ToLower(d.ActivationCode), term)
}
