package filter

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
)

func fleet() []lscmodels.Device {
	return []lscmodels.Device{
		{ID: "1", Label: "Bessie", HardwareID: "A1", ActivationCode: "ZX-100", Active: true},
		{ID: "2", Label: "Daisy", HardwareID: "B2", ActivationCode: "ZX-200", Active: false},
		{ID: "3", Label: "Buttercup", HardwareID: "C3", ActivationCode: "QQ-a1", Active: false},
	}
}

func ids(devices []lscmodels.Device) []string {
	out := make([]string, 0, len(devices))
	for _, d := range devices {
		out = append(out, d.ID)
	}
	return out
}

func TestFilterDevices_CaseInsensitiveHardwareID(t *testing.T) {
	devices := []lscmodels.Device{
		{HardwareID: "A1", Active: true},
		{HardwareID: "B2", Active: false},
	}
	got := FilterDevices(devices, DeviceCriteria{Search: "a1"})
	require.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].HardwareID)
}

func TestFilterDevices_SearchFields(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterDevices(fleet(), DeviceCriteria{})))
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterDevices(fleet(), DeviceCriteria{Search: "   "})))
	assert.Equal(t, []string{"2"}, ids(FilterDevices(fleet(), DeviceCriteria{Search: "DAIS"})))
	assert.Equal(t, []string{"1", "2"}, ids(FilterDevices(fleet(), DeviceCriteria{Search: "zx-"})))
	// hardware id of one device, activation code of another
	assert.Equal(t, []string{"1", "3"}, ids(FilterDevices(fleet(), DeviceCriteria{Search: "A1"})))
	assert.Empty(t, FilterDevices(fleet(), DeviceCriteria{Search: "nope"}))
}

func TestFilterDevices_ActiveAndSearch(t *testing.T) {
	assert.Equal(t, []string{"1"}, ids(FilterDevices(fleet(), DeviceCriteria{Active: ActiveOnly})))
	assert.Equal(t, []string{"2", "3"}, ids(FilterDevices(fleet(), DeviceCriteria{Active: InactiveOnly})))
	assert.Equal(t, []string{"3"}, ids(FilterDevices(fleet(), DeviceCriteria{Search: "a1", Active: InactiveOnly})))
}

func TestFilterDevices_Idempotent(t *testing.T) {
	criteria := []DeviceCriteria{
		{},
		{Search: "b"},
		{Search: "zx", Active: ActiveOnly},
		{Active: InactiveOnly},
	}
	for _, c := range criteria {
		once := FilterDevices(fleet(), c)
		twice := FilterDevices(once, c)
		assert.Equal(t, once, twice)
	}
}

func TestFilterDevices_DashboardProjection(t *testing.T) {
	devices := []lscmodels.DashboardDevice{
		{Device: lscmodels.Device{ID: "1", HardwareID: "A1", Active: true}, LastPosition: &lscmodels.Position{Lat: 1, Lon: 2}},
		{Device: lscmodels.Device{ID: "2", HardwareID: "B2"}},
	}
	got := FilterDevices(devices, DeviceCriteria{Active: ActiveOnly})
	require.Len(t, got, 1)
	assert.Equal(t, &lscmodels.Position{Lat: 1, Lon: 2}, got[0].LastPosition)
}

func TestParseActiveFilter(t *testing.T) {
	for in, want := range map[string]ActiveFilter{"": ActiveUnset, "all": ActiveUnset, "TRUE": ActiveOnly, "inactive": InactiveOnly, "false": InactiveOnly} {
		got, err := ParseActiveFilter(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseActiveFilter("maybe")
	var apiErr *api_models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
