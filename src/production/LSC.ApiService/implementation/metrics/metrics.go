package metrics

import (
	"math"
	"time"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

// ReadingSummary holds the display averages of a reading collection
type ReadingSummary struct {
	Count          int        `json:"count"`
	AvgTemperature float64    `json:"avg_temperature"`
	AvgHumidity    float64    `json:"avg_humidity"`
	AvgActivity    float64    `json:"avg_activity"`
	LastReadingAt  *time.Time `json:"last_reading_at"`
}

// FleetSummary counts devices by liveness. Inactive is always Total - Active.
type FleetSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// SummarizeReadings averages temperature and humidity to 1 decimal and activity to 2.
// Empty input yields zeros.
func SummarizeReadings(readings []lscmodels.Reading) ReadingSummary {
	summary := ReadingSummary{Count: len(readings)}
	if len(readings) == 0 {
		return summary
	}

	var temperature, humidity, activity float64
	last := readings[0].Time
	for _, r := range readings {
		temperature += r.Temperature
		humidity += r.Humidity
		activity += r.Activity
		if r.Time.After(last) {
			last = r.Time
		}
	}

	n := float64(len(readings))
	summary.AvgTemperature = Round(temperature/n, 1)
	summary.AvgHumidity = Round(humidity/n, 1)
	summary.AvgActivity = Round(activity/n, 2)
	summary.LastReadingAt = &last
	return summary
}

// SummarizeFleet counts active and inactive devices
func SummarizeFleet(devices []lscmodels.Device) FleetSummary {
	active := 0
	for _, d := range devices {
		if d.Active {
			active++
		}
	}
	return FleetSummary{
		Total:    len(devices),
		Active:   active,
		Inactive: len(devices) - active,
	}
}

// Round rounds half away from zero to the given number of decimal places
func Round(value float64, places int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
