package lscmodels

import (
	"encoding/json"
	"fmt"
)

// Position is a WGS84 latitude/longitude pair. It is encoded on the wire as [lat, lon].
type Position struct {
	Lat float64
	Lon float64
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lon})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("position: expected [lat, lon], got %d values", len(pair))
	}
	p.Lat, p.Lon = pair[0], pair[1]
	return nil
}

// Valid reports whether the coordinates are within WGS84 bounds
func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}
