package ingestor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.IngestorService/client"
)

// collarPayload is what a collar publishes on its readings topic
type collarPayload struct {
	Lat         *float64       `json:"lat"`
	Lon         *float64       `json:"lon"`
	Temperature *float64       `json:"temperature"`
	Humidity    *float64       `json:"humidity"`
	Wind        float64        `json:"wind"`
	Clouds      float64        `json:"clouds"`
	Condition   string         `json:"condition"`
	THI         float64        `json:"thi"`
	Activity    *activityField `json:"activity"`
	Welfare     string         `json:"welfare"`
}

// activityField keeps the raw text of a number or string activity value
type activityField string

func (a *activityField) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = activityField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("activity must be a number or string")
	}
	*a = activityField(n.String())
	return nil
}

// decodePayload turns a collar message into the load-data body for hardwareID
func decodePayload(hardwareID string, raw []byte) (client.LoadDataRequest, error) {
	var p collarPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return client.LoadDataRequest{}, fmt.Errorf("invalid JSON payload: %w", err)
	}

	var missing []string
	if p.Lat == nil {
		missing = append(missing, "lat")
	}
	if p.Lon == nil {
		missing = append(missing, "lon")
	}
	if p.Temperature == nil {
		missing = append(missing, "temperature")
	}
	if p.Humidity == nil {
		missing = append(missing, "humidity")
	}
	if p.Activity == nil {
		missing = append(missing, "activity")
	}
	if len(missing) > 0 {
		return client.LoadDataRequest{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	return client.LoadDataRequest{
		ID:          hardwareID,
		Lat:         *p.Lat,
		Lon:         *p.Lon,
		Temperature: *p.Temperature,
		Humidity:    *p.Humidity,
		Wind:        p.Wind,
		Clouds:      p.Clouds,
		Condition:   p.Condition,
		THI:         p.THI,
		Activity:    string(*p.Activity),
		Welfare:     p.Welfare,
	}, nil
}

// hardwareIDFromTopic returns the segment matched by the single '+' wildcard of pattern
func hardwareIDFromTopic(pattern, topic string) (string, error) {
	want := strings.Split(pattern, "/")
	got := strings.Split(topic, "/")
	if len(want) != len(got) {
		return "", fmt.Errorf("topic %q does not match %q", topic, pattern)
	}

	hardwareID := ""
	for idx, segment := range want {
		switch segment {
		case "+":
			if got[idx] == "" {
				return "", fmt.Errorf("topic %q has an empty hardware id", topic)
			}
			hardwareID = got[idx]
		default:
			if segment != got[idx] {
				return "", fmt.Errorf("topic %q does not match %q", topic, pattern)
			}
		}
	}
	if hardwareID == "" {
		return "", fmt.Errorf("topic pattern %q has no '+' wildcard", pattern)
	}
	return hardwareID, nil
}
