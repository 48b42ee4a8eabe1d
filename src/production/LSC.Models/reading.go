package lscmodels

import "time"

// Reading is one sensor sample sent by a collar. JSON names follow the web client.
type Reading struct {
	ID          string    `json:"id,omitempty"`
	DeviceID    string    `json:"-"`
	Position    Position  `json:"position"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"wind"`
	CloudCover  float64   `json:"clouds"`
	Condition   string    `json:"condition"`
	THI         float64   `json:"thi"`
	Activity    float64   `json:"activity"`
	Welfare     string    `json:"cowWelfare"`
	Time        time.Time `json:"time"`
}

// WelfareLevel classifies the free-text welfare label
func (r Reading) WelfareLevel() WelfareLevel {
	return ClassifyWelfare(r.Welfare)
}

// ConditionKind classifies the free-text weather condition
func (r Reading) ConditionKind() ConditionKind {
	return ClassifyCondition(r.Condition)
}
