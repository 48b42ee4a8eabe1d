package implementation

import (
	"time"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type deviceDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Label          string             `bson:"label"`
	HardwareID     string             `bson:"hardware_id"`
	ActivationCode string             `bson:"activation_code"`
	Active         bool               `bson:"active"`
}

// geoPoint is a GeoJSON Point, coordinates are [lon, lat]
type geoPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type readingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	DeviceID    primitive.ObjectID `bson:"device_id"`
	Position    geoPoint           `bson:"position"`
	Temperature float64            `bson:"temperature"`
	Humidity    float64            `bson:"humidity"`
	Wind        float64            `bson:"wind"`
	Clouds      float64            `bson:"clouds"`
	Condition   string             `bson:"condition"`
	THI         float64            `bson:"thi"`
	Activity    float64            `bson:"activity"`
	CowWelfare  string             `bson:"cow_welfare"`
	Time        time.Time          `bson:"time"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func toGeoPoint(p lscmodels.Position) geoPoint {
	return geoPoint{Type: "Point", Coordinates: []float64{p.Lon, p.Lat}}
}

func fromGeoPoint(g geoPoint) lscmodels.Position {
	if len(g.Coordinates) < 2 {
		return lscmodels.Position{}
	}
	return lscmodels.Position{Lat: g.Coordinates[1], Lon: g.Coordinates[0]}
}

func (d deviceDocument) toModel() lscmodels.Device {
	return lscmodels.Device{
		ID:             d.ID.Hex(),
		Label:          d.Label,
		HardwareID:     d.HardwareID,
		ActivationCode: d.ActivationCode,
		Active:         d.Active,
	}
}

func newReadingDocument(deviceID primitive.ObjectID, r *lscmodels.Reading) readingDocument {
	return readingDocument{
		DeviceID:    deviceID,
		Position:    toGeoPoint(r.Position),
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Wind:        r.WindSpeed,
		Clouds:      r.CloudCover,
		Condition:   r.Condition,
		THI:         r.THI,
		Activity:    r.Activity,
		CowWelfare:  r.Welfare,
		Time:        r.Time.UTC(),
	}
}

func (d readingDocument) toModel() lscmodels.Reading {
	return lscmodels.Reading{
		ID:          d.ID.Hex(),
		DeviceID:    d.DeviceID.Hex(),
		Position:    fromGeoPoint(d.Position),
		Temperature: d.Temperature,
		Humidity:    d.Humidity,
		WindSpeed:   d.Wind,
		CloudCover:  d.Clouds,
		Condition:   d.Condition,
		THI:         d.THI,
		Activity:    d.Activity,
		Welfare:     d.CowWelfare,
		Time:        d.Time.UTC(),
	}
}

func (d userDocument) toModel() *lscmodels.User {
	return &lscmodels.User{
		UserID:       d.ID.Hex(),
		FullName:     d.FullName,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}
