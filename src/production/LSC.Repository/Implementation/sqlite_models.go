package implementation

import (
	"time"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

type deviceRow struct {
	ID             string `gorm:"primaryKey;size:36"`
	Label          string
	HardwareID     string `gorm:"column:hardware_id;uniqueIndex"`
	ActivationCode string `gorm:"column:activation_code"`
	Active         bool
}

func (deviceRow) TableName() string { return devicesCollection }

type readingRow struct {
	ID          string    `gorm:"primaryKey;size:36"`
	DeviceID    string    `gorm:"column:device_id;size:36;index:idx_readings_device_time,priority:1"`
	Latitude    float64   `gorm:"column:latitude"`
	Longitude   float64   `gorm:"column:longitude"`
	Temperature float64   `gorm:"column:temperature"`
	Humidity    float64   `gorm:"column:humidity"`
	Wind        float64   `gorm:"column:wind"`
	Clouds      float64   `gorm:"column:clouds"`
	Condition   string    `gorm:"column:condition"`
	THI         float64   `gorm:"column:thi"`
	Activity    float64   `gorm:"column:activity"`
	CowWelfare  string    `gorm:"column:cow_welfare"`
	Time        time.Time `gorm:"column:time;index:idx_readings_device_time,priority:2"`
}

func (readingRow) TableName() string { return readingsCollection }

type userRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	FullName     string `gorm:"column:full_name"`
	Email        string `gorm:"column:email;uniqueIndex"`
	Phone        string
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userRow) TableName() string { return usersCollection }

// SQLiteModels lists the gorm models for AutoMigrate
func SQLiteModels() []interface{} {
	return []interface{}{&deviceRow{}, &readingRow{}, &userRow{}}
}

func (d deviceRow) toModel() lscmodels.Device {
	return lscmodels.Device{
		ID:             d.ID,
		Label:          d.Label,
		HardwareID:     d.HardwareID,
		ActivationCode: d.ActivationCode,
		Active:         d.Active,
	}
}

func newReadingRow(id string, r *lscmodels.Reading) readingRow {
	return readingRow{
		ID:          id,
		DeviceID:    r.DeviceID,
		Latitude:    r.Position.Lat,
		Longitude:   r.Position.Lon,
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

func (r readingRow) toModel() lscmodels.Reading {
	return lscmodels.Reading{
		ID:          r.ID,
		DeviceID:    r.DeviceID,
		Position:    lscmodels.Position{Lat: r.Latitude, Lon: r.Longitude},
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		WindSpeed:   r.Wind,
		CloudCover:  r.Clouds,
		Condition:   r.Condition,
		THI:         r.THI,
		Activity:    r.Activity,
		Welfare:     r.CowWelfare,
		Time:        r.Time.UTC(),
	}
}

func (u userRow) toModel() *lscmodels.User {
	return &lscmodels.User{
		UserID:       u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}
