package entity

import "time"

type User struct {
	Base
	Name           string
	Username       string `gorm:"unique"`
	Email          string `gorm:"unique"`
	HashedPassword string

	Description string `gorm:"type:text"`
	Weight      float64
	Height      float64
	Diet        []byte `gorm:"type:longtext"`
	Workout     []byte `gorm:"type:longtext"`
	AvatarURL   string

	LastMeasurementUpdate time.Time
}
