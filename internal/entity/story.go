package entity

import "time"

type Story struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	MediaURL  string
	ExpiresAt time.Time `gorm:"index"`
}
