package entity

import "time"

type GroupMember struct {
	CreatedAt time.Time

	GroupID string `gorm:"primaryKey"`
	Group   Group  `gorm:"foreignKey:GroupID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}
