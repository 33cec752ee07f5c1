package entity

import "time"

// Like pairs a post with a user. The composite primary key guarantees at most
// one live row per pair no matter how toggles race; rows are hard-deleted on
// unlike so the pair can be reinserted.
type Like struct {
	CreatedAt time.Time

	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}
