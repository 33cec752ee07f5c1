package entity

import "time"

// Follow is a single directed edge of the social graph. Followers and
// following lists are both derived from this table, so the two views can
// never diverge. No soft delete: unfollow removes the row so the composite
// key stays free for the next toggle.
type Follow struct {
	CreatedAt time.Time

	FollowerID string `gorm:"primaryKey"`
	Follower   User   `gorm:"foreignKey:FollowerID"`

	FollowedID string `gorm:"primaryKey"`
	Followed   User   `gorm:"foreignKey:FollowedID"`
}
