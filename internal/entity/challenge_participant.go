package entity

const (
	ChallengeActive    = "active"
	ChallengeCompleted = "completed"
)

type ChallengeParticipant struct {
	Base
	ChallengeID string    `gorm:"uniqueIndex:idx_challenge_user"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	UserID string `gorm:"uniqueIndex:idx_challenge_user"`
	User   User   `gorm:"foreignKey:UserID"`

	Status   string `gorm:"default:active"`
	Progress int
}
