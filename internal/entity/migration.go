package entity

import "gorm.io/gorm"

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Follow{},
		&Post{},
		&Like{},
		&Comment{},
		&Group{},
		&GroupMember{},
		&Story{},
		&Message{},
		&Challenge{},
		&ChallengeParticipant{},
	)
}
