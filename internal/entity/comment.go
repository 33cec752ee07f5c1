package entity

type Comment struct {
	Base
	PostID string `gorm:"index"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Text string `gorm:"type:text"`
}
