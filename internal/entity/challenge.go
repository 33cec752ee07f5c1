package entity

type Challenge struct {
	Base
	Title       string
	Description string `gorm:"type:text"`
	Category    string
	Duration    string
	TotalTarget int
	Reward      string

	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`

	ParticipantCount int
}
