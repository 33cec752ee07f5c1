package entity

type Group struct {
	Base
	Name        string
	Description string `gorm:"type:text"`
	Category    string
	Location    string

	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}
