package entity

import "database/sql"

type Post struct {
	Base
	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Description string `gorm:"type:text"`
	PhotoURL    string

	// OriginalPostID points at the immediate repost target, which may itself
	// be a repost. Chains are never collapsed to their root.
	OriginalPostID sql.NullString `gorm:"index"`
}

func (p *Post) IsRepost() bool {
	return p.OriginalPostID.Valid
}
