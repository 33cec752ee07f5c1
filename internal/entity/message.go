package entity

type Message struct {
	Base
	SenderID string `gorm:"index"`
	Sender   User   `gorm:"foreignKey:SenderID"`

	ReceiverID string `gorm:"index"`
	Receiver   User   `gorm:"foreignKey:ReceiverID"`

	Content string `gorm:"type:text"`
	IsRead  bool
}
