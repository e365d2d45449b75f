package models

import "time"

// MaxMessageLength bounds Message.Text, counted in runes.
const MaxMessageLength = 140

// Message is a warble posted by a user.
type Message struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	Text      string    `gorm:"column:text;not null;size:140"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Message) TableName() string {
	return "messages"
}
