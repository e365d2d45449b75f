package models

// Like records that a user liked a message. (user_id, message_id) is unique.
type Like struct {
	ID        uint `gorm:"primaryKey;column:id"`
	UserID    uint `gorm:"column:user_id;not null;uniqueIndex:idx_likes_user_message"`
	MessageID uint `gorm:"column:message_id;not null;uniqueIndex:idx_likes_user_message;index"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Message Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "likes"
}
