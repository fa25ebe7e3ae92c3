package models

import "time"

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"` // COMMENT_REPLY
	PostID    string    `gorm:"type:uuid" json:"post_id"`
	CommentID string    `gorm:"type:uuid" json:"comment_id"`
	Message   string    `json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

const NotificationCommentReply = "COMMENT_REPLY"

func (Notification) TableName() string {
	return "notifications"
}
