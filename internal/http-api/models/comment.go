package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a single row of the flat comment store. Username and AvatarURL
// are copied from the author at creation time so renaming a user does not
// rewrite history. ParentID is nil for top-level comments; deleting a row
// does NOT cascade to its replies here, the client view is responsible for
// expunging the subtree.
type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Username  string    `gorm:"not null" json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Text      string    `gorm:"not null;type:text" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"date"`

	// Associations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Post Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (comment *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}
