package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"author_id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Category  string    `gorm:"not null;index" json:"category"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (post *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	return
}

func (Post) TableName() string {
	return "posts"
}
