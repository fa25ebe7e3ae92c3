package dto

import (
	"time"

	"bloghub/internal/http-api/models"
)

// CreateCommentDTO for creating a comment; ParentID is nil for a top-level
// comment and must reference an existing comment on the same post otherwise.
type CreateCommentDTO struct {
	Text     string  `json:"text" binding:"required,min=1,max=5000"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CommentResponse mirrors the wire shape the thread client consumes: a flat
// record with a parent reference, never a nested tree. Nesting is done
// client-side.
type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Date      time.Time `json:"date"`
	Text      string    `json:"text"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		AvatarURL: comment.AvatarURL,
		ParentID:  comment.ParentID,
		Date:      comment.CreatedAt,
		Text:      comment.Text,
	}
}

// CommentListResponse wraps the flat collection for one post.
type CommentListResponse struct {
	Data  []CommentResponse `json:"data"`
	Total int               `json:"total"`
}
