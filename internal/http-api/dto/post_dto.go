package dto

import (
	"time"

	"bloghub/internal/http-api/models"
)

// CreatePostDTO for creating a blog post; category is mandatory.
type CreatePostDTO struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Slug     string `json:"slug" binding:"required,min=1,max=200"`
	Category string `json:"category" binding:"required"`
	Summary  string `json:"summary,omitempty"`
	Content  string `json:"content" binding:"required"`
	CoverURL string `json:"cover_url,omitempty"`
}

// UpdatePostDTO for updating a blog post
type UpdatePostDTO struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	Content  *string `json:"content,omitempty"`
	CoverURL *string `json:"cover_url,omitempty"`
}

// PostResponse for returning post information
type PostResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToPostResponse converts a Post model to PostResponse DTO
func FromModelToPostResponse(post *models.Post) *PostResponse {
	return &PostResponse{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Slug:      post.Slug,
		Category:  post.Category,
		Summary:   post.Summary,
		Content:   post.Content,
		CoverURL:  post.CoverURL,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// PaginatedPostResponse for returning paginated posts
type PaginatedPostResponse struct {
	Data       []PostResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedPostResponse creates a paginated post response
func NewPaginatedPostResponse(data []PostResponse, total, page, pageSize int) *PaginatedPostResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedPostResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
