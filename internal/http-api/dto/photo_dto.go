package dto

import (
	"time"

	"bloghub/internal/http-api/models"
)

// CreatePhotoDTO for adding a portfolio photo. The image itself lives on an
// external CDN; only its URL is stored here.
type CreatePhotoDTO struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	ImageURL string `json:"image_url" binding:"required,url"`
	Caption  string `json:"caption,omitempty"`
}

// PhotoResponse for returning photo information
type PhotoResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToPhotoResponse converts a Photo model to PhotoResponse DTO
func FromModelToPhotoResponse(photo *models.Photo) *PhotoResponse {
	return &PhotoResponse{
		ID:        photo.ID,
		OwnerID:   photo.OwnerID,
		Title:     photo.Title,
		ImageURL:  photo.ImageURL,
		Caption:   photo.Caption,
		CreatedAt: photo.CreatedAt,
	}
}

// PaginatedPhotoResponse for returning paginated photos
type PaginatedPhotoResponse struct {
	Data       []PhotoResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// NewPaginatedPhotoResponse creates a paginated photo response
func NewPaginatedPhotoResponse(data []PhotoResponse, total, page, pageSize int) *PaginatedPhotoResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedPhotoResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
