package service

import (
	"context"
	"errors"

	"bloghub/internal/http-api/dto"
	"bloghub/internal/http-api/models"
	"bloghub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrNotPhotoOwner = errors.New("you don't have permission to delete this photo")
)

type PhotoService interface {
	CreatePhoto(ctx context.Context, ownerID string, req dto.CreatePhotoDTO) (*dto.PhotoResponse, error)
	DeletePhoto(ctx context.Context, photoID, userID, role string) error
	ListPhotos(ctx context.Context, page, pageSize int) (*dto.PaginatedPhotoResponse, error)
}

type photoService struct {
	photoRepo repository.PhotoRepository
}

func NewPhotoService(photoRepo repository.PhotoRepository) PhotoService {
	return &photoService{photoRepo: photoRepo}
}

func (s *photoService) CreatePhoto(ctx context.Context, ownerID string, req dto.CreatePhotoDTO) (*dto.PhotoResponse, error) {
	photo := &models.Photo{
		OwnerID:  ownerID,
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}

	return dto.FromModelToPhotoResponse(photo), nil
}

func (s *photoService) DeletePhoto(ctx context.Context, photoID, userID, role string) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	if photo.OwnerID != userID && role != models.RoleAdmin {
		return ErrNotPhotoOwner
	}

	rows, err := s.photoRepo.Delete(ctx, photoID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (s *photoService) ListPhotos(ctx context.Context, page, pageSize int) (*dto.PaginatedPhotoResponse, error) {
	photos, total, err := s.photoRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		responses = append(responses, *dto.FromModelToPhotoResponse(&photos[i]))
	}

	return dto.NewPaginatedPhotoResponse(responses, int(total), page, pageSize), nil
}
