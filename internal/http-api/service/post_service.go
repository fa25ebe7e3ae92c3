package service

import (
	"context"
	"errors"

	"bloghub/internal/http-api/dto"
	"bloghub/internal/http-api/models"
	"bloghub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrNotPostAuthor = errors.New("you don't have permission to modify this post")

type PostService interface {
	CreatePost(ctx context.Context, authorID string, req dto.CreatePostDTO) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, postID, userID, role string, req dto.UpdatePostDTO) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, postID, userID, role string) error
	GetPostByID(ctx context.Context, id string) (*dto.PostResponse, error)
	GetPostBySlug(ctx context.Context, slug string) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedPostResponse, error)
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) CreatePost(ctx context.Context, authorID string, req dto.CreatePostDTO) (*dto.PostResponse, error) {
	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Slug:     req.Slug,
		Category: req.Category,
		Summary:  req.Summary,
		Content:  req.Content,
		CoverURL: req.CoverURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return dto.FromModelToPostResponse(post), nil
}

// UpdatePost applies the non-nil fields. Only the author or an admin may edit.
func (s *postService) UpdatePost(ctx context.Context, postID, userID, role string, req dto.UpdatePostDTO) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.AuthorID != userID && role != models.RoleAdmin {
		return nil, ErrNotPostAuthor
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Summary != nil {
		post.Summary = *req.Summary
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CoverURL != nil {
		post.CoverURL = *req.CoverURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return dto.FromModelToPostResponse(post), nil
}

func (s *postService) DeletePost(ctx context.Context, postID, userID, role string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.AuthorID != userID && role != models.RoleAdmin {
		return ErrNotPostAuthor
	}

	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) GetPostByID(ctx context.Context, id string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return dto.FromModelToPostResponse(post), nil
}

func (s *postService) GetPostBySlug(ctx context.Context, slug string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return dto.FromModelToPostResponse(post), nil
}

func (s *postService) ListPosts(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedPostResponse, error) {
	posts, total, err := s.postRepo.List(ctx, category, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *dto.FromModelToPostResponse(&posts[i]))
	}

	return dto.NewPaginatedPostResponse(responses, int(total), page, pageSize), nil
}
