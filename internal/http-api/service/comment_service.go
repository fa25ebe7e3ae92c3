package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bloghub/internal/http-api/dto"
	"bloghub/internal/http-api/models"
	"bloghub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment text is empty")
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, postID, text string, parentID *string) (*dto.CommentResponse, error)
	ListByPost(ctx context.Context, postID string) (*dto.CommentListResponse, error)
	DeleteComment(ctx context.Context, id string) error
}

type commentService struct {
	commentRepo      repository.CommentRepository
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	cache            *repository.CommentCache
	logger           *slog.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	cache *repository.CommentCache,
	logger *slog.Logger,
) CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		cache:            cache,
		logger:           logger,
	}
}

// CreateComment stores a new comment or reply. The client already trusts its
// rendered parent ids, but the server re-validates: the parent must exist and
// belong to the same post.
func (s *commentService) CreateComment(ctx context.Context, userID, postID, text string, parentID *string) (*dto.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var parent *models.Comment
	if parentID != nil {
		var err error
		parent, err = s.commentRepo.GetByID(ctx, *parentID)
		if err != nil || parent.PostID != postID {
			return nil, ErrParentNotFound
		}
	}

	// snapshot the author's identity at comment time
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("load comment author: %w", err)
	}

	comment := &models.Comment{
		PostID:    postID,
		UserID:    user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		ParentID:  parentID,
		Text:      text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, postID)
	s.notifyParentAuthor(ctx, comment, parent)

	return dto.FromModelToCommentResponse(comment), nil
}

// notifyParentAuthor records a reply notification, best effort. Self-replies
// don't notify.
func (s *commentService) notifyParentAuthor(ctx context.Context, comment *models.Comment, parent *models.Comment) {
	if parent == nil || parent.UserID == comment.UserID {
		return
	}

	notification := &models.Notification{
		UserID:    parent.UserID,
		Type:      models.NotificationCommentReply,
		PostID:    comment.PostID,
		CommentID: comment.ID,
		Message:   fmt.Sprintf("%s replied to your comment", comment.Username),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("create reply notification failed", "comment_id", comment.ID, "error", err)
	}
}

// ListByPost returns the flat, chronologically ascending comment collection
// for a post. The nested tree is assembled by the client.
func (s *commentService) ListByPost(ctx context.Context, postID string) (*dto.CommentListResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comments, hit := s.cache.Get(ctx, postID)
	if !hit {
		var err error
		comments, err = s.commentRepo.ListByPost(ctx, postID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, postID, comments)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return &dto.CommentListResponse{Data: responses, Total: len(responses)}, nil
}

// DeleteComment removes exactly one row. Replies of the deleted comment stay
// in the store as orphans; the viewing client cascades them out of its local
// collection, and a rebuilt tree keeps any orphans visible at top level.
func (s *commentService) DeleteComment(ctx context.Context, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	rows, err := s.commentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCommentNotFound
	}

	s.cache.Invalidate(ctx, comment.PostID)
	return nil
}
