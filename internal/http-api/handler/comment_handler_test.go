package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bloghub/internal/http-api/dto"
	"bloghub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, userID, postID, text string, parentID *string) (*dto.CommentResponse, error) {
	args := m.Called(userID, postID, text, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) ListByPost(ctx context.Context, postID string) (*dto.CommentListResponse, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentListResponse), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func setupCommentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser injects the identity the auth middleware would have set.
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func TestListByPost_Success(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.GET("/posts/:post_id/comments", handler.ListByPost)

	parentID := "c-1"
	listResp := &dto.CommentListResponse{
		Data: []dto.CommentResponse{
			{ID: "c-1", PostID: "post-1", Username: "alice", Date: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), Text: "first"},
			{ID: "c-2", PostID: "post-1", Username: "bob", ParentID: &parentID, Date: time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC), Text: "a reply"},
		},
		Total: 2,
	}
	mockService.On("ListByPost", "post-1").Return(listResp, nil)

	req, _ := http.NewRequest("GET", "/posts/post-1/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.CommentListResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 2, response.Total)
	assert.Len(t, response.Data, 2)
	// the wire shape stays flat: the reply carries a parent reference,
	// not a nested children array
	assert.Nil(t, response.Data[0].ParentID)
	assert.Equal(t, "c-1", *response.Data[1].ParentID)

	mockService.AssertExpectations(t)
}

func TestListByPost_PostNotFound(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.GET("/posts/:post_id/comments", handler.ListByPost)

	mockService.On("ListByPost", "missing").Return(nil, service.ErrPostNotFound)

	req, _ := http.NewRequest("GET", "/posts/missing/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestCreateComment_Success(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.POST("/posts/:post_id/comments", asUser("user-1", "user"), handler.Create)

	created := &dto.CommentResponse{
		ID:       "c-9",
		PostID:   "post-1",
		UserID:   "user-1",
		Username: "alice",
		Date:     time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		Text:     "hello",
	}
	mockService.On("CreateComment", "user-1", "post-1", "hello", (*string)(nil)).Return(created, nil)

	body, _ := json.Marshal(dto.CreateCommentDTO{Text: "hello"})
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.CommentResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "c-9", response.ID)
	assert.Equal(t, "alice", response.Username)

	mockService.AssertExpectations(t)
}

func TestCreateComment_ReplyWithParent(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.POST("/posts/:post_id/comments", asUser("user-2", "user"), handler.Create)

	parentID := "c-1"
	created := &dto.CommentResponse{
		ID:       "c-10",
		PostID:   "post-1",
		UserID:   "user-2",
		Username: "bob",
		ParentID: &parentID,
		Text:     "a reply",
	}
	mockService.On("CreateComment", "user-2", "post-1", "a reply",
		mock.MatchedBy(func(p *string) bool { return p != nil && *p == "c-1" })).
		Return(created, nil)

	body, _ := json.Marshal(dto.CreateCommentDTO{Text: "a reply", ParentID: &parentID})
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestCreateComment_ParentNotFound(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.POST("/posts/:post_id/comments", asUser("user-1", "user"), handler.Create)

	parentID := "gone"
	mockService.On("CreateComment", "user-1", "post-1", "orphan reply",
		mock.MatchedBy(func(p *string) bool { return p != nil && *p == "gone" })).
		Return(nil, service.ErrParentNotFound)

	body, _ := json.Marshal(dto.CreateCommentDTO{Text: "orphan reply", ParentID: &parentID})
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestCreateComment_MissingText(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.POST("/posts/:post_id/comments", asUser("user-1", "user"), handler.Create)

	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateComment")
}

func TestCreateComment_Unauthenticated(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	// no identity in context
	router.POST("/posts/:post_id/comments", handler.Create)

	body, _ := json.Marshal(dto.CreateCommentDTO{Text: "hello"})
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "CreateComment")
}

func TestDeleteComment_Success(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.DELETE("/comments/:id", asUser("admin-1", "admin"), handler.Delete)

	mockService.On("DeleteComment", "c-1").Return(nil)

	req, _ := http.NewRequest("DELETE", "/comments/c-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteComment_NotFound(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.DELETE("/comments/:id", asUser("admin-1", "admin"), handler.Delete)

	mockService.On("DeleteComment", "gone").Return(service.ErrCommentNotFound)

	req, _ := http.NewRequest("DELETE", "/comments/gone", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteComment_ServiceError(t *testing.T) {
	mockService := new(MockCommentService)
	handler := NewCommentHandler(mockService)
	router := setupCommentRouter()
	router.DELETE("/comments/:id", asUser("admin-1", "admin"), handler.Delete)

	mockService.On("DeleteComment", "c-1").Return(errors.New("db down"))

	req, _ := http.NewRequest("DELETE", "/comments/c-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockService.AssertExpectations(t)
}
