package handler

import (
	"errors"
	"net/http"

	"bloghub/internal/http-api/dto"
	"bloghub/internal/http-api/middleware"
	"bloghub/internal/http-api/models"
	"bloghub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterPublicRoutes registers the read-side comment routes.
func (h *CommentHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/posts/:post_id/comments", h.ListByPost)
}

// RegisterProtectedRoutes registers write routes (parent group is already
// authenticated). Deleting is gated to the admin role: the store deletes
// only the single row, the client view cascades over descendants.
func (h *CommentHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/posts/:post_id/comments", h.Create)
	router.DELETE("/comments/:id", middleware.RequireRole(models.RoleAdmin), h.Delete)
}

// ListByPost retrieves the flat comment collection for a post, oldest first
// GET /api/posts/:post_id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID := c.Param("post_id")

	comments, err := h.commentService.ListByPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Create posts a new comment or reply on a post
// POST /api/posts/:post_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	postID := c.Param("post_id")

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userID.(string), postID, req.Text, req.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrParentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Delete removes a single comment row (admin only)
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.commentService.DeleteComment(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
