package client

// http_client.go handles the REST client used by the bloghub CLI. It also
// implements thread.Store, so the thread commands can drive the comment
// tree against the live API.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"bloghub/internal/http-api/dto"
	"bloghub/internal/thread"

	"golang.org/x/time/rate"
)

const (
	// keep the CLI polite towards the API
	rateLimit = 10 // requests per second
	rateBurst = 20
)

type HTTPClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	token       string
}

// NewHTTPClient creates a REST client for the given API base URL.
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:     apiURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken sets the bearer token injected into every request.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// apiError is the {"error": "..."} body every endpoint returns on failure.
type apiError struct {
	Error string `json:"error"`
}

// do performs a rate-limited request and decodes the JSON response into out
// (which may be nil for endpoints whose body the caller doesn't need).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var apiErr apiError
		if json.NewDecoder(response.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", response.Status, apiErr.Error)
		}
		return fmt.Errorf("request failed with status: %s", response.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(out)
}

// --- auth ---

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	req := dto.LoginRequest{Username: username, Password: password}
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password, email string) error {
	req := dto.RegisterRequest{Username: username, Password: password, Email: email}
	return c.do(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	var resp dto.RefreshResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- posts ---

func (c *HTTPClient) ListPosts(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedPostResponse, error) {
	path := fmt.Sprintf("/api/posts?page=%d&page_size=%d", page, pageSize)
	if category != "" {
		path += "&category=" + url.QueryEscape(category)
	}
	var resp dto.PaginatedPostResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, id string) (*dto.PostResponse, error) {
	var resp dto.PostResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, req dto.CreatePostDTO) (*dto.PostResponse, error) {
	var resp dto.PostResponse
	if err := c.do(ctx, http.MethodPost, "/api/posts", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id string, req dto.UpdatePostDTO) (*dto.PostResponse, error) {
	var resp dto.PostResponse
	if err := c.do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil)
}

// --- photos ---

func (c *HTTPClient) ListPhotos(ctx context.Context, page, pageSize int) (*dto.PaginatedPhotoResponse, error) {
	path := fmt.Sprintf("/api/photos?page=%d&page_size=%d", page, pageSize)
	var resp dto.PaginatedPhotoResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreatePhoto(ctx context.Context, req dto.CreatePhotoDTO) (*dto.PhotoResponse, error) {
	var resp dto.PhotoResponse
	if err := c.do(ctx, http.MethodPost, "/api/photos", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeletePhoto(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/photos/"+url.PathEscape(id), nil, nil)
}

// --- notifications ---

// Notification is the wire shape of a reply notification.
type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	PostID    string    `json:"post_id"`
	CommentID string    `json:"comment_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *HTTPClient) ListNotifications(ctx context.Context) ([]Notification, error) {
	var resp struct {
		Data []Notification `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", id), nil, nil)
}

func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/read-all", nil, nil)
}

// --- comments (thread.Store implementation) ---

// CommentsForPost fetches the flat comment collection for a post.
func (c *HTTPClient) CommentsForPost(ctx context.Context, postID string) ([]thread.Comment, error) {
	var resp struct {
		Data []thread.Comment `json:"data"`
	}
	path := "/api/posts/" + url.PathEscape(postID) + "/comments"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateComment posts a comment or reply and returns the server-canonical
// record, including the assigned id and timestamp.
func (c *HTTPClient) CreateComment(ctx context.Context, postID, text string, parentID *string) (thread.Comment, error) {
	req := dto.CreateCommentDTO{Text: text, ParentID: parentID}
	var created thread.Comment
	path := "/api/posts/" + url.PathEscape(postID) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, req, &created); err != nil {
		return thread.Comment{}, err
	}
	return created, nil
}

// DeleteComment deletes exactly one comment row server-side.
func (c *HTTPClient) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(id), nil, nil)
}

var _ thread.Store = (*HTTPClient)(nil)
