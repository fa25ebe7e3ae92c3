package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bloghub/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// CommentCache keeps the flat comment list of a post in Redis so the
// read-heavy thread view doesn't hit Postgres on every load. Every write to
// a post's comments invalidates its key. A nil cache (Redis not configured)
// degrades to a pass-through.
type CommentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCommentCache(addr, password string, ttl time.Duration) (*CommentCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CommentCache{client: rdb, ttl: ttl}, nil
}

func commentKey(postID string) string {
	return fmt.Sprintf("comments:post:%s", postID)
}

// Get returns the cached list and whether it was present.
func (c *CommentCache) Get(ctx context.Context, postID string) ([]models.Comment, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, commentKey(postID)).Bytes()
	if err != nil {
		// redis.Nil or a transient failure, either way treat as a miss
		return nil, false
	}

	var comments []models.Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		return nil, false
	}
	return comments, true
}

func (c *CommentCache) Set(ctx context.Context, postID string, comments []models.Comment) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(comments)
	if err != nil {
		return
	}
	// best effort, a failed write just means a future cache miss
	c.client.Set(ctx, commentKey(postID), raw, c.ttl)
}

func (c *CommentCache) Invalidate(ctx context.Context, postID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, commentKey(postID))
}
