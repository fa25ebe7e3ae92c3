package thread

import "time"

// Comment is the wire representation of a single comment as the API hands it
// out. Username and AvatarURL are a snapshot of the author's identity at
// comment time. ParentID is nil for a top-level comment.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"date"`
	Text      string    `json:"text"`
}

// Node wraps a Comment with its replies. Nodes are built fresh by BuildTree
// from the flat collection on every change, never patched in place.
type Node struct {
	Comment
	Children []*Node
}
