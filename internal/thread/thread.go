package thread

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

var (
	ErrNotAuthenticated = errors.New("you must be signed in to comment")
	ErrNotAllowed       = errors.New("superuser privileges required")
	ErrEmptyText        = errors.New("comment text is empty")
	ErrInFlight         = errors.New("a previous request is still in flight")
	ErrClosed           = errors.New("thread view has been closed")
)

// Store is the remote comment store a Thread talks to. The server side of
// DeleteComment removes exactly one row; expunging the descendant subtree
// from the local view is this package's responsibility.
type Store interface {
	CommentsForPost(ctx context.Context, postID string) ([]Comment, error)
	CreateComment(ctx context.Context, postID, text string, parentID *string) (Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// Session carries the viewer's identity and privileges. It is passed
// explicitly into every mutating operation rather than read from ambient
// state, which makes each authorization check a plain precondition.
type Session struct {
	UserID        string
	Username      string
	Authenticated bool
	SuperUser     bool
}

// Thread owns the comment collection for a single post view. The derived
// forest is rebuilt from the flat collection after every confirmed mutation.
// Store failures leave the collection in its last-known-good state.
type Thread struct {
	store  Store
	postID string
	logger *slog.Logger

	mu        sync.Mutex
	comments  []Comment
	roots     []*Node
	collapsed map[string]bool
	inFlight  map[string]bool
	closed    bool
}

// Open loads the post's comments from the store and builds the initial tree.
func Open(ctx context.Context, store Store, postID string, logger *slog.Logger) (*Thread, error) {
	if logger == nil {
		logger = slog.Default()
	}

	comments, err := store.CommentsForPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("load comments for post %s: %w", postID, err)
	}

	return &Thread{
		store:     store,
		postID:    postID,
		logger:    logger,
		comments:  comments,
		roots:     BuildTree(comments),
		collapsed: make(map[string]bool),
		inFlight:  make(map[string]bool),
	}, nil
}

// PostID returns the id of the post this thread belongs to.
func (t *Thread) PostID() string {
	return t.postID
}

// Len returns the size of the flat comment collection.
func (t *Thread) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.comments)
}

// Roots returns the current forest of top-level nodes.
func (t *Thread) Roots() []*Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.roots
}

// Visible returns the flat render list for the current collapse state.
func (t *Thread) Visible() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Flatten(t.roots, t.collapsed)
}

// Submit posts a new top-level comment. The caller must be authenticated and
// the text must be non-empty after trimming; both are checked before any
// network call. A second Submit while one is outstanding is rejected.
func (t *Thread) Submit(ctx context.Context, sess Session, text string) error {
	return t.submit(ctx, sess, text, nil)
}

// Reply posts a reply under parentID. The parent id is trusted to come from
// a rendered node; the server re-validates it.
func (t *Thread) Reply(ctx context.Context, sess Session, parentID, text string) error {
	return t.submit(ctx, sess, text, &parentID)
}

func (t *Thread) submit(ctx context.Context, sess Session, text string, parentID *string) error {
	if !sess.Authenticated {
		return ErrNotAuthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}

	key := "submit"
	if parentID != nil {
		key = "reply:" + *parentID
	}
	if err := t.begin(key); err != nil {
		return err
	}

	created, err := t.store.CreateComment(ctx, t.postID, text, parentID)

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, key)
	if t.closed {
		// view torn down while the request was in flight; drop the result
		return ErrClosed
	}
	if err != nil {
		t.logger.Error("create comment failed", "post_id", t.postID, "error", err)
		return fmt.Errorf("create comment: %w", err)
	}

	t.comments = append(t.comments, created)
	t.roots = BuildTree(t.comments)
	return nil
}

// Delete asks the store to remove the single comment row, then cascades
// locally: the comment and every descendant are expunged from the flat
// collection in one pass and the tree is rebuilt. The cascade is client-side
// on purpose; the store does not delete children and the view must not keep
// showing orphaned replies. Deleting an id that is already gone locally
// removes nothing further.
func (t *Thread) Delete(ctx context.Context, sess Session, id string) error {
	if !sess.SuperUser {
		return ErrNotAllowed
	}

	key := "delete:" + id
	if err := t.begin(key); err != nil {
		return err
	}

	err := t.store.DeleteComment(ctx, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, key)
	if t.closed {
		return ErrClosed
	}
	if err != nil {
		t.logger.Error("delete comment failed", "comment_id", id, "error", err)
		return fmt.Errorf("delete comment: %w", err)
	}

	t.comments = Prune(t.comments, id)
	t.roots = BuildTree(t.comments)
	t.dropStaleCollapseFlags()
	return nil
}

// begin marks an action key as in flight, rejecting duplicates and closed
// threads. The mutex is not held across the store call itself.
func (t *Thread) begin(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if t.inFlight[key] {
		return ErrInFlight
	}
	t.inFlight[key] = true
	return nil
}

// ToggleCollapse flips the collapse flag for id and reports the new state.
// Toggling a node with no replies is a no-op. Collapsing hides the whole
// subtree without touching descendant flags.
func (t *Thread) ToggleCollapse(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := findNode(t.roots, id)
	if n == nil || len(n.Children) == 0 {
		return false
	}
	t.collapsed[id] = !t.collapsed[id]
	return t.collapsed[id]
}

// Collapsed reports whether the node with the given id is collapsed.
func (t *Thread) Collapsed(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.collapsed[id]
}

// Close marks the thread view as torn down. In-flight store responses that
// land after Close are ignored and no further mutation is possible.
func (t *Thread) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// dropStaleCollapseFlags removes flags for ids no longer in the collection.
// Callers hold t.mu.
func (t *Thread) dropStaleCollapseFlags() {
	present := make(map[string]bool, len(t.comments))
	for i := range t.comments {
		present[t.comments[i].ID] = true
	}
	for id := range t.collapsed {
		if !present[id] {
			delete(t.collapsed, id)
		}
	}
}

func findNode(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := findNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}
