package thread_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bloghub/internal/thread"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore mocks the remote comment store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CommentsForPost(ctx context.Context, postID string) ([]thread.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]thread.Comment), args.Error(1)
}

func (m *MockStore) CreateComment(ctx context.Context, postID, text string, parentID *string) (thread.Comment, error) {
	args := m.Called(ctx, postID, text, parentID)
	return args.Get(0).(thread.Comment), args.Error(1)
}

func (m *MockStore) DeleteComment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	viewer = thread.Session{UserID: "u-1", Username: "viewer", Authenticated: true}
	admin  = thread.Session{UserID: "u-0", Username: "admin", Authenticated: true, SuperUser: true}
	guest  = thread.Session{}
)

func openThread(t *testing.T, store thread.Store, seed []thread.Comment) *thread.Thread {
	t.Helper()
	if m, ok := store.(*MockStore); ok {
		m.On("CommentsForPost", mock.Anything, "post-1").Return(seed, nil).Once()
	}
	th, err := thread.Open(context.Background(), store, "post-1", nil)
	require.NoError(t, err)
	return th
}

func TestOpen_LoadsAndBuilds(t *testing.T) {
	store := new(MockStore)
	seed := []thread.Comment{
		comment("a", "", 0),
		comment("b", "a", time.Minute),
	}

	th := openThread(t, store, seed)

	assert.Equal(t, 2, th.Len())
	require.Len(t, th.Roots(), 1)
	assert.Equal(t, "a", th.Roots()[0].ID)
	store.AssertExpectations(t)
}

func TestOpen_StoreError(t *testing.T) {
	store := new(MockStore)
	store.On("CommentsForPost", mock.Anything, "post-1").Return(nil, errors.New("connection refused"))

	_, err := thread.Open(context.Background(), store, "post-1", nil)

	assert.Error(t, err)
}

func TestSubmit_RequiresAuthentication(t *testing.T) {
	store := new(MockStore)
	th := openThread(t, store, nil)

	err := th.Submit(context.Background(), guest, "hello")

	assert.ErrorIs(t, err, thread.ErrNotAuthenticated)
	assert.Equal(t, 0, th.Len())
	// no network call was made
	store.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_RejectsBlankText(t *testing.T) {
	store := new(MockStore)
	th := openThread(t, store, nil)

	err := th.Submit(context.Background(), viewer, "   \n\t ")

	assert.ErrorIs(t, err, thread.ErrEmptyText)
	store.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_AppendsServerRecordAndRebuilds(t *testing.T) {
	store := new(MockStore)
	th := openThread(t, store, []thread.Comment{comment("a", "", 0)})

	created := comment("server-id", "", time.Minute)
	created.Text = "trimmed"
	store.On("CreateComment", mock.Anything, "post-1", "trimmed", (*string)(nil)).Return(created, nil)

	err := th.Submit(context.Background(), viewer, "  trimmed  ")

	require.NoError(t, err)
	assert.Equal(t, 2, th.Len())
	require.Len(t, th.Roots(), 2)
	assert.Equal(t, "server-id", th.Roots()[1].ID)
	store.AssertExpectations(t)
}

func TestReply_AttachesUnderParent(t *testing.T) {
	store := new(MockStore)
	th := openThread(t, store, []thread.Comment{comment("a", "", 0)})

	created := comment("r", "a", time.Minute)
	store.On("CreateComment", mock.Anything, "post-1", "comment r", mock.MatchedBy(func(pid *string) bool {
		return pid != nil && *pid == "a"
	})).Return(created, nil)

	err := th.Reply(context.Background(), viewer, "a", "comment r")

	require.NoError(t, err)
	require.Len(t, th.Roots(), 1)
	require.Len(t, th.Roots()[0].Children, 1)
	assert.Equal(t, "r", th.Roots()[0].Children[0].ID)
}

func TestSubmit_StoreFailureLeavesCollectionUnchanged(t *testing.T) {
	store := new(MockStore)
	th := openThread(t, store, []thread.Comment{comment("a", "", 0)})

	store.On("CreateComment", mock.Anything, "post-1", "doomed", (*string)(nil)).
		Return(thread.Comment{}, errors.New("503 service unavailable"))

	err := th.Submit(context.Background(), viewer, "doomed")

	assert.Error(t, err)
	assert.Equal(t, 1, th.Len())
	require.Len(t, th.Roots(), 1)
	assert.Equal(t, "a", th.Roots()[0].ID)
}

func TestDelete_RequiresSuperUser(t *testing.T) {
	store := new(MockStore)
	th := openThread(t, store, []thread.Comment{comment("a", "", 0)})

	err := th.Delete(context.Background(), viewer, "a")

	assert.ErrorIs(t, err, thread.ErrNotAllowed)
	assert.Equal(t, 1, th.Len())
	store.AssertNotCalled(t, "DeleteComment", mock.Anything, mock.Anything)
}

func TestDelete_CascadesThroughDescendants(t *testing.T) {
	store := new(MockStore)
	seed := []thread.Comment{
		comment("a", "", 0),
		comment("b", "a", time.Minute),
		comment("c", "b", 2*time.Minute),
		comment("d", "", 3*time.Minute),
	}
	th := openThread(t, store, seed)

	// the store deletes only the single row; the thread prunes the subtree
	store.On("DeleteComment", mock.Anything, "b").Return(nil)

	err := th.Delete(context.Background(), admin, "b")

	require.NoError(t, err)
	assert.Equal(t, 2, th.Len())
	roots := th.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].ID)
	assert.Empty(t, roots[0].Children)
	assert.Equal(t, "d", roots[1].ID)
}

func TestDelete_IdempotentOnAlreadyPrunedID(t *testing.T) {
	store := new(MockStore)
	seed := []thread.Comment{
		comment("a", "", 0),
		comment("b", "a", time.Minute),
	}
	th := openThread(t, store, seed)

	store.On("DeleteComment", mock.Anything, "b").Return(nil).Twice()

	require.NoError(t, th.Delete(context.Background(), admin, "b"))
	assert.Equal(t, 1, th.Len())

	// second delete finds an empty descendant set and removes nothing
	require.NoError(t, th.Delete(context.Background(), admin, "b"))
	assert.Equal(t, 1, th.Len())
	store.AssertExpectations(t)
}

func TestDelete_StoreFailureKeepsSubtree(t *testing.T) {
	store := new(MockStore)
	seed := []thread.Comment{
		comment("a", "", 0),
		comment("b", "a", time.Minute),
	}
	th := openThread(t, store, seed)

	store.On("DeleteComment", mock.Anything, "a").Return(errors.New("500"))

	err := th.Delete(context.Background(), admin, "a")

	assert.Error(t, err)
	assert.Equal(t, 2, th.Len())
}

func TestToggleCollapse_NoRepliesIsNoop(t *testing.T) {
	store := new(MockStore)
	th := openThread(t, store, []thread.Comment{comment("a", "", 0)})

	assert.False(t, th.ToggleCollapse("a"))
	assert.False(t, th.Collapsed("a"))
	assert.False(t, th.ToggleCollapse("no-such-id"))
}

func TestCollapse_HidesSubtreeKeepsDescendantFlags(t *testing.T) {
	store := new(MockStore)
	seed := []thread.Comment{
		comment("a", "", 0),
		comment("b", "a", time.Minute),
		comment("c", "b", 2*time.Minute),
	}
	th := openThread(t, store, seed)

	// collapse the middle node first, then the root
	assert.True(t, th.ToggleCollapse("b"))
	assert.True(t, th.ToggleCollapse("a"))

	visible := th.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].Node.ID)
	assert.True(t, visible[0].Collapsed)
	assert.Equal(t, 1, visible[0].Replies)

	// re-expanding the root reveals b still collapsed
	assert.False(t, th.ToggleCollapse("a"))
	assert.True(t, th.Collapsed("b"))

	visible = th.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "b", visible[1].Node.ID)
	assert.True(t, visible[1].Collapsed)
}

// blockingStore parks CreateComment/DeleteComment until release is closed,
// simulating a slow network.
type blockingStore struct {
	release chan struct{}
	created thread.Comment
	err     error

	mu      sync.Mutex
	creates int
}

func (s *blockingStore) CommentsForPost(ctx context.Context, postID string) ([]thread.Comment, error) {
	return nil, nil
}

func (s *blockingStore) CreateComment(ctx context.Context, postID, text string, parentID *string) (thread.Comment, error) {
	s.mu.Lock()
	s.creates++
	s.mu.Unlock()
	<-s.release
	return s.created, s.err
}

func (s *blockingStore) DeleteComment(ctx context.Context, id string) error {
	<-s.release
	return s.err
}

func TestSubmit_SecondSubmitBlockedWhileInFlight(t *testing.T) {
	store := &blockingStore{
		release: make(chan struct{}),
		created: comment("new", "", time.Minute),
	}
	th, err := thread.Open(context.Background(), store, "post-1", nil)
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- th.Submit(context.Background(), viewer, "first")
	}()

	// wait for the first submit to reach the store
	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.creates == 1
	}, time.Second, time.Millisecond)

	err = th.Submit(context.Background(), viewer, "second")
	assert.ErrorIs(t, err, thread.ErrInFlight)

	close(store.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, th.Len())
}

func TestClose_IgnoresLateResponse(t *testing.T) {
	store := &blockingStore{
		release: make(chan struct{}),
		created: comment("late", "", time.Minute),
	}
	th, err := thread.Open(context.Background(), store, "post-1", nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- th.Submit(context.Background(), viewer, "abandoned")
	}()

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.creates == 1
	}, time.Second, time.Millisecond)

	// user navigated away while the request was in flight
	th.Close()
	close(store.release)

	assert.ErrorIs(t, <-done, thread.ErrClosed)
	assert.Equal(t, 0, th.Len())

	// everything after teardown is rejected outright
	assert.ErrorIs(t, th.Submit(context.Background(), viewer, "more"), thread.ErrClosed)
	assert.ErrorIs(t, th.Delete(context.Background(), admin, "x"), thread.ErrClosed)
}
