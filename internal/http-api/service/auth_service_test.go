package service

import (
	"errors"
	"testing"
	"time"

	"bloghub/internal/config"
	"bloghub/internal/http-api/middleware/auth"
	"bloghub/internal/http-api/models"
	"bloghub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface.
// MockUserRepository lives in comment_service_test.go and is shared.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(refreshToken *models.RefreshToken) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(tokenString string) (*models.RefreshToken, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(tokenID string) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(tokenID string) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func newAuthService() (AuthService, *MockUserRepository, *MockRefreshTokenRepository) {
	users := new(MockUserRepository)
	tokens := new(MockRefreshTokenRepository)
	svc := NewAuthService(users, tokens, &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	return svc, users, tokens
}

func TestAuthRegister_Success(t *testing.T) {
	svc, users, _ := newAuthService()

	users.On("FindByUsername", "alice").Return(nil, errors.New("not found"))
	users.On("FindByEmail", "alice@example.com").Return(nil, errors.New("not found"))
	users.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register("alice", "password123", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
	assert.NoError(t, auth.VerifyPassword(user.Password, "password123"))

	users.AssertExpectations(t)
}

func TestAuthRegister_UsernameTaken(t *testing.T) {
	svc, users, _ := newAuthService()

	users.On("FindByUsername", "alice").Return(&models.User{Username: "alice"}, nil)

	_, err := svc.Register("alice", "password123", "alice@example.com")

	assert.ErrorIs(t, err, ErrNameInUse)
	users.AssertNotCalled(t, "Create")
}

func TestAuthRegister_EmailTaken(t *testing.T) {
	svc, users, _ := newAuthService()

	users.On("FindByUsername", "alice").Return(nil, errors.New("not found"))
	users.On("FindByEmail", "alice@example.com").Return(&models.User{Email: "alice@example.com"}, nil)

	_, err := svc.Register("alice", "password123", "alice@example.com")

	assert.ErrorIs(t, err, ErrEmailInUse)
	users.AssertNotCalled(t, "Create")
}

func TestAuthRegister_DuplicateRaceMapsToNameInUse(t *testing.T) {
	svc, users, _ := newAuthService()

	users.On("FindByUsername", "alice").Return(nil, errors.New("not found"))
	users.On("FindByEmail", "alice@example.com").Return(nil, errors.New("not found"))
	users.On("Create", mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicate)

	_, err := svc.Register("alice", "password123", "alice@example.com")

	assert.ErrorIs(t, err, ErrNameInUse)
}

func TestAuthLogin_Success(t *testing.T) {
	svc, users, tokens := newAuthService()

	hashed, _ := auth.HashPassword("password123")
	users.On("FindByUsername", "alice").Return(&models.User{
		ID:       "user-1",
		Username: "alice",
		Password: hashed,
		Role:     models.RoleAdmin,
	}, nil)
	tokens.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, refreshToken, user, err := svc.Login("alice", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, "user-1", user.ID)

	// the issued access token round-trips through validation with the role
	claims, err := svc.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc, users, tokens := newAuthService()

	hashed, _ := auth.HashPassword("password123")
	users.On("FindByUsername", "alice").Return(&models.User{
		ID:       "user-1",
		Username: "alice",
		Password: hashed,
	}, nil)

	_, _, _, err := svc.Login("alice", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "Create")
}

func TestAuthLogin_UnknownUser(t *testing.T) {
	svc, users, tokens := newAuthService()

	users.On("FindByUsername", "nobody").Return(nil, errors.New("not found"))

	_, _, _, err := svc.Login("nobody", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "Create")
}

func TestRefreshAccessToken_RotatesPair(t *testing.T) {
	svc, users, tokens := newAuthService()

	tokens.On("FindByToken", "old-refresh").Return(&models.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		Token:     "old-refresh",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Username: "alice", Role: models.RoleUser}, nil)
	tokens.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)
	tokens.On("Revoke", "rt-1").Return(nil)

	accessToken, refreshToken, err := svc.RefreshAccessToken("old-refresh")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, "old-refresh", refreshToken)

	tokens.AssertCalled(t, "Revoke", "rt-1")
}

func TestRefreshAccessToken_RevokedTokenRejected(t *testing.T) {
	svc, _, tokens := newAuthService()

	tokens.On("FindByToken", "revoked-token").Return(&models.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		Token:     "revoked-token",
		ExpiresAt: time.Now().Add(time.Hour),
		Revoked:   true,
	}, nil)

	_, _, err := svc.RefreshAccessToken("revoked-token")

	assert.Error(t, err)
	tokens.AssertNotCalled(t, "Create")
}

func TestRefreshAccessToken_ExpiredTokenDeleted(t *testing.T) {
	svc, _, tokens := newAuthService()

	tokens.On("FindByToken", "stale").Return(&models.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	tokens.On("Delete", "rt-1").Return(nil)

	_, _, err := svc.RefreshAccessToken("stale")

	assert.Error(t, err)
	tokens.AssertCalled(t, "Delete", "rt-1")
}

func TestValidateToken_GarbageRejected(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.ValidateToken("not-a-jwt")

	assert.Error(t, err)
}

func TestValidateToken_WrongSecretRejected(t *testing.T) {
	svc, users, tokens := newAuthService()

	hashed, _ := auth.HashPassword("password123")
	users.On("FindByUsername", "alice").Return(&models.User{
		ID:       "user-1",
		Username: "alice",
		Password: hashed,
	}, nil)
	tokens.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, _, _, err := svc.Login("alice", "password123")
	assert.NoError(t, err)

	other := NewAuthService(users, tokens, &config.Config{
		JWTSecret:       "a-different-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})

	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}
