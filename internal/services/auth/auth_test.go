package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/course-platform/internal/lib/password"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/storage"
)

// MockUserRepository реализует интерфейс UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func newTestMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "user@example.com" &&
			u.Role == models.RoleUser &&
			u.PasswordHash != "secret123"
	})).Return("uid-1", nil)

	svc := NewAuthService(repo, newTestMaker())
	token, user, err := svc.Register(context.Background(), "user@example.com", "User", "secret123", true, false)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.IsPremium)
	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("RegisterUser", mock.Anything, mock.Anything).Return("", storage.ErrEmailTaken)

	svc := NewAuthService(repo, newTestMaker())
	_, _, err := svc.Register(context.Background(), "user@example.com", "User", "secret123", true, false)

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&models.User{UID: "uid-1", Email: "user@example.com", PasswordHash: hash, Role: models.RoleUser}, nil)

	svc := NewAuthService(repo, newTestMaker())
	token, user, err := svc.Login(context.Background(), "user@example.com", "secret123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "uid-1", user.UID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&models.User{Email: "user@example.com", PasswordHash: hash}, nil)

	svc := NewAuthService(repo, newTestMaker())
	_, _, err = svc.Login(context.Background(), "user@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, storage.ErrUserNotFound)

	svc := NewAuthService(repo, newTestMaker())
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123")

	// Ответ одинаков для несуществующего email и неверного пароля.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), newTestMaker())

	token, err := newTestMaker().GenerateToken("user@example.com", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}
