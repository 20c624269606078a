// Package auth содержит логику бизнес-уровня для регистрации,
// авторизации и проверки JWT токенов пользователей.
package auth

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/course-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/course-platform/internal/lib/password"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/storage"
)

// Ошибки аутентификации.
var (
	// ErrEmailTaken возвращается при регистрации на занятый email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials возвращается при неверном email или пароле.
	// Текст одинаков для обоих случаев и не раскрывает, существует ли email.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной
// ролью user, возвращает JWT и созданного пользователя.
func (s *AuthService) Register(ctx context.Context, email, name, rawPassword string, gdprConsent, marketingConsent bool) (string, *models.User, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	user := models.User{
		Email:            email,
		Name:             name,
		PasswordHash:     hashed,
		Role:             models.RoleUser, // дефолтная роль при регистрации
		GDPRConsent:      gdprConsent,
		MarketingConsent: marketingConsent,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает claims с email и ролью.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

// GetProfile возвращает пользователя по email вместе с купленными материалами.
func (s *AuthService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetUserByEmail(ctx, email)
}
