package service

import (
	"errors"
	"time"

	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned for expired or malformed tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements login and token verification.
type AuthService struct {
	users repository.UserRepository
	cfg   config.JWTConfig
}

// NewAuthService creates an auth service.
func NewAuthService(users repository.UserRepository, cfg config.JWTConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a hash comparison so a missing user costs the same as a
		// wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000uGZwCZXHmGcXgVLjsEjRbVcJQxLpW1m"), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warnw("login_failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.ExpireHours) * time.Hour)
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	logger.Infow("login_succeeded", "user_id", user.ID, "username", user.Username)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ParseToken verifies a token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return &FieldError{Field: "new_password", Reason: "must be at least 8 characters"}
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(userID, string(hash))
}

// Profile returns the authenticated user.
func (s *AuthService) Profile(userID uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
