package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
	"github.com/witlog/witlog/internal/pkg/auth"
)

// AuthService defines the interface for identity operations
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userStore UserStore
}

// NewAuthService creates a new auth service instance
func NewAuthService(userStore UserStore) AuthService {
	return &authServiceImpl{userStore: userStore}
}

// validateCredentials checks the signup form fields.
func validateCredentials(username, email, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperrors.NewValidationError("username is required").WithField("username")
	}
	if len(username) > models.MaxUsernameLen {
		return apperrors.NewValidationError(
			fmt.Sprintf("username must be at most %d characters", models.MaxUsernameLen)).WithField("username")
	}
	for _, char := range username {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') || char == '_' || char == '-' || char == '.') {
			return apperrors.NewValidationError("username contains invalid characters").WithField("username")
		}
	}
	if !strings.Contains(email, "@") {
		return apperrors.NewValidationError("invalid email").WithField("email")
	}
	if len(password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters").WithField("password")
	}
	return nil
}

// Register creates a new user with a hashed password.
func (s *authServiceImpl) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks a username/password pair and returns the user.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
