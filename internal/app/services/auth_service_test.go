package services

import (
	"context"
	"errors"
	"testing"

	"github.com/witlog/witlog/internal/pkg/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newMockUserStore()
	svc := NewAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "anna", "anna@example.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password stored in plain text")
	}

	logged, err := svc.Login(ctx, "anna", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("logged in as the wrong user: %d", logged.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	users := newMockUserStore()
	svc := NewAuthService(users)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@example.com", "password123"},
		{"bad username chars", "anna ivanova", "a@example.com", "password123"},
		{"bad email", "anna", "not-an-email", "password123"},
		{"short password", "anna", "a@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newMockUserStore()
	svc := NewAuthService(users)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "anna", "anna@example.com", "password123"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := svc.Register(ctx, "anna", "other@example.com", "password123")
	if !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newMockUserStore()
	svc := NewAuthService(users)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "anna", "anna@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, "anna", "wrong-password")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	users := newMockUserStore()
	svc := NewAuthService(users)

	// Unknown users get the same error as a wrong password.
	_, err := svc.Login(context.Background(), "ghost", "password123")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
