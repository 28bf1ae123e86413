package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/witlog/witlog/internal/app/models"
)

func newTestSessionService(expiration time.Duration) *SessionService {
	return NewSessionService(SessionConfig{
		SecretKey:  "test-secret",
		Expiration: expiration,
		Issuer:     "witlog.test",
		CookieName: "witlog_session",
	})
}

func TestSessionRoundTrip(t *testing.T) {
	svc := newTestSessionService(time.Hour)
	user := &models.User{ID: 7, Username: "anna"}

	token, err := svc.IssueSession(user)
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	claims, err := svc.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("wrong user id in claims: %d", claims.UserID)
	}
	if claims.Username != user.Username {
		t.Fatalf("wrong username in claims: %s", claims.Username)
	}
}

func TestSessionExpired(t *testing.T) {
	svc := newTestSessionService(-time.Minute)
	token, err := svc.IssueSession(&models.User{ID: 1, Username: "anna"})
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	_, err = svc.ValidateSession(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestSessionWrongSecret(t *testing.T) {
	issuer := newTestSessionService(time.Hour)
	token, err := issuer.IssueSession(&models.User{ID: 1, Username: "anna"})
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	validator := NewSessionService(SessionConfig{
		SecretKey:  "a-different-secret",
		Expiration: time.Hour,
		Issuer:     "witlog.test",
		CookieName: "witlog_session",
	})
	if _, err := validator.ValidateSession(token); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestSessionGarbageToken(t *testing.T) {
	svc := newTestSessionService(time.Hour)
	if _, err := svc.ValidateSession("not-a-token"); err == nil {
		t.Fatal("garbage input must not validate")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash equals the plain password")
	}
	if !CheckPassword("password123", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong-password", hash) {
		t.Fatal("wrong password accepted")
	}
}
