package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/witlog/witlog/internal/app/models"
)

// Session errors
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session expired")
)

// SessionConfig defines session token settings
type SessionConfig struct {
	SecretKey  string
	Expiration time.Duration
	Issuer     string
	CookieName string
}

// SessionService issues and validates the signed cookie that carries a
// viewer's identity between requests.
type SessionService struct {
	config SessionConfig
}

// NewSessionService creates a new session service
func NewSessionService(config SessionConfig) *SessionService {
	return &SessionService{config: config}
}

// SessionClaims defines session token content
type SessionClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CookieName returns the name of the session cookie.
func (s *SessionService) CookieName() string {
	return s.config.CookieName
}

// MaxAge returns the cookie lifetime in seconds.
func (s *SessionService) MaxAge() int {
	return int(s.config.Expiration.Seconds())
}

// IssueSession creates a signed session token for a user.
func (s *SessionService) IssueSession(user *models.User) (string, error) {
	expiry := time.Now().Add(s.config.Expiration)

	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSession validates a session token and returns its claims.
func (s *SessionService) ValidateSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
