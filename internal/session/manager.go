package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// Duration is how long a login session stays valid.
	Duration = 7 * 24 * time.Hour
	// CookieName is the name of the session cookie.
	CookieName = "session"
)

// Claims represents the signed session cookie payload. The jti identifies the
// server-side session record; a token whose jti is no longer stored is revoked.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager signs and validates session tokens.
type Manager struct {
	secret []byte
}

// NewManager creates a session token manager with the given signing secret.
func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
	}
}

// Issue generates a new signed session token for the user.
// The session ID is returned separately for storage in Redis.
func (m *Manager) Issue(userID uint, username string) (sessionID string, token string, err error) {
	sessionID = uuid.New().String()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(Duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(m.secret)
	return sessionID, token, err
}

// Validate checks a session token signature and returns its claims.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ExtractSessionID extracts the session ID (JTI) from a token.
func (m *Manager) ExtractSessionID(tokenString string) (string, error) {
	claims, err := m.Validate(tokenString)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("session ID not found")
	}
	return claims.ID, nil
}
