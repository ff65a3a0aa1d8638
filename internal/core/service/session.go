package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/grandline/theories/internal/core/domain"
)

// SessionManager signs and verifies the current-user tokens held client-side
// in the session cookie. Tokens are HS256 JWTs carrying the username and an
// expiry; nothing is stored server-side.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

func (m *SessionManager) TTL() time.Duration { return m.ttl }

func (m *SessionManager) Issue(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify returns the username carried by a valid token. Expired, tampered or
// malformed tokens all come back as domain.ErrUnauthenticated.
func (m *SessionManager) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrUnauthenticated
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return "", domain.ErrUnauthenticated
	}
	return username, nil
}
