package ports

import (
	"context"
	"time"

	"github.com/grandline/theories/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// Profile re-derives the account from the store (the session is not
	// trusted for display) and returns the full, unfiltered theory list.
	Profile(ctx context.Context, sessionUsername string) (*domain.User, []domain.Theory, error)
}

// SessionManager issues and verifies the opaque current-user tokens carried
// in the session cookie. There is no server-side session table.
type SessionManager interface {
	Issue(username string) (string, error)
	Verify(token string) (string, error)
	TTL() time.Duration
}
