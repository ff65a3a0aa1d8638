package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/grandline/theories/internal/core/domain"
	"github.com/grandline/theories/internal/core/ports"
)

// AuthService implements registration, login and the profile read.
type AuthService struct {
	users    ports.UserRepository
	theories ports.TheoryRepository
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, theories ports.TheoryRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, theories: theories, logger: logger}
}

// Register creates an account for the lower-cased username and hashes the
// password with bcrypt. A taken username returns domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	// The unique index on username closes the race between the lookup above
	// and this insert.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("user registered")
	return created, nil
}

// Login verifies credentials against the stored hash. A missing user and a
// wrong password return the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", username).Msg("user logged in")
	return user, nil
}

// Profile re-reads the account from the store and returns every theory in the
// system. There is no access control beyond "session must exist", which the
// caller enforces.
func (s *AuthService) Profile(ctx context.Context, sessionUsername string) (*domain.User, []domain.Theory, error) {
	if sessionUsername == "" {
		return nil, nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByUsername(ctx, sessionUsername)
	if err != nil {
		return nil, nil, err
	}

	theories, err := s.theories.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	return user, theories, nil
}
