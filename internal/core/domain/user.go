package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("username already exists")
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials covers both "no such user" and "wrong password" so
// responses cannot be used to enumerate usernames.
var ErrInvalidCredentials = errors.New("incorrect username and/or password")

// ErrUnauthenticated signals a session-gated operation reached without an
// active session. The HTTP boundary maps it to a login redirect.
var ErrUnauthenticated = errors.New("no active session")

// User models a registered account. Usernames are stored lower-cased and are
// unique; the casing typed at registration is not retained.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
