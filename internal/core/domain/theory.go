package domain

import (
	"errors"
	"time"
)

var ErrTheoryNotFound = errors.New("theory not found")
var ErrInvalidTheoryID = errors.New("invalid theory id")

// CategoryNames is the fixed set of labels partitioning theories, in the
// ascending order selection lists are rendered in.
var CategoryNames = []string{"character", "crew", "fruit", "misc", "story", "world"}

// Theory is a user-submitted post classified under one category.
// CreatedBy always comes from the submitter's session, never from the form.
type Theory struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	CreatedBy string    `json:"created_by"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category is one entry of the read-only reference collection used to
// populate selection controls.
type Category struct {
	Name string `json:"name"`
}
