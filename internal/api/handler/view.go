package handler

import (
	"github.com/grandline/theories/internal/core/domain"
	"github.com/grandline/theories/internal/reference"
)

// Page is the view model handed to every template. Handlers fill only the
// fields their page needs.
type Page struct {
	Title    string
	Flash    string
	Username string // session user, empty when anonymous
	Message  string // error page detail

	Theories   []domain.Theory
	Categories []domain.Category
	Reference  []reference.Theory
	Theory     *domain.Theory
}
