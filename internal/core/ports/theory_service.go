package ports

import (
	"context"

	"github.com/grandline/theories/internal/core/domain"
)

// TheoryInput carries the submitted fields for a create or update. CreatedBy
// is the session's username, set by the handler, never by the form.
type TheoryInput struct {
	Category  string
	Title     string
	Content   string
	CreatedBy string
}

type TheoryService interface {
	ListAll(ctx context.Context) ([]domain.Theory, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Theory, error)
	Get(ctx context.Context, id string) (*domain.Theory, error)
	Create(ctx context.Context, in TheoryInput) (*domain.Theory, error)
	// Update replaces category, title, content and re-stamps created_by to
	// the editing session's user.
	Update(ctx context.Context, id string, in TheoryInput) error
	// Delete removes by id; nonexistent or malformed ids are silent no-ops.
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]domain.Category, error)
}
