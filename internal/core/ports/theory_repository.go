package ports

import (
	"context"

	"github.com/grandline/theories/internal/core/domain"
)

// TheoryRepository defines persistence operations for theory documents.
// Identifiers are the store's hex-encoded document ids; malformed ids map to
// domain.ErrInvalidTheoryID rather than faulting.
type TheoryRepository interface {
	Insert(ctx context.Context, t *domain.Theory) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Theory, error)
	// Update replaces the document's category, title, created_by, content and
	// updated_at fields. Last writer wins.
	Update(ctx context.Context, id string, t *domain.Theory) error
	// Delete removes the document. Deleting a nonexistent id is a no-op.
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]domain.Theory, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Theory, error)
}

// CategoryRepository lists the reference categories, ascending by name.
type CategoryRepository interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
}
