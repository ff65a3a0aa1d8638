package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/grandline/theories/internal/core/domain"
	"github.com/grandline/theories/internal/core/ports"
)

// TheoryService implements CRUD over theory documents plus the category
// reference listing.
type TheoryService struct {
	theories   ports.TheoryRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewTheoryService(theories ports.TheoryRepository, categories ports.CategoryRepository, logger zerolog.Logger) *TheoryService {
	return &TheoryService{theories: theories, categories: categories, logger: logger}
}

func (s *TheoryService) ListAll(ctx context.Context) ([]domain.Theory, error) {
	return s.theories.FindAll(ctx)
}

func (s *TheoryService) ListByCategory(ctx context.Context, category string) ([]domain.Theory, error) {
	return s.theories.FindByCategory(ctx, category)
}

func (s *TheoryService) Get(ctx context.Context, id string) (*domain.Theory, error) {
	return s.theories.FindByID(ctx, id)
}

func (s *TheoryService) Create(ctx context.Context, in ports.TheoryInput) (*domain.Theory, error) {
	if in.CreatedBy == "" {
		return nil, domain.ErrUnauthenticated
	}

	now := time.Now().UTC()
	theory := &domain.Theory{
		Category:  in.Category,
		Title:     in.Title,
		CreatedBy: in.CreatedBy,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.theories.Insert(ctx, theory)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to insert theory")
		return nil, err
	}
	theory.ID = id

	s.logger.Info().Str("theory_id", id).Str("category", in.Category).Str("created_by", in.CreatedBy).Msg("theory added")
	return theory, nil
}

// Update replaces every mutable field of the document. created_by is
// re-stamped to the editing session's user, so editing someone else's theory
// reassigns authorship. Last writer wins; there is no concurrency check.
func (s *TheoryService) Update(ctx context.Context, id string, in ports.TheoryInput) error {
	if in.CreatedBy == "" {
		return domain.ErrUnauthenticated
	}

	theory := &domain.Theory{
		Category:  in.Category,
		Title:     in.Title,
		CreatedBy: in.CreatedBy,
		Content:   in.Content,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.theories.Update(ctx, id, theory); err != nil {
		return err
	}

	s.logger.Info().Str("theory_id", id).Str("created_by", in.CreatedBy).Msg("theory updated")
	return nil
}

// Delete removes the theory. Nonexistent and malformed ids are treated the
// same way: nothing happens and no error surfaces.
func (s *TheoryService) Delete(ctx context.Context, id string) error {
	if err := s.theories.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInvalidTheoryID) {
			return nil
		}
		return err
	}

	s.logger.Info().Str("theory_id", id).Msg("theory deleted")
	return nil
}

func (s *TheoryService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListAll(ctx)
}
