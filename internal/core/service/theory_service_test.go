package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/grandline/theories/internal/core/domain"
	"github.com/grandline/theories/internal/core/ports"
)

// stubTheoryRepo keeps theories in insertion order and mimics the store's id
// contract: ids are 24 hex characters, anything else is ErrInvalidTheoryID.
type stubTheoryRepo struct {
	seq      int
	theories map[string]*domain.Theory
	order    []string
}

func newStubTheoryRepo() *stubTheoryRepo {
	return &stubTheoryRepo{theories: make(map[string]*domain.Theory)}
}

func (r *stubTheoryRepo) checkID(id string) error {
	if len(id) != 24 {
		return domain.ErrInvalidTheoryID
	}
	return nil
}

func (r *stubTheoryRepo) Insert(_ context.Context, t *domain.Theory) (string, error) {
	r.seq++
	id := fmt.Sprintf("%024d", r.seq)
	clone := *t
	clone.ID = id
	r.theories[id] = &clone
	r.order = append(r.order, id)
	return id, nil
}

func (r *stubTheoryRepo) FindByID(_ context.Context, id string) (*domain.Theory, error) {
	if err := r.checkID(id); err != nil {
		return nil, err
	}
	t, ok := r.theories[id]
	if !ok {
		return nil, domain.ErrTheoryNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTheoryRepo) Update(_ context.Context, id string, t *domain.Theory) error {
	if err := r.checkID(id); err != nil {
		return err
	}
	existing, ok := r.theories[id]
	if !ok {
		return domain.ErrTheoryNotFound
	}
	existing.Category = t.Category
	existing.Title = t.Title
	existing.CreatedBy = t.CreatedBy
	existing.Content = t.Content
	existing.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *stubTheoryRepo) Delete(_ context.Context, id string) error {
	if err := r.checkID(id); err != nil {
		return err
	}
	if _, ok := r.theories[id]; ok {
		delete(r.theories, id)
		for i, existing := range r.order {
			if existing == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (r *stubTheoryRepo) FindAll(_ context.Context) ([]domain.Theory, error) {
	out := make([]domain.Theory, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.theories[id])
	}
	return out, nil
}

func (r *stubTheoryRepo) FindByCategory(_ context.Context, category string) ([]domain.Theory, error) {
	var out []domain.Theory
	for _, id := range r.order {
		if r.theories[id].Category == category {
			out = append(out, *r.theories[id])
		}
	}
	return out, nil
}

type stubCategoryRepo struct {
	categories []domain.Category
}

func (r *stubCategoryRepo) ListAll(_ context.Context) ([]domain.Category, error) {
	return r.categories, nil
}

func mustInsert(t *testing.T, repo *stubTheoryRepo, theory *domain.Theory) string {
	t.Helper()
	id, err := repo.Insert(context.Background(), theory)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	return id
}

func newTheoryService(repo *stubTheoryRepo) *TheoryService {
	return NewTheoryService(repo, &stubCategoryRepo{}, zerolog.Nop())
}

func TestTheoryService_Create_StampsAuthorFromSession(t *testing.T) {
	repo := newStubTheoryRepo()
	svc := newTheoryService(repo)

	created, err := svc.Create(context.Background(), ports.TheoryInput{
		Category:  "world",
		Title:     "T1",
		Content:   "C1",
		CreatedBy: "alice",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.CreatedBy != "alice" {
		t.Fatalf("expected created_by alice, got %q", created.CreatedBy)
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != created.ID {
		t.Fatalf("expected the new theory exactly once, got %+v", all)
	}
}

func TestTheoryService_Create_RequiresSession(t *testing.T) {
	svc := newTheoryService(newStubTheoryRepo())

	if _, err := svc.Create(context.Background(), ports.TheoryInput{Category: "world", Title: "T", Content: "C"}); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTheoryService_Update_ReplacesFieldsAndRestampsAuthor(t *testing.T) {
	repo := newStubTheoryRepo()
	svc := newTheoryService(repo)

	id := mustInsert(t, repo, &domain.Theory{Category: "world", Title: "old", CreatedBy: "alice", Content: "old content"})

	err := svc.Update(context.Background(), id, ports.TheoryInput{
		Category:  "crew",
		Title:     "new",
		Content:   "new content",
		CreatedBy: "bob",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Category != "crew" || got.Title != "new" || got.Content != "new content" {
		t.Fatalf("fields not replaced: %+v", got)
	}
	// Editing someone else's theory reassigns authorship to the editor.
	if got.CreatedBy != "bob" {
		t.Fatalf("expected created_by restamped to bob, got %q", got.CreatedBy)
	}
}

func TestTheoryService_Delete_NonexistentIsNoOp(t *testing.T) {
	repo := newStubTheoryRepo()
	svc := newTheoryService(repo)

	keep := mustInsert(t, repo, &domain.Theory{Category: "misc", Title: "keep", CreatedBy: "alice", Content: "C"})

	if err := svc.Delete(context.Background(), "00000000000000000000ffff"); err != nil {
		t.Fatalf("expected no error for nonexistent id, got %v", err)
	}
	if err := svc.Delete(context.Background(), "not-a-valid-id"); err != nil {
		t.Fatalf("expected malformed id to be swallowed, got %v", err)
	}

	all, _ := svc.ListAll(context.Background())
	if len(all) != 1 || all[0].ID != keep {
		t.Fatalf("record set altered: %+v", all)
	}
}

func TestTheoryService_Delete_RemovesExisting(t *testing.T) {
	repo := newStubTheoryRepo()
	svc := newTheoryService(repo)

	id := mustInsert(t, repo, &domain.Theory{Category: "fruit", Title: "gone", CreatedBy: "alice", Content: "C"})

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), id); err != domain.ErrTheoryNotFound {
		t.Fatalf("expected ErrTheoryNotFound after delete, got %v", err)
	}
}

func TestTheoryService_ListByCategory(t *testing.T) {
	repo := newStubTheoryRepo()
	svc := newTheoryService(repo)

	mustInsert(t, repo, &domain.Theory{Category: "world", Title: "W", CreatedBy: "a", Content: "C"})
	mustInsert(t, repo, &domain.Theory{Category: "crew", Title: "K", CreatedBy: "a", Content: "C"})

	worlds, err := svc.ListByCategory(context.Background(), "world")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(worlds) != 1 || worlds[0].Title != "W" {
		t.Fatalf("expected only world theories, got %+v", worlds)
	}
}

func TestTheoryService_Categories(t *testing.T) {
	cats := &stubCategoryRepo{categories: []domain.Category{
		{Name: "character"}, {Name: "crew"}, {Name: "fruit"},
		{Name: "misc"}, {Name: "story"}, {Name: "world"},
	}}
	svc := NewTheoryService(newStubTheoryRepo(), cats, zerolog.Nop())

	got, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Name > got[i].Name {
			t.Fatalf("categories not ascending: %+v", got)
		}
	}
}
