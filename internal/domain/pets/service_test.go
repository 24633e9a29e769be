package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet

	// rejectFull hace fallar SetStatus cuando la escritura trae
	// AdoptedBy/AdoptedAt (simula un backend que no los acepta).
	rejectFull bool
	setCalls   []StatusUpdate
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListAvailable(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.Status == StatusAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) SetStatus(ctx context.Context, id string, upd StatusUpdate) error {
	r.setCalls = append(r.setCalls, upd)

	if r.rejectFull && (upd.AdoptedBy != nil || upd.AdoptedAt != nil) {
		return errors.New("repo: unsupported columns")
	}

	p, ok := r.byID[id]
	if !ok {
		return errRepoNotFound
	}
	p.Status = upd.Status
	if upd.AdoptedBy != nil {
		p.AdoptedBy = upd.AdoptedBy
	}
	if upd.AdoptedAt != nil {
		p.AdoptedAt = upd.AdoptedAt
	}
	p.UpdatedAt = upd.UpdatedAt
	r.byID[id] = p
	return nil
}

func TestService_Create_Defaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:    "  Milo ",
		Species: "dog",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Status != StatusAvailable {
		t.Fatalf("expected status available, got %s", p.Status)
	}
	if p.Name != "Milo" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if p.CreatedAt != now || p.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_RequiresNameAndSpecies(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Species: "dog"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Milo"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without species, got %v", err)
	}
}

func TestService_MarkAdopted_WritesAdopterStamp(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	repo.byID["pet-1"] = Pet{ID: "pet-1", OwnerID: "owner-1", Status: StatusAvailable}

	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	if err := svc.MarkAdopted(context.Background(), "pet-1", "adopter-1", at); err != nil {
		t.Fatalf("MarkAdopted error: %v", err)
	}

	p := repo.byID["pet-1"]
	if p.Status != StatusAdopted {
		t.Fatalf("expected status adopted, got %s", p.Status)
	}
	if p.AdoptedBy == nil || *p.AdoptedBy != "adopter-1" {
		t.Fatalf("expected AdoptedBy=adopter-1, got %v", p.AdoptedBy)
	}
	if p.AdoptedAt == nil || !p.AdoptedAt.Equal(at) {
		t.Fatalf("expected AdoptedAt=%v, got %v", at, p.AdoptedAt)
	}
	if len(repo.setCalls) != 1 {
		t.Fatalf("expected single SetStatus call, got %d", len(repo.setCalls))
	}
}

func TestService_MarkAdopted_RetriesStatusOnly(t *testing.T) {
	repo := newTestRepo()
	repo.rejectFull = true
	svc := NewService(repo)
	repo.byID["pet-1"] = Pet{ID: "pet-1", OwnerID: "owner-1", Status: StatusAvailable}

	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	if err := svc.MarkAdopted(context.Background(), "pet-1", "adopter-1", at); err != nil {
		t.Fatalf("MarkAdopted error: %v", err)
	}

	if len(repo.setCalls) != 2 {
		t.Fatalf("expected retry (2 SetStatus calls), got %d", len(repo.setCalls))
	}
	second := repo.setCalls[1]
	if second.AdoptedBy != nil || second.AdoptedAt != nil {
		t.Fatalf("retry must write status only, got %+v", second)
	}

	p := repo.byID["pet-1"]
	if p.Status != StatusAdopted {
		t.Fatalf("expected status adopted after retry, got %s", p.Status)
	}
	if p.AdoptedBy != nil {
		t.Fatalf("status-only retry must not stamp adopter, got %v", p.AdoptedBy)
	}
}

func TestService_MarkAdopted_UnknownPet(t *testing.T) {
	svc := NewService(newTestRepo())

	err := svc.MarkAdopted(context.Background(), "nope", "adopter-1", time.Now())
	if err == nil {
		t.Fatalf("expected error for unknown pet")
	}
}
