package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-api/internal/domain/adoptions"
)

type adoptionsRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Request
}

func NewAdoptionsRepo() adoptions.Repository {
	return &adoptionsRepo{
		byID: make(map[string]adoptions.Request),
	}
}

func (r *adoptionsRepo) Create(ctx context.Context, req adoptions.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.byID[req.ID]; exists {
		return errors.New("request already exists")
	}
	r.byID[req.ID] = req
	return nil
}

func (r *adoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return adoptions.Request{}, ErrNotFound
	}
	return req, nil
}

// UpdateStatus es el compare-and-set del status: bajo el lock se compara
// contra `from` y solo entonces se escribe. Si otro caller ganó la
// carrera, devuelve ErrConcurrentModification.
func (r *adoptionsRepo) UpdateStatus(ctx context.Context, id string, from, to adoptions.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if req.Status != from {
		return adoptions.ErrConcurrentModification
	}

	req.Status = to
	req.UpdatedAt = at
	r.byID[id] = req
	return nil
}

func (r *adoptionsRepo) FindPending(ctx context.Context, petID, requesterID string) (adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.byID {
		if req.PetID == petID && req.RequesterID == requesterID && req.Status == adoptions.StatusPending {
			return req, nil
		}
	}
	return adoptions.Request{}, ErrNotFound
}

func (r *adoptionsRepo) ListByRequester(ctx context.Context, requesterID string) ([]adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, req := range r.byID {
		if req.RequesterID == requesterID {
			out = append(out, req)
		}
	}

	sortRequestsByCreatedAt(out)
	return out, nil
}

func (r *adoptionsRepo) ListByOwner(ctx context.Context, ownerID string) ([]adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, req := range r.byID {
		if req.OwnerID == ownerID {
			out = append(out, req)
		}
	}

	sortRequestsByCreatedAt(out)
	return out, nil
}

func sortRequestsByCreatedAt(items []adoptions.Request) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

type ledgerRepo struct {
	mu    sync.RWMutex
	items []adoptions.AdoptionRecord
}

func NewLedgerRepo() adoptions.LedgerRepository {
	return &ledgerRepo{}
}

func (r *ledgerRepo) Create(ctx context.Context, rec adoptions.AdoptionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	r.items = append(r.items, rec)
	return nil
}

func (r *ledgerRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.AdoptionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.AdoptionRecord, 0)
	for _, rec := range r.items {
		if rec.OwnerID == userID || rec.AdopterID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}
