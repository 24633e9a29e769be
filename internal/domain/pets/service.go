package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Sex         string
	AgeMonths   int
	Description string
	PhotoURL    string
	City        string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.AgeMonths < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Species:     Species(strings.TrimSpace(in.Species)),
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         Sex(strings.TrimSpace(in.Sex)),
		AgeMonths:   in.AgeMonths,
		Description: strings.TrimSpace(in.Description),
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		City:        strings.TrimSpace(in.City),
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) ListAvailable(ctx context.Context) ([]Pet, error) {
	return s.repo.ListAvailable(ctx)
}

// MarkAdopted marca la mascota como adoptada por adopterID.
// Primero intenta escribir también AdoptedBy/AdoptedAt; si el store
// rechaza esa escritura, reintenta una vez solo con el status (shim de
// compatibilidad con backends que no aceptan los campos opcionales).
func (s *Service) MarkAdopted(ctx context.Context, petID, adopterID string, at time.Time) error {
	petID = strings.TrimSpace(petID)
	adopterID = strings.TrimSpace(adopterID)
	if petID == "" || adopterID == "" {
		return ErrInvalidInput
	}
	if at.IsZero() {
		at = s.now()
	}

	full := StatusUpdate{
		Status:    StatusAdopted,
		AdoptedBy: &adopterID,
		AdoptedAt: &at,
		UpdatedAt: at,
	}
	if err := s.repo.SetStatus(ctx, petID, full); err != nil {
		bare := StatusUpdate{Status: StatusAdopted, UpdatedAt: at}
		if err2 := s.repo.SetStatus(ctx, petID, bare); err2 != nil {
			return err2
		}
	}
	return nil
}
