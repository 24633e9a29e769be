package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
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

type PushInput struct {
	UserID    string
	Type      Type
	Title     string
	Message   string
	Payload   map[string]string
	ActionRef string
}

// Push crea una notificación (append-only, nunca se edita después).
func (s *Service) Push(ctx context.Context, in PushInput) (Notification, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return Notification{}, ErrInvalidInput
	}
	if in.Type == "" {
		return Notification{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Notification{}, ErrInvalidInput
	}

	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      in.Type,
		Title:     strings.TrimSpace(in.Title),
		Message:   strings.TrimSpace(in.Message),
		Payload:   in.Payload,
		ActionRef: strings.TrimSpace(in.ActionRef),
		Read:      false,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead marca como leída una notificación del propio usuario.
func (s *Service) MarkRead(ctx context.Context, id, userID string) (Notification, error) {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	if id == "" || userID == "" {
		return Notification{}, ErrInvalidInput
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, ErrNotFound
	}
	if n.UserID != userID {
		return Notification{}, ErrForbidden
	}

	// Idempotente
	if n.Read {
		return n, nil
	}

	if err := s.repo.MarkRead(ctx, n.ID); err != nil {
		return Notification{}, err
	}
	n.Read = true
	return n, nil
}
