package chats

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

// OpenForRequest crea el hilo asociado a una solicitud de adopción.
// Guardado contra duplicados: si ya existe un hilo para requestID,
// devuelve ese en lugar de crear otro.
func (s *Service) OpenForRequest(ctx context.Context, requestID, ownerID, requesterID string) (Thread, error) {
	requestID = strings.TrimSpace(requestID)
	ownerID = strings.TrimSpace(ownerID)
	requesterID = strings.TrimSpace(requesterID)

	if requestID == "" || ownerID == "" || requesterID == "" {
		return Thread{}, ErrInvalidInput
	}
	if ownerID == requesterID {
		return Thread{}, ErrInvalidInput
	}

	if existing, err := s.repo.FindThreadByRequest(ctx, requestID); err == nil {
		return existing, nil
	}

	now := s.now()
	t := Thread{
		ID:                uuid.NewString(),
		User1ID:           ownerID,
		User2ID:           requesterID,
		AdoptionRequestID: requestID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.CreateThread(ctx, t); err != nil {
		return Thread{}, err
	}
	return t, nil
}

// FindByRequest devuelve el hilo de una solicitud, o ErrNotFound si no
// existe (estado válido: sirve de guard para no duplicar hilos).
func (s *Service) FindByRequest(ctx context.Context, requestID string) (Thread, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return Thread{}, ErrInvalidInput
	}
	t, err := s.repo.FindThreadByRequest(ctx, requestID)
	if err != nil {
		return Thread{}, ErrNotFound
	}
	return t, nil
}

// Post agrega un mensaje de usuario. El autor debe pertenecer al hilo.
func (s *Service) Post(ctx context.Context, chatID, authorID, text string) (Message, error) {
	return s.post(ctx, chatID, authorID, text, false)
}

// PostSystem agrega un mensaje de sistema. Requiere que el hilo exista;
// nunca lo crea.
func (s *Service) PostSystem(ctx context.Context, chatID, authorID, text string) (Message, error) {
	return s.post(ctx, chatID, authorID, text, true)
}

func (s *Service) post(ctx context.Context, chatID, authorID, text string, system bool) (Message, error) {
	chatID = strings.TrimSpace(chatID)
	authorID = strings.TrimSpace(authorID)
	text = strings.TrimSpace(text)

	if chatID == "" || authorID == "" || text == "" {
		return Message{}, ErrInvalidInput
	}

	t, err := s.repo.GetThread(ctx, chatID)
	if err != nil {
		return Message{}, ErrNotFound
	}
	if !t.HasMember(authorID) {
		return Message{}, ErrForbidden
	}

	now := s.now()
	m := Message{
		ID:        uuid.NewString(),
		ChatID:    t.ID,
		AuthorID:  authorID,
		Text:      text,
		System:    system,
		Read:      false,
		CreatedAt: now,
	}

	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return Message{}, err
	}

	// Best-effort: si falla el touch, el hilo solo pierde orden por recencia.
	_ = s.repo.TouchThread(ctx, t.ID, now)

	return m, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Thread, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListThreadsByUser(ctx, userID)
}

// Messages lista los mensajes de un hilo al que readerID pertenece y los
// marca como leídos para ese lector.
func (s *Service) Messages(ctx context.Context, chatID, readerID string) ([]Message, error) {
	chatID = strings.TrimSpace(chatID)
	readerID = strings.TrimSpace(readerID)
	if chatID == "" || readerID == "" {
		return nil, ErrInvalidInput
	}

	t, err := s.repo.GetThread(ctx, chatID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !t.HasMember(readerID) {
		return nil, ErrForbidden
	}

	items, err := s.repo.ListMessages(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	_ = s.repo.MarkMessagesRead(ctx, t.ID, readerID)

	return items, nil
}
