package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-api/internal/domain/chats"
)

type chatsRepo struct {
	mu       sync.RWMutex
	threads  map[string]chats.Thread
	messages map[string][]chats.Message // por chatID, en orden de llegada
}

func NewChatsRepo() chats.Repository {
	return &chatsRepo{
		threads:  make(map[string]chats.Thread),
		messages: make(map[string][]chats.Message),
	}
}

func (r *chatsRepo) CreateThread(ctx context.Context, t chats.Thread) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("thread id required")
	}
	if _, exists := r.threads[t.ID]; exists {
		return errors.New("thread already exists")
	}
	r.threads[t.ID] = t
	return nil
}

func (r *chatsRepo) GetThread(ctx context.Context, id string) (chats.Thread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.threads[id]
	if !ok {
		return chats.Thread{}, ErrNotFound
	}
	return t, nil
}

func (r *chatsRepo) FindThreadByRequest(ctx context.Context, requestID string) (chats.Thread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if requestID == "" {
		return chats.Thread{}, ErrNotFound
	}
	for _, t := range r.threads {
		if t.AdoptionRequestID == requestID {
			return t, nil
		}
	}
	return chats.Thread{}, ErrNotFound
}

func (r *chatsRepo) ListThreadsByUser(ctx context.Context, userID string) ([]chats.Thread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]chats.Thread, 0)
	for _, t := range r.threads {
		if t.HasMember(userID) {
			out = append(out, t)
		}
	}

	// Más recientes primero (por última actividad)
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *chatsRepo) TouchThread(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.threads[id]
	if !ok {
		return ErrNotFound
	}
	t.UpdatedAt = at
	r.threads[id] = t
	return nil
}

func (r *chatsRepo) CreateMessage(ctx context.Context, m chats.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("message id required")
	}
	if _, ok := r.threads[m.ChatID]; !ok {
		return ErrNotFound
	}
	r.messages[m.ChatID] = append(r.messages[m.ChatID], m)
	return nil
}

func (r *chatsRepo) ListMessages(ctx context.Context, chatID string) ([]chats.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.messages[chatID]
	out := make([]chats.Message, len(items))
	copy(out, items)
	return out, nil
}

func (r *chatsRepo) MarkMessagesRead(ctx context.Context, chatID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.messages[chatID]
	for i, m := range items {
		if m.AuthorID != readerID && !m.Read {
			items[i].Read = true
		}
	}
	return nil
}
