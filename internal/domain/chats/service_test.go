package chats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	threads  map[string]Thread
	messages map[string][]Message
}

func newTestRepo() *testRepo {
	return &testRepo{
		threads:  map[string]Thread{},
		messages: map[string][]Message{},
	}
}

func (r *testRepo) CreateThread(ctx context.Context, t Thread) error {
	r.threads[t.ID] = t
	return nil
}

func (r *testRepo) GetThread(ctx context.Context, id string) (Thread, error) {
	t, ok := r.threads[id]
	if !ok {
		return Thread{}, errRepoNotFound
	}
	return t, nil
}

func (r *testRepo) FindThreadByRequest(ctx context.Context, requestID string) (Thread, error) {
	for _, t := range r.threads {
		if t.AdoptionRequestID == requestID {
			return t, nil
		}
	}
	return Thread{}, errRepoNotFound
}

func (r *testRepo) ListThreadsByUser(ctx context.Context, userID string) ([]Thread, error) {
	out := make([]Thread, 0)
	for _, t := range r.threads {
		if t.HasMember(userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) TouchThread(ctx context.Context, id string, at time.Time) error {
	t, ok := r.threads[id]
	if !ok {
		return errRepoNotFound
	}
	t.UpdatedAt = at
	r.threads[id] = t
	return nil
}

func (r *testRepo) CreateMessage(ctx context.Context, m Message) error {
	r.messages[m.ChatID] = append(r.messages[m.ChatID], m)
	return nil
}

func (r *testRepo) ListMessages(ctx context.Context, chatID string) ([]Message, error) {
	return r.messages[chatID], nil
}

func (r *testRepo) MarkMessagesRead(ctx context.Context, chatID, readerID string) error {
	items := r.messages[chatID]
	for i := range items {
		if items[i].AuthorID != readerID {
			items[i].Read = true
		}
	}
	r.messages[chatID] = items
	return nil
}

func TestService_OpenForRequest_Dedup(t *testing.T) {
	svc := NewService(newTestRepo())

	t1, err := svc.OpenForRequest(context.Background(), "req-1", "owner-1", "adopter-1")
	require.NoError(t, err)
	require.Equal(t, "req-1", t1.AdoptionRequestID)

	t2, err := svc.OpenForRequest(context.Background(), "req-1", "owner-1", "adopter-1")
	require.NoError(t, err)
	require.Equal(t, t1.ID, t2.ID, "same request must reuse the thread")
}

func TestService_OpenForRequest_SameUser(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.OpenForRequest(context.Background(), "req-1", "owner-1", "owner-1")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_PostSystem_RequiresThread(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.PostSystem(context.Background(), "chat-x", "owner-1", "hola")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_Post_MembershipEnforced(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	th, err := svc.OpenForRequest(context.Background(), "req-1", "owner-1", "adopter-1")
	require.NoError(t, err)

	_, err = svc.Post(context.Background(), th.ID, "intruso-1", "hola")
	require.ErrorIs(t, err, ErrForbidden)

	m, err := svc.Post(context.Background(), th.ID, "adopter-1", "hola")
	require.NoError(t, err)
	require.False(t, m.System)
	require.Equal(t, "adopter-1", m.AuthorID)
}

func TestService_Post_TouchesThread(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	th, err := svc.OpenForRequest(context.Background(), "req-1", "owner-1", "adopter-1")
	require.NoError(t, err)

	later := start.Add(time.Hour)
	svc.now = func() time.Time { return later }

	_, err = svc.Post(context.Background(), th.ID, "owner-1", "hola")
	require.NoError(t, err)
	require.Equal(t, later, repo.threads[th.ID].UpdatedAt)
}

func TestService_Messages_MarksRead(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	th, err := svc.OpenForRequest(context.Background(), "req-1", "owner-1", "adopter-1")
	require.NoError(t, err)

	_, err = svc.Post(context.Background(), th.ID, "owner-1", "hola")
	require.NoError(t, err)
	_, err = svc.Post(context.Background(), th.ID, "adopter-1", "qué tal")
	require.NoError(t, err)

	items, err := svc.Messages(context.Background(), th.ID, "adopter-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// quedaron marcados los mensajes ajenos al lector
	stored := repo.messages[th.ID]
	for _, m := range stored {
		if m.AuthorID == "owner-1" {
			require.True(t, m.Read)
		} else {
			require.False(t, m.Read)
		}
	}
}

func TestService_Messages_StrangerForbidden(t *testing.T) {
	svc := NewService(newTestRepo())

	th, err := svc.OpenForRequest(context.Background(), "req-1", "owner-1", "adopter-1")
	require.NoError(t, err)

	_, err = svc.Messages(context.Background(), th.ID, "intruso-1")
	require.ErrorIs(t, err, ErrForbidden)
}
