package chats

import (
	"context"
	"time"
)

type Repository interface {
	CreateThread(ctx context.Context, t Thread) error
	GetThread(ctx context.Context, id string) (Thread, error)
	FindThreadByRequest(ctx context.Context, requestID string) (Thread, error)
	ListThreadsByUser(ctx context.Context, userID string) ([]Thread, error)
	TouchThread(ctx context.Context, id string, at time.Time) error

	CreateMessage(ctx context.Context, m Message) error
	ListMessages(ctx context.Context, chatID string) ([]Message, error)

	// MarkMessagesRead marca como leídos los mensajes del hilo cuyo autor
	// no es readerID.
	MarkMessagesRead(ctx context.Context, chatID, readerID string) error
}
