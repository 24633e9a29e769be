package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption-api/internal/domain/chats"
)

type ChatsRepo struct {
	db *sql.DB
}

func NewChatsRepo(db *sql.DB) *ChatsRepo {
	return &ChatsRepo{db: db}
}

func (r *ChatsRepo) CreateThread(ctx context.Context, t chats.Thread) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_threads (
			id, user1_id, user2_id, adoption_request_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		t.ID,
		t.User1ID,
		t.User2ID,
		nullIfEmpty(t.AdoptionRequestID),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *ChatsRepo) GetThread(ctx context.Context, id string) (chats.Thread, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return chats.Thread{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user1_id, user2_id, adoption_request_id, created_at, updated_at
		FROM chat_threads
		WHERE id = $1
	`, id)

	return scanThread(row)
}

func (r *ChatsRepo) FindThreadByRequest(ctx context.Context, requestID string) (chats.Thread, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return chats.Thread{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user1_id, user2_id, adoption_request_id, created_at, updated_at
		FROM chat_threads
		WHERE adoption_request_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, requestID)

	return scanThread(row)
}

func (r *ChatsRepo) ListThreadsByUser(ctx context.Context, userID string) ([]chats.Thread, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user1_id, user2_id, adoption_request_id, created_at, updated_at
		FROM chat_threads
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chats.Thread, 0)
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ChatsRepo) TouchThread(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE chat_threads SET updated_at = $2 WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChatsRepo) CreateMessage(ctx context.Context, m chats.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (
			id, chat_id, author_id, text, system_message, read, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		m.ID,
		m.ChatID,
		m.AuthorID,
		m.Text,
		m.System,
		m.Read,
		m.CreatedAt,
	)
	return err
}

func (r *ChatsRepo) ListMessages(ctx context.Context, chatID string) ([]chats.Message, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, author_id, text, system_message, read, created_at
		FROM chat_messages
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chats.Message, 0)
	for rows.Next() {
		var m chats.Message
		if err := rows.Scan(
			&m.ID,
			&m.ChatID,
			&m.AuthorID,
			&m.Text,
			&m.System,
			&m.Read,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ChatsRepo) MarkMessagesRead(ctx context.Context, chatID, readerID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE chat_messages
		SET read = TRUE
		WHERE chat_id = $1 AND author_id <> $2 AND read = FALSE
	`, chatID, readerID)
	return err
}

func scanThread(row rowScanner) (chats.Thread, error) {
	var t chats.Thread
	var requestID sql.NullString

	if err := row.Scan(
		&t.ID,
		&t.User1ID,
		&t.User2ID,
		&requestID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return chats.Thread{}, ErrNotFound
		}
		return chats.Thread{}, err
	}

	if requestID.Valid {
		t.AdoptionRequestID = requestID.String
	}
	return t, nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
