package chats

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/chats/{chatID}", func(cr chi.Router) {
		cr.Get("/messages", listMessagesHandler(svc))
		cr.Post("/messages", postMessageHandler(svc))
	})

	r.Get("/me/chats", listMyChatsHandler(svc))
}

type postMessageRequest struct {
	Text string `json:"text"`
}

type threadResponse struct {
	ID                string    `json:"id"`
	User1ID           string    `json:"user1_id"`
	User2ID           string    `json:"user2_id"`
	AdoptionRequestID string    `json:"adoption_request_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	System    bool      `json:"system"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func listMyChatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]threadResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toThreadResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listMessagesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		chatID := chi.URLParam(r, "chatID")
		items, err := svc.Messages(r.Context(), chatID, claims.UserID)
		if err != nil {
			writeChatError(w, err)
			return
		}

		out := make([]messageResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMessageResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func postMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req postMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		chatID := chi.URLParam(r, "chatID")
		m, err := svc.Post(r.Context(), chatID, claims.UserID, req.Text)
		if err != nil {
			writeChatError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toMessageResponse(m))
	}
}

func writeChatError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	case ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toThreadResponse(t Thread) threadResponse {
	return threadResponse{
		ID:                t.ID,
		User1ID:           t.User1ID,
		User2ID:           t.User2ID,
		AdoptionRequestID: t.AdoptionRequestID,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toMessageResponse(m Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		AuthorID:  m.AuthorID,
		Text:      m.Text,
		System:    m.System,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
