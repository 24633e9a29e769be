package chats

import "time"

// Thread es un hilo de chat 1 a 1. Si nació de una adopción, guarda la
// referencia a la solicitud; como mucho existe un hilo por solicitud.
type Thread struct {
	ID string

	User1ID string
	User2ID string

	// ID de la solicitud de adopción que originó el hilo (vacío si no aplica).
	AdoptionRequestID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message es un mensaje dentro de un hilo. System marca los mensajes
// generados por el sistema (p.ej. "solicitud aceptada").
type Message struct {
	ID     string
	ChatID string

	AuthorID string
	Text     string

	System bool
	Read   bool

	CreatedAt time.Time
}

// HasMember indica si userID participa del hilo.
func (t Thread) HasMember(userID string) bool {
	return userID != "" && (t.User1ID == userID || t.User2ID == userID)
}
