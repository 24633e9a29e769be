package notifications

import "time"

// Type clasifica la notificación para que la UI decida icono/navegación.
type Type string

const (
	TypeAdoptionRequested Type = "adoption_requested"
	TypeAdoptionAccepted  Type = "adoption_accepted"
	TypeAdoptionRejected  Type = "adoption_rejected"
	TypeAdoptionCompleted Type = "adoption_completed"
)

// Notification es una entrada del feed de un usuario. Se escribe una
// sola vez; después de creada solo cambia el flag de lectura.
type Notification struct {
	ID     string
	UserID string

	Type    Type
	Title   string
	Message string

	// Datos estructurados para la UI (ids de solicitud, mascota, etc).
	Payload map[string]string

	// Referencia navegable opcional (p.ej. "/adoptions/{id}").
	ActionRef string

	Read bool

	CreatedAt time.Time
}
