package adoptions

import "time"

// Status define el ciclo de vida de una solicitud de adopción.
// @Enum pending, accepted, rejected, adopted
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusAdopted  Status = "adopted"
)

// Estados terminales: rejected y adopted no admiten más transiciones.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusAdopted
}

// Action es la acción que un actor intenta aplicar sobre una solicitud.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Request representa una solicitud de adopción: un requester pide
// adoptar una mascota de un owner. El status solo lo muta este módulo.
type Request struct {
	ID string

	PetID       string
	OwnerID     string
	RequesterID string

	// Mensaje opcional del solicitante al dueño.
	Message string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StepResult es el resultado de un efecto secundario individual.
// Un paso fallido nunca revierte la transición principal.
type StepResult struct {
	Step  string
	OK    bool
	Error string
}

// Outcome es lo que devuelve cada acción del facade: el status nuevo
// (o el actual, si la transición no era legal) más el detalle por paso.
type Outcome struct {
	Status      Status
	SideEffects []StepResult
}

// AdoptionRecord es el asiento del libro de adopciones: se escribe una
// sola vez cuando una solicitud llega a adopted.
type AdoptionRecord struct {
	ID string

	RequestID string
	PetID     string
	OwnerID   string
	AdopterID string

	AdoptedAt time.Time
}
