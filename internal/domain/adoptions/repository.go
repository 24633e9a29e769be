package adoptions

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)

	// UpdateStatus es la escritura condicional del status: solo commitea si
	// el status almacenado todavía es `from`. Si cambió por debajo, devuelve
	// ErrConcurrentModification; cualquier otro error es de infraestructura.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error

	// FindPending busca una solicitud pending para (petID, requesterID).
	FindPending(ctx context.Context, petID, requesterID string) (Request, error)

	ListByRequester(ctx context.Context, requesterID string) ([]Request, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Request, error)
}

// LedgerRepository persiste el libro de adopciones (append-only).
type LedgerRepository interface {
	Create(ctx context.Context, rec AdoptionRecord) error
	ListByUser(ctx context.Context, userID string) ([]AdoptionRecord, error)
}
