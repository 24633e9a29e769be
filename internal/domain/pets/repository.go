package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	ListAvailable(ctx context.Context) ([]Pet, error)

	// SetStatus aplica una escritura parcial de adopción.
	SetStatus(ctx context.Context, id string, upd StatusUpdate) error
}
