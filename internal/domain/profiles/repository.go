package profiles

import "context"

type Repository interface {
	Upsert(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, userID string) (Profile, error)
}
