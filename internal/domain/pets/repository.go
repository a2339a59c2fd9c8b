package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) (int64, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	ListByClient(ctx context.Context, clientID int64) ([]Pet, error)
}
