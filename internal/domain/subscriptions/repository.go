package subscriptions

import "context"

type Repository interface {
	Create(ctx context.Context, s Subscription) (int64, error)
	GetByID(ctx context.Context, id int64) (Subscription, error)
}
