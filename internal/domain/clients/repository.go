package clients

import "context"

type Repository interface {
	Create(ctx context.Context, c Client) (int64, error)
	GetByID(ctx context.Context, id int64) (Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, c Client) error
}
