package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, s Service) (int64, error)
	GetByID(ctx context.Context, id int64) (Service, error)
	List(ctx context.Context, onlyActive bool) ([]Service, error)
}
