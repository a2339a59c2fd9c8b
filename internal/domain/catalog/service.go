package catalog

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Catalog struct {
	repo Repository
	now  func() time.Time
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name             string
	Price            float64
	DefaultRecurring bool
}

func (c *Catalog) Create(ctx context.Context, in CreateInput) (Service, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Service{}, ErrInvalidInput
	}
	if in.Price < 0 {
		return Service{}, ErrInvalidInput
	}

	now := c.now()
	s := Service{
		Name:             strings.TrimSpace(in.Name),
		Price:            in.Price,
		DefaultRecurring: in.DefaultRecurring,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	id, err := c.repo.Create(ctx, s)
	if err != nil {
		return Service{}, err
	}
	s.ID = id
	return s, nil
}

func (c *Catalog) GetByID(ctx context.Context, id int64) (Service, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *Catalog) List(ctx context.Context, onlyActive bool) ([]Service, error) {
	return c.repo.List(ctx, onlyActive)
}

// DefaultRecurring devuelve los ítems activos marcados como combo recurrente.
func (c *Catalog) DefaultRecurring(ctx context.Context) ([]Service, error) {
	items, err := c.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]Service, 0, 2)
	for _, s := range items {
		if s.DefaultRecurring {
			out = append(out, s)
		}
	}
	return out, nil
}

// BaseEventPrice suma el combo recurrente: precio de una visita, por pet.
func BaseEventPrice(items []Service) float64 {
	var sum float64
	for _, s := range items {
		sum += s.Price
	}
	return sum
}
