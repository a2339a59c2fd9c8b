package memory

import (
	"context"
	"sort"
	"sync"

	"pet-grooming-scheduler/internal/domain/clients"
)

type clientRepo struct {
	mu   sync.RWMutex
	seq  int64
	byID map[int64]clients.Client
}

func NewClientRepo() clients.Repository {
	return &clientRepo{
		byID: make(map[int64]clients.Client),
	}
}

func (r *clientRepo) Create(ctx context.Context, c clients.Client) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	c.ID = r.seq
	r.byID[c.ID] = c
	return c.ID, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clients.Client{}, ErrNotFound
	}
	return c, nil
}

func (r *clientRepo) List(ctx context.Context) ([]clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clients.Client, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *clientRepo) Update(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}
