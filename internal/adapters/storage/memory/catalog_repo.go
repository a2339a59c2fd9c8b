package memory

import (
	"context"
	"sort"
	"sync"

	"pet-grooming-scheduler/internal/domain/catalog"
)

type catalogRepo struct {
	mu   sync.RWMutex
	seq  int64
	byID map[int64]catalog.Service
}

func NewCatalogRepo() catalog.Repository {
	return &catalogRepo{
		byID: make(map[int64]catalog.Service),
	}
}

func (r *catalogRepo) Create(ctx context.Context, s catalog.Service) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	s.ID = r.seq
	r.byID[s.ID] = s
	return s.ID, nil
}

func (r *catalogRepo) GetByID(ctx context.Context, id int64) (catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return catalog.Service{}, ErrNotFound
	}
	return s, nil
}

func (r *catalogRepo) List(ctx context.Context, onlyActive bool) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Service, 0, len(r.byID))
	for _, s := range r.byID {
		if onlyActive && !s.Active {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
