package memory

import (
	"context"
	"sync"

	"pet-grooming-scheduler/internal/domain/subscriptions"
)

type subscriptionRepo struct {
	mu   sync.RWMutex
	seq  int64
	byID map[int64]subscriptions.Subscription
}

func NewSubscriptionRepo() subscriptions.Repository {
	return &subscriptionRepo{
		byID: make(map[int64]subscriptions.Subscription),
	}
}

func (r *subscriptionRepo) Create(ctx context.Context, s subscriptions.Subscription) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	s.ID = r.seq
	s.PetIDs = append([]int64(nil), s.PetIDs...)
	r.byID[s.ID] = s
	return s.ID, nil
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id int64) (subscriptions.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return subscriptions.Subscription{}, ErrNotFound
	}
	s.PetIDs = append([]int64(nil), s.PetIDs...)
	return s, nil
}
