package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pet-grooming-scheduler/internal/domain/finance"

	"github.com/google/uuid"
)

type financeRepo struct {
	mu   sync.RWMutex
	byID map[string]finance.Transaction
}

func NewFinanceRepo() finance.Ledger {
	return &financeRepo{
		byID: make(map[string]finance.Transaction),
	}
}

func (r *financeRepo) FindOpenByClient(ctx context.Context, clientID int64) ([]finance.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]finance.Transaction, 0)
	for _, t := range r.byID {
		if t.ClientID != clientID {
			continue
		}
		if t.Status != finance.StatusOpen {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *financeRepo) UpsertCycle(ctx context.Context, subscriptionID int64, date time.Time, tx finance.Transaction) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A lo sumo una fila abierta por (assinatura, inicio de ciclo): si ya
	// existe se actualiza monto y descripción en el lugar.
	for id, existing := range r.byID {
		if existing.SubscriptionID == nil || *existing.SubscriptionID != subscriptionID {
			continue
		}
		if !existing.Date.Equal(date) {
			continue
		}
		if existing.Status != finance.StatusOpen {
			continue
		}

		existing.Amount = tx.Amount
		existing.Description = tx.Description
		r.byID[id] = existing
		return id, nil
	}

	tx.ID = uuid.NewString()
	tx.SubscriptionID = &subscriptionID
	tx.Date = date
	r.byID[tx.ID] = tx
	return tx.ID, nil
}
