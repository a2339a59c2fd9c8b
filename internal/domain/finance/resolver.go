package finance

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Resolver consulta el saldo pendiente de un cliente. Es puramente
// consultivo: nunca bloquea una transición, solo la anota.
type Resolver struct {
	ledger Ledger
}

func NewResolver(ledger Ledger) *Resolver {
	return &Resolver{ledger: ledger}
}

// Resolve devuelve las filas abiertas del cliente. Cliente sin deuda o sin
// movimientos => lista vacía, nunca error.
func (r *Resolver) Resolve(ctx context.Context, clientID int64) ([]Transaction, error) {
	if clientID <= 0 {
		return nil, ErrInvalidInput
	}
	rows, err := r.ledger.FindOpenByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Transaction{}
	}
	return rows, nil
}

// Total suma los montos de un conjunto de filas.
func Total(rows []Transaction) float64 {
	var sum float64
	for _, t := range rows {
		sum += t.Amount
	}
	return sum
}

// BalanceCache memoiza lookups de saldo por cliente dentro de un request
// (p.ej. al poblar el selector de clientes). No es un singleton: se crea
// uno por request y se descarta.
type BalanceCache struct {
	resolver *Resolver
	entries  map[int64][]Transaction
}

func NewBalanceCache(r *Resolver) *BalanceCache {
	return &BalanceCache{
		resolver: r,
		entries:  make(map[int64][]Transaction),
	}
}

func (c *BalanceCache) Resolve(ctx context.Context, clientID int64) ([]Transaction, error) {
	if rows, ok := c.entries[clientID]; ok {
		return rows, nil
	}
	rows, err := c.resolver.Resolve(ctx, clientID)
	if err != nil {
		return nil, err
	}
	c.entries[clientID] = rows
	return rows, nil
}
