package bus

import (
	"context"
	"sync"

	"pet-grooming-scheduler/internal/platform/logger"
	"pet-grooming-scheduler/internal/ports/notify"
)

// Bus es un fan-out en proceso para los hooks de agendamiento.
// Los suscriptores son best-effort: un consumidor que falla o panikea
// no afecta al emisor ni a los demás consumidores.
type Bus struct {
	mu   sync.RWMutex
	subs []notify.Notifier
	log  logger.Logger
}

func New(log logger.Logger) *Bus {
	return &Bus{log: log}
}

func (b *Bus) Subscribe(n notify.Notifier) {
	if n == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, n)
}

// Notify implementa notify.Notifier; los módulos de dominio publican acá.
func (b *Bus) Notify(ctx context.Context, n notify.Notification) {
	b.mu.RLock()
	subs := make([]notify.Notifier, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	if b.log != nil {
		b.log.Debug("hook published", map[string]any{
			"hook":           string(n.Hook),
			"appointment_id": n.AppointmentID,
			"booking_type":   n.BookingType,
		})
	}

	for _, sub := range subs {
		b.dispatch(ctx, sub, n)
	}
}

func (b *Bus) dispatch(ctx context.Context, sub notify.Notifier, n notify.Notification) {
	defer func() {
		if r := recover(); r != nil && b.log != nil {
			b.log.Error("hook subscriber panic", map[string]any{
				"hook":  string(n.Hook),
				"panic": r,
			})
		}
	}()
	sub.Notify(ctx, n)
}
