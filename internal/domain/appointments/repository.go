package appointments

import (
	"context"
	"time"
)

// Repository normaliza Status en todo camino de lectura (NormalizeStatus),
// de modo que el dominio nunca ve grafías legadas.
type Repository interface {
	Create(ctx context.Context, a Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (Appointment, error)

	// ListByVisit devuelve los atendimientos del cliente en esa fecha y hora.
	// Scan acotado a un cliente: el costo es proporcional a su volumen diario.
	ListByVisit(ctx context.Context, clientID int64, date time.Time, timeOfDay string) ([]Appointment, error)

	// List devuelve todos los atendimientos (la vista operativa filtra después).
	List(ctx context.Context) ([]Appointment, error)

	UpdateStatus(ctx context.Context, id int64, status Status) error
}
