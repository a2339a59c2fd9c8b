package catalog

import "time"

// Service es un ítem del catálogo de servicios de estética (banho, tosa,
// hidratación, etc). Los ítems con DefaultRecurring forman el combo base
// de toda assinatura recurrente; su precio sumado es el precio por visita.
type Service struct {
	ID               int64
	Name             string
	Price            float64
	DefaultRecurring bool
	Active           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
