package subscriptions

import "time"

type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyWeekly || f == FrequencyBiweekly
}

// Occurrences: visitas por ciclo de facturación.
func (f Frequency) Occurrences() int {
	if f == FrequencyBiweekly {
		return 2
	}
	return 4
}

// IntervalDays: separación entre visitas. Aritmética pura de fechas,
// sin feriados ni calendario.
func (f Frequency) IntervalDays() int {
	if f == FrequencyBiweekly {
		return 14
	}
	return 7
}

// Subscription es la plantilla de agendamiento y cobro recurrente.
// Inmutable después de creada: los precios resueltos quedan acá y en la
// fila agregada del libro financiero, nunca repartidos en las filas de
// atendimiento individuales.
type Subscription struct {
	ID       int64
	ClientID int64
	PetIDs   []int64

	Frequency Frequency
	StartDate time.Time // solo fecha, UTC medianoche
	Time      string    // "15:04"

	BaseEventPrice   float64 // precio de una visita, por pet (combo recurrente)
	PerPetCycleValue float64 // precio del ciclo por pet, ya con add-on y extra
	CycleTotalValue  float64 // total del ciclo, todos los pets

	AddOnValue      float64
	AddOnOccurrence int // 1..N, a qué visita del ciclo se asigna el add-on

	ExtraDescription string
	ExtraValue       float64

	CreatedAt time.Time
}
