package appointments

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment es la unidad atómica de servicio: un pet, una fecha, una hora.
// Una visita multi-pet se guarda como N filas (una por pet); PetIDs guarda
// el conjunto co-reservado completo con el pet propio primero, y de ahí
// sale la firma que permite reconstruir el grupo.
type Appointment struct {
	ID       int64
	ClientID int64
	PetIDs   []int64

	Date time.Time // solo fecha, UTC medianoche
	Time string    // "15:04", puede faltar en datos legados

	Type   BookingType
	Status Status

	// TotalValue refleja únicamente los servicios de esta fila. El total de
	// grupo es una vista derivada, nunca se escribe de vuelta en las filas.
	TotalValue float64
	AddOnValue float64

	SubscriptionID *int64
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrimaryPetID es el pet al que pertenece la fila (el primero del set).
func (a Appointment) PrimaryPetID() int64 {
	if len(a.PetIDs) == 0 {
		return 0
	}
	return a.PetIDs[0]
}

// Signature ordena los pet ids numéricamente y los une en una clave
// determinística. Es el único criterio de matching de grupos.
func (a Appointment) Signature() string {
	if len(a.PetIDs) == 0 {
		return ""
	}
	ids := make([]int64, len(a.PetIDs))
	copy(ids, a.PetIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, "-")
}

// ScheduledAt combina fecha y hora. Si la hora falta o no parsea,
// devuelve la fecha a medianoche y false.
func (a Appointment) ScheduledAt() (time.Time, bool) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(a.Time))
	if err != nil {
		return a.Date, false
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, a.Date.Location()), true
}
