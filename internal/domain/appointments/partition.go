package appointments

import (
	"context"
	"sort"
	"time"
)

type Bucket string

const (
	BucketOverdue        Bucket = "overdue"
	BucketFinalizedToday Bucket = "finalized_today"
	BucketUpcoming       Bucket = "upcoming"
)

// Agenda es la vista operativa del día: cada atendimiento vivo cae en
// exactamente un balde; los terminales (pagos y cancelados) son historia
// y quedan afuera.
type Agenda struct {
	Overdue        []Appointment
	FinalizedToday []Appointment
	Upcoming       []Appointment
}

// Classify ubica un atendimiento en su balde para un "ahora" dado.
// Reglas:
//   - pending con fecha/hora ya pasada => overdue (sin hora: fecha < hoy)
//   - finalized con fecha de hoy => finalized_today
//   - todo lo demás vivo => upcoming
func Classify(a Appointment, now time.Time) (Bucket, bool) {
	st := NormalizeStatus(string(a.Status))
	if st.Terminal() {
		return "", false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if st == StatusFinalized {
		if a.Date.Equal(today) {
			return BucketFinalizedToday, true
		}
		return BucketUpcoming, true
	}

	if st == StatusPending {
		at, hasTime := a.ScheduledAt()
		if hasTime {
			if at.Before(now) {
				return BucketOverdue, true
			}
			return BucketUpcoming, true
		}
		if a.Date.Before(today) {
			return BucketOverdue, true
		}
		return BucketUpcoming, true
	}

	// Estado desconocido: fuera de la vista operativa.
	return "", false
}

// Agenda particiona todos los atendimientos para el "ahora" dado (zero =>
// reloj del servicio). Cada balde se ordena por fecha/hora descendente,
// con id descendente como desempate, para que lo más nuevo salga primero.
func (s *Service) Agenda(ctx context.Context, now time.Time) (Agenda, error) {
	if now.IsZero() {
		now = s.now()
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return Agenda{}, err
	}

	var out Agenda
	for _, a := range items {
		bucket, ok := Classify(a, now)
		if !ok {
			continue
		}
		switch bucket {
		case BucketOverdue:
			out.Overdue = append(out.Overdue, a)
		case BucketFinalizedToday:
			out.FinalizedToday = append(out.FinalizedToday, a)
		case BucketUpcoming:
			out.Upcoming = append(out.Upcoming, a)
		}
	}

	sortBucket(out.Overdue)
	sortBucket(out.FinalizedToday)
	sortBucket(out.Upcoming)

	return out, nil
}

func sortBucket(items []Appointment) {
	sort.Slice(items, func(i, j int) bool {
		ti, _ := items[i].ScheduledAt()
		tj, _ := items[j].ScheduledAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return items[i].ID > items[j].ID
	})
}
