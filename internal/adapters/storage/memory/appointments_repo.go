package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-grooming-scheduler/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	seq  int64
	byID map[int64]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[int64]appointments.Appointment),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	a.ID = r.seq
	a.PetIDs = append([]int64(nil), a.PetIDs...)
	r.byID[a.ID] = a
	return a.ID, nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, ErrNotFound
	}
	return normalized(a), nil
}

func (r *appointmentRepo) ListByVisit(ctx context.Context, clientID int64, date time.Time, timeOfDay string) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	timeOfDay = strings.TrimSpace(timeOfDay)

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.ClientID != clientID {
			continue
		}
		if !a.Date.Equal(date) {
			continue
		}
		if strings.TrimSpace(a.Time) != timeOfDay {
			continue
		}
		out = append(out, normalized(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *appointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, normalized(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id int64, status appointments.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	r.byID[id] = a
	return nil
}

// normalized aplica NormalizeStatus en el borde de lectura y copia el slice
// de pets para que el caller no mute el estado del repo.
func normalized(a appointments.Appointment) appointments.Appointment {
	a.Status = appointments.NormalizeStatus(string(a.Status))
	a.PetIDs = append([]int64(nil), a.PetIDs...)
	return a
}
