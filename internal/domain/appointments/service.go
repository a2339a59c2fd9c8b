package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-grooming-scheduler/internal/domain/catalog"
	"pet-grooming-scheduler/internal/domain/pets"
	"pet-grooming-scheduler/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBadState     = errors.New("invalid state")
)

// PetDirectory resuelve nombres de pets para la vista de grupo.
type PetDirectory interface {
	GetByID(ctx context.Context, id int64) (pets.Pet, error)
}

// PriceList resuelve los servicios elegidos en una reserva simple.
type PriceList interface {
	GetByID(ctx context.Context, id int64) (catalog.Service, error)
}

type Service struct {
	repo     Repository
	pets     PetDirectory
	prices   PriceList
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, petDir PetDirectory, prices PriceList, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		pets:     petDir,
		prices:   prices,
		notifier: notifier,
		now:      time.Now,
	}
}

type BookInput struct {
	ClientID   int64
	PetIDs     []int64
	Date       time.Time
	Time       string
	ServiceIDs []int64
	Notes      string
}

// Book crea una reserva simple: una fila por pet, cada una con el set
// co-reservado completo (pet propio primero) para que el matcher pueda
// reconstruir la visita. Valida todo antes de la primera escritura.
func (s *Service) Book(ctx context.Context, in BookInput) ([]Appointment, error) {
	if in.ClientID <= 0 || len(in.PetIDs) == 0 {
		return nil, ErrInvalidInput
	}
	if in.Date.IsZero() || strings.TrimSpace(in.Time) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := time.Parse(TimeLayout, strings.TrimSpace(in.Time)); err != nil {
		return nil, ErrInvalidInput
	}

	// Cada pet debe existir: nada de expansión parcial.
	for _, petID := range in.PetIDs {
		p, err := s.pets.GetByID(ctx, petID)
		if err != nil || p.ClientID != in.ClientID {
			return nil, ErrInvalidInput
		}
	}

	var total float64
	for _, svcID := range in.ServiceIDs {
		item, err := s.prices.GetByID(ctx, svcID)
		if err != nil {
			return nil, ErrInvalidInput
		}
		total += item.Price
	}

	now := s.now()
	out := make([]Appointment, 0, len(in.PetIDs))
	for i := range in.PetIDs {
		a := Appointment{
			ClientID:   in.ClientID,
			PetIDs:     rotatePetIDs(in.PetIDs, i),
			Date:       dateOnly(in.Date),
			Time:       strings.TrimSpace(in.Time),
			Type:       BookingSimple,
			Status:     StatusPending,
			TotalValue: total,
			Notes:      strings.TrimSpace(in.Notes),
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		id, err := s.repo.Create(ctx, a)
		if err != nil {
			return nil, err
		}
		a.ID = id
		out = append(out, a)

		s.notifier.Notify(ctx, notify.Notification{
			Hook:          notify.HookAppointmentSaved,
			AppointmentID: id,
			BookingType:   string(BookingSimple),
		})
	}

	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus aplica una transición de estado. Transición ilegal o estado
// desconocido => sin escritura y sin hook. Mismo estado => no-op idempotente.
// Al entrar a finalized o finalized_and_paid emite el hook de finalización.
func (s *Service) SetStatus(ctx context.Context, id int64, to Status) (Appointment, error) {
	if _, ok := ParseStatus(string(to)); !ok {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if a.Status == to {
		return a, nil
	}
	if !CanTransition(a.Status, to) {
		return Appointment{}, ErrBadState
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return Appointment{}, err
	}
	a.Status = to
	a.UpdatedAt = s.now()

	if to == StatusFinalized || to == StatusFinalizedAndPaid {
		s.notifier.Notify(ctx, notify.Notification{
			Hook:          notify.HookAppointmentFinalized,
			AppointmentID: a.ID,
			BookingType:   string(a.Type),
		})
	}

	return a, nil
}

// rotatePetIDs pone el pet i-ésimo al frente manteniendo el orden relativo
// del resto: la fila sabe cuál es su pet primario sin perder el set.
func rotatePetIDs(ids []int64, i int) []int64 {
	out := make([]int64, 0, len(ids))
	out = append(out, ids[i])
	for j, id := range ids {
		if j != i {
			out = append(out, id)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
