package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-grooming-scheduler/internal/domain/appointments"
	"pet-grooming-scheduler/internal/domain/catalog"
	"pet-grooming-scheduler/internal/domain/clients"
	"pet-grooming-scheduler/internal/domain/finance"
	"pet-grooming-scheduler/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// AppointmentStore es la porción del repo de atendimientos que el expander
// necesita para materializar las visitas del ciclo.
type AppointmentStore interface {
	Create(ctx context.Context, a appointments.Appointment) (int64, error)
}

// PriceSource resuelve el combo recurrente del catálogo.
type PriceSource interface {
	DefaultRecurring(ctx context.Context) ([]catalog.Service, error)
}

// ClientDirectory valida que el cliente exista antes de escribir.
type ClientDirectory interface {
	GetByID(ctx context.Context, id int64) (clients.Client, error)
}

type Service struct {
	repo     Repository
	appts    AppointmentStore
	prices   PriceSource
	ledger   finance.Ledger
	clients  ClientDirectory
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, appts AppointmentStore, prices PriceSource,
	ledger finance.Ledger, clientDir ClientDirectory, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		appts:    appts,
		prices:   prices,
		ledger:   ledger,
		clients:  clientDir,
		notifier: notifier,
		now:      time.Now,
	}
}

type AddOnInput struct {
	Value float64
}

type ExtraInput struct {
	Description string
	Value       float64
}

type ExpandInput struct {
	ClientID  int64
	PetIDs    []int64
	StartDate time.Time
	Time      string
	Frequency Frequency

	AddOn           *AddOnInput
	AddOnOccurrence int // 1..N; default 1, se clampa a N

	Extra *ExtraInput

	// Overrides opcionales (0 => calcular).
	PerPetCycleValue float64
	CycleTotalValue  float64
}

type ExpandResult struct {
	Subscription   Subscription
	AppointmentIDs []int64
	TransactionID  string
}

// Expand convierte una solicitud de assinatura en N atendimientos por pet,
// una Subscription y exactamente una fila agregada del libro financiero.
//
// La validación completa ocurre antes de la primera escritura: o se expande
// todo o no se escribe nada. Las escrituras posteriores son una secuencia
// best-effort sin transacción multi-fila (ver comentario en UpsertCycle).
func (s *Service) Expand(ctx context.Context, in ExpandInput) (ExpandResult, error) {
	if in.ClientID <= 0 || len(in.PetIDs) == 0 {
		return ExpandResult{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() || strings.TrimSpace(in.Time) == "" {
		return ExpandResult{}, ErrInvalidInput
	}
	if _, err := time.Parse(appointments.TimeLayout, strings.TrimSpace(in.Time)); err != nil {
		return ExpandResult{}, ErrInvalidInput
	}
	if !in.Frequency.Valid() {
		return ExpandResult{}, ErrInvalidInput
	}
	if _, err := s.clients.GetByID(ctx, in.ClientID); err != nil {
		return ExpandResult{}, ErrInvalidInput
	}

	n := in.Frequency.Occurrences()
	interval := in.Frequency.IntervalDays()

	// Precio base por visita: suma del combo recurrente del catálogo.
	combo, err := s.prices.DefaultRecurring(ctx)
	if err != nil {
		return ExpandResult{}, err
	}
	basePrice := catalog.BaseEventPrice(combo)

	var addOnValue float64
	if in.AddOn != nil {
		addOnValue = in.AddOn.Value
	}
	addOnOccurrence := in.AddOnOccurrence
	if addOnOccurrence < 1 {
		addOnOccurrence = 1
	}
	if addOnOccurrence > n {
		addOnOccurrence = n
	}

	var extraDesc string
	var extraValue float64
	if in.Extra != nil {
		extraDesc = strings.TrimSpace(in.Extra.Description)
		extraValue = in.Extra.Value
	}

	// Precio de ciclo por pet: override explícito o base × N, más el add-on
	// y el extra (una vez por pet por ciclo).
	perPet := in.PerPetCycleValue
	if perPet <= 0 {
		perPet = basePrice * float64(n)
	}
	perPet += addOnValue + extraValue

	// Total del ciclo: override explícito o per-pet × cantidad de pets.
	// Con total explícito, el per-pet se recalcula en partes iguales: esta
	// versión no soporta precios distintos por pet dentro de una assinatura.
	cycleTotal := in.CycleTotalValue
	if cycleTotal <= 0 {
		cycleTotal = perPet * float64(len(in.PetIDs))
	} else {
		perPet = cycleTotal / float64(len(in.PetIDs))
	}

	now := s.now()
	sub := Subscription{
		ClientID:         in.ClientID,
		PetIDs:           append([]int64(nil), in.PetIDs...),
		Frequency:        in.Frequency,
		StartDate:        dateOnly(in.StartDate),
		Time:             strings.TrimSpace(in.Time),
		BaseEventPrice:   basePrice,
		PerPetCycleValue: perPet,
		CycleTotalValue:  cycleTotal,
		AddOnValue:       addOnValue,
		AddOnOccurrence:  addOnOccurrence,
		ExtraDescription: extraDesc,
		ExtraValue:       extraValue,
		CreatedAt:        now,
	}

	subID, err := s.repo.Create(ctx, sub)
	if err != nil {
		return ExpandResult{}, err
	}
	sub.ID = subID

	// N atendimientos por pet, espaciados interval días. El add-on va solo
	// en la visita configurada, una única vez por pet por ciclo. El extra y
	// el override de ciclo NO tocan los totales individuales: viven en la
	// Subscription y en la fila agregada del libro.
	ids := make([]int64, 0, len(in.PetIDs)*n)
	for i := range in.PetIDs {
		petIDs := rotatePetIDs(in.PetIDs, i)
		for k := 0; k < n; k++ {
			occAddOn := 0.0
			if k+1 == addOnOccurrence {
				occAddOn = addOnValue
			}

			a := appointments.Appointment{
				ClientID:       in.ClientID,
				PetIDs:         petIDs,
				Date:           sub.StartDate.AddDate(0, 0, k*interval),
				Time:           sub.Time,
				Type:           appointments.BookingSubscription,
				Status:         appointments.StatusPending,
				TotalValue:     basePrice + occAddOn,
				AddOnValue:     occAddOn,
				SubscriptionID: &subID,
				CreatedAt:      now,
				UpdatedAt:      now,
			}

			id, err := s.appts.Create(ctx, a)
			if err != nil {
				return ExpandResult{}, err
			}
			ids = append(ids, id)

			s.notifier.Notify(ctx, notify.Notification{
				Hook:          notify.HookAppointmentSaved,
				AppointmentID: id,
				BookingType:   string(appointments.BookingSubscription),
			})
		}
	}

	// Una sola fila abierta por (assinatura, inicio de ciclo). El upsert es
	// lee-y-escribe sin lock de fila: ante dos expansiones concurrentes del
	// mismo par gana la última escritura.
	txID, err := s.ledger.UpsertCycle(ctx, subID, sub.StartDate, finance.Transaction{
		ClientID:       in.ClientID,
		SubscriptionID: &subID,
		Date:           sub.StartDate,
		Amount:         cycleTotal,
		Status:         finance.StatusOpen,
		Description:    cycleDescription(sub, len(in.PetIDs)),
	})
	if err != nil {
		return ExpandResult{}, err
	}

	return ExpandResult{
		Subscription:   sub,
		AppointmentIDs: ids,
		TransactionID:  txID,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Subscription, error) {
	return s.repo.GetByID(ctx, id)
}

func cycleDescription(sub Subscription, petCount int) string {
	label := "weekly"
	if sub.Frequency == FrequencyBiweekly {
		label = "biweekly"
	}
	desc := fmt.Sprintf("%s grooming subscription, %d pet(s), cycle %s",
		label, petCount, sub.StartDate.Format(appointments.DateLayout))
	if sub.ExtraDescription != "" {
		desc += " + " + sub.ExtraDescription
	}
	return desc
}

// rotatePetIDs deja el pet propio primero, preservando el orden del resto,
// igual que en las reservas simples: la firma de grupo no cambia.
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
