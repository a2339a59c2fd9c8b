package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pet-grooming-scheduler/internal/domain/appointments"
	"pet-grooming-scheduler/internal/domain/catalog"
	"pet-grooming-scheduler/internal/domain/clients"
	"pet-grooming-scheduler/internal/domain/finance"
	"pet-grooming-scheduler/internal/ports/notify"
)

// -------------------------
// Fakes (in-memory)
// -------------------------

type testSubRepo struct {
	seq  int64
	byID map[int64]Subscription
}

func newTestSubRepo() *testSubRepo {
	return &testSubRepo{byID: map[int64]Subscription{}}
}

func (r *testSubRepo) Create(ctx context.Context, s Subscription) (int64, error) {
	r.seq++
	s.ID = r.seq
	r.byID[s.ID] = s
	return s.ID, nil
}

func (r *testSubRepo) GetByID(ctx context.Context, id int64) (Subscription, error) {
	s, ok := r.byID[id]
	if !ok {
		return Subscription{}, errors.New("not found")
	}
	return s, nil
}

type testApptStore struct {
	seq  int64
	rows []appointments.Appointment
}

func (s *testApptStore) Create(ctx context.Context, a appointments.Appointment) (int64, error) {
	s.seq++
	a.ID = s.seq
	s.rows = append(s.rows, a)
	return a.ID, nil
}

type testPrices struct {
	combo []catalog.Service
	err   error
}

func (p *testPrices) DefaultRecurring(ctx context.Context) ([]catalog.Service, error) {
	return p.combo, p.err
}

type testLedger struct {
	calls []finance.Transaction
	subID int64
	date  time.Time
}

func (l *testLedger) FindOpenByClient(ctx context.Context, clientID int64) ([]finance.Transaction, error) {
	return nil, nil
}

func (l *testLedger) UpsertCycle(ctx context.Context, subscriptionID int64, date time.Time, tx finance.Transaction) (string, error) {
	l.subID = subscriptionID
	l.date = date
	l.calls = append(l.calls, tx)
	return fmt.Sprintf("tx-%d", len(l.calls)), nil
}

type testClientDir struct {
	known map[int64]bool
}

func (d *testClientDir) GetByID(ctx context.Context, id int64) (clients.Client, error) {
	if !d.known[id] {
		return clients.Client{}, errors.New("not found")
	}
	return clients.Client{ID: id}, nil
}

type testNotifier struct {
	msgs []notify.Notification
}

func (n *testNotifier) Notify(ctx context.Context, msg notify.Notification) {
	n.msgs = append(n.msgs, msg)
}

func newTestService() (*Service, *testSubRepo, *testApptStore, *testLedger, *testNotifier) {
	repo := newTestSubRepo()
	appts := &testApptStore{}
	prices := &testPrices{combo: []catalog.Service{
		{ID: 1, Name: "banho", Price: 35, DefaultRecurring: true, Active: true},
		{ID: 2, Name: "tosa higienica", Price: 15, DefaultRecurring: true, Active: true},
	}}
	ledger := &testLedger{}
	dir := &testClientDir{known: map[int64]bool{10: true}}
	notifier := &testNotifier{}

	svc := NewService(repo, appts, prices, ledger, dir, notifier)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	}
	return svc, repo, appts, ledger, notifier
}

func weeklyInput() ExpandInput {
	return ExpandInput{
		ClientID:  10,
		PetIDs:    []int64{7, 3},
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Time:      "10:00",
		Frequency: FrequencyWeekly,
	}
}

// -------------------------
// Tests
// -------------------------

func TestExpand_Weekly_TwoPets_AddOnOnSecondVisit(t *testing.T) {
	svc, _, appts, ledger, _ := newTestService()

	in := weeklyInput()
	in.AddOn = &AddOnInput{Value: 30}
	in.AddOnOccurrence = 2

	res, err := svc.Expand(context.Background(), in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}

	// 2 pets x 4 visitas semanales
	if len(res.AppointmentIDs) != 8 || len(appts.rows) != 8 {
		t.Fatalf("expected 8 appointments, got %d", len(appts.rows))
	}

	// Por pet: fechas espaciadas 7 días, add-on solo en la visita 2.
	perPet := map[int64][]appointments.Appointment{}
	for _, a := range appts.rows {
		if a.Type != appointments.BookingSubscription {
			t.Fatalf("expected subscription booking, got %s", a.Type)
		}
		if a.Status != appointments.StatusPending {
			t.Fatalf("expected pending, got %s", a.Status)
		}
		if a.SubscriptionID == nil || *a.SubscriptionID != res.Subscription.ID {
			t.Fatalf("appointment not linked to subscription")
		}
		perPet[a.PrimaryPetID()] = append(perPet[a.PrimaryPetID()], a)
	}
	if len(perPet) != 2 {
		t.Fatalf("expected rows for 2 pets, got %d", len(perPet))
	}

	for petID, rows := range perPet {
		if len(rows) != 4 {
			t.Fatalf("pet %d: expected 4 visits, got %d", petID, len(rows))
		}
		for k, a := range rows {
			wantDate := in.StartDate.AddDate(0, 0, k*7)
			if !a.Date.Equal(wantDate) {
				t.Fatalf("pet %d visit %d: expected %s, got %s", petID, k+1, wantDate, a.Date)
			}
			wantTotal := 50.0
			if k+1 == 2 {
				wantTotal = 80.0
			}
			if a.TotalValue != wantTotal {
				t.Fatalf("pet %d visit %d: expected total %.2f, got %.2f", petID, k+1, wantTotal, a.TotalValue)
			}
		}
	}

	// Precios del ciclo: base 50, por pet 4*50+30=230, total 460.
	sub := res.Subscription
	if sub.BaseEventPrice != 50 {
		t.Fatalf("expected base 50, got %.2f", sub.BaseEventPrice)
	}
	if sub.PerPetCycleValue != 230 {
		t.Fatalf("expected per-pet 230, got %.2f", sub.PerPetCycleValue)
	}
	if sub.CycleTotalValue != 460 {
		t.Fatalf("expected cycle total 460, got %.2f", sub.CycleTotalValue)
	}

	// Exactamente una fila agregada em_aberto con el total del ciclo.
	if len(ledger.calls) != 1 {
		t.Fatalf("expected 1 ledger upsert, got %d", len(ledger.calls))
	}
	tx := ledger.calls[0]
	if tx.Amount != 460 || tx.Status != finance.StatusOpen {
		t.Fatalf("unexpected ledger row: %+v", tx)
	}
	if ledger.subID != sub.ID || !ledger.date.Equal(sub.StartDate) {
		t.Fatalf("ledger keyed wrong: sub=%d date=%s", ledger.subID, ledger.date)
	}
	if res.TransactionID == "" {
		t.Fatalf("expected transaction id")
	}
}

func TestExpand_Biweekly_TwoVisits_FourteenDaysApart(t *testing.T) {
	svc, _, appts, _, _ := newTestService()

	in := weeklyInput()
	in.PetIDs = []int64{7}
	in.Frequency = FrequencyBiweekly

	res, err := svc.Expand(context.Background(), in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(res.AppointmentIDs) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(res.AppointmentIDs))
	}
	if !appts.rows[1].Date.Equal(in.StartDate.AddDate(0, 0, 14)) {
		t.Fatalf("expected second visit 14 days later, got %s", appts.rows[1].Date)
	}
	// Por pet: base 50 x 2 visitas.
	if res.Subscription.PerPetCycleValue != 100 {
		t.Fatalf("expected per-pet 100, got %.2f", res.Subscription.PerPetCycleValue)
	}
}

func TestExpand_AddOnOccurrence_ClampedToCycle(t *testing.T) {
	svc, _, appts, _, _ := newTestService()

	in := weeklyInput()
	in.PetIDs = []int64{7}
	in.Frequency = FrequencyBiweekly
	in.AddOn = &AddOnInput{Value: 20}
	in.AddOnOccurrence = 9 // fuera de rango: biweekly tiene 2 visitas

	res, err := svc.Expand(context.Background(), in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if res.Subscription.AddOnOccurrence != 2 {
		t.Fatalf("expected clamp to 2, got %d", res.Subscription.AddOnOccurrence)
	}
	if appts.rows[0].AddOnValue != 0 || appts.rows[1].AddOnValue != 20 {
		t.Fatalf("expected add-on on last visit only: %+v", appts.rows)
	}
}

func TestExpand_ExplicitCycleTotal_SplitsEqually(t *testing.T) {
	svc, _, _, ledger, _ := newTestService()

	in := weeklyInput()
	in.CycleTotalValue = 300

	res, err := svc.Expand(context.Background(), in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if res.Subscription.CycleTotalValue != 300 {
		t.Fatalf("expected total 300, got %.2f", res.Subscription.CycleTotalValue)
	}
	if res.Subscription.PerPetCycleValue != 150 {
		t.Fatalf("expected equal split 150 per pet, got %.2f", res.Subscription.PerPetCycleValue)
	}
	if ledger.calls[0].Amount != 300 {
		t.Fatalf("expected ledger amount 300, got %.2f", ledger.calls[0].Amount)
	}
}

func TestExpand_ExtraGoesToSubscriptionAndLedger_NotRows(t *testing.T) {
	svc, _, appts, ledger, _ := newTestService()

	in := weeklyInput()
	in.PetIDs = []int64{7}
	in.Extra = &ExtraInput{Description: "taxi dog", Value: 40}

	res, err := svc.Expand(context.Background(), in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	// 4*50 + 40 de extra
	if res.Subscription.PerPetCycleValue != 240 {
		t.Fatalf("expected per-pet 240, got %.2f", res.Subscription.PerPetCycleValue)
	}
	for _, a := range appts.rows {
		if a.TotalValue != 50 {
			t.Fatalf("extra must not touch row totals, got %.2f", a.TotalValue)
		}
	}
	if ledger.calls[0].Amount != 240 {
		t.Fatalf("expected ledger 240, got %.2f", ledger.calls[0].Amount)
	}
}

func TestExpand_RowsShareSignature_OwnPetFirst(t *testing.T) {
	svc, _, appts, _, _ := newTestService()

	_, err := svc.Expand(context.Background(), weeklyInput())
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}

	sig := appts.rows[0].Signature()
	seen := map[int64]bool{}
	for _, a := range appts.rows {
		if a.Signature() != sig {
			t.Fatalf("expected same signature for all rows: %s vs %s", sig, a.Signature())
		}
		seen[a.PrimaryPetID()] = true
	}
	if !seen[7] || !seen[3] {
		t.Fatalf("expected each pet to lead its own rows, got %v", seen)
	}
}

func TestExpand_EmitsSavedHookPerRow(t *testing.T) {
	svc, _, _, _, notifier := newTestService()

	res, err := svc.Expand(context.Background(), weeklyInput())
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(notifier.msgs) != len(res.AppointmentIDs) {
		t.Fatalf("expected %d hooks, got %d", len(res.AppointmentIDs), len(notifier.msgs))
	}
	for _, m := range notifier.msgs {
		if m.Hook != notify.HookAppointmentSaved {
			t.Fatalf("expected saved hook, got %s", m.Hook)
		}
		if m.BookingType != string(appointments.BookingSubscription) {
			t.Fatalf("expected subscription booking type, got %s", m.BookingType)
		}
	}
}

func TestExpand_Invalid_NoWrites(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ExpandInput)
	}{
		{"unknown client", func(in *ExpandInput) { in.ClientID = 99 }},
		{"no pets", func(in *ExpandInput) { in.PetIDs = nil }},
		{"zero date", func(in *ExpandInput) { in.StartDate = time.Time{} }},
		{"bad time", func(in *ExpandInput) { in.Time = "25:99" }},
		{"empty time", func(in *ExpandInput) { in.Time = "  " }},
		{"bad frequency", func(in *ExpandInput) { in.Frequency = "monthly" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, appts, ledger, notifier := newTestService()

			in := weeklyInput()
			tc.mutate(&in)

			_, err := svc.Expand(context.Background(), in)
			if err != ErrInvalidInput {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(repo.byID) != 0 || len(appts.rows) != 0 || len(ledger.calls) != 0 || len(notifier.msgs) != 0 {
				t.Fatalf("expected no writes on invalid input")
			}
		})
	}
}
