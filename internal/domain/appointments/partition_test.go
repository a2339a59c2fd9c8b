package appointments

import (
	"context"
	"testing"
	"time"
)

var partitionNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // lunes mediodía

func TestClassify(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		a      Appointment
		bucket Bucket
		ok     bool
	}{
		{
			"pending past hour is overdue",
			Appointment{Status: StatusPending, Date: today, Time: "09:00"},
			BucketOverdue, true,
		},
		{
			"pending future hour is upcoming",
			Appointment{Status: StatusPending, Date: today, Time: "15:00"},
			BucketUpcoming, true,
		},
		{
			"pending without hour, past date, is overdue",
			Appointment{Status: StatusPending, Date: today.AddDate(0, 0, -1)},
			BucketOverdue, true,
		},
		{
			"pending without hour, today, is upcoming",
			Appointment{Status: StatusPending, Date: today},
			BucketUpcoming, true,
		},
		{
			"finalized today",
			Appointment{Status: StatusFinalized, Date: today, Time: "09:00"},
			BucketFinalizedToday, true,
		},
		{
			"finalized yesterday stays visible as upcoming",
			Appointment{Status: StatusFinalized, Date: today.AddDate(0, 0, -1), Time: "09:00"},
			BucketUpcoming, true,
		},
		{
			"paid is history",
			Appointment{Status: StatusFinalizedAndPaid, Date: today, Time: "09:00"},
			"", false,
		},
		{
			"canceled is history",
			Appointment{Status: StatusCanceled, Date: today, Time: "09:00"},
			"", false,
		},
		{
			"legacy spelling is normalized before classifying",
			Appointment{Status: Status("finalizado e pago"), Date: today},
			"", false,
		},
		{
			"unknown status is excluded",
			Appointment{Status: Status("archived"), Date: today},
			"", false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket, ok := Classify(tc.a, partitionNow)
			if ok != tc.ok || bucket != tc.bucket {
				t.Fatalf("got (%q,%v), want (%q,%v)", bucket, ok, tc.bucket, tc.ok)
			}
		})
	}
}

func TestAgenda_EveryLiveRowInExactlyOneBucket(t *testing.T) {
	svc, repo, _ := newTestService()
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	statuses := []Status{StatusPending, StatusFinalized, StatusFinalizedAndPaid, StatusCanceled}
	dates := []time.Time{today.AddDate(0, 0, -3), today, today.AddDate(0, 0, 3)}
	times := []string{"", "09:00", "18:00"}

	live := 0
	for _, st := range statuses {
		for _, d := range dates {
			for _, tm := range times {
				repo.Create(context.Background(), Appointment{
					ClientID: 10, PetIDs: []int64{7},
					Date: d, Time: tm, Status: st,
				})
				if !st.Terminal() {
					live++
				}
			}
		}
	}

	agenda, err := svc.Agenda(context.Background(), partitionNow)
	if err != nil {
		t.Fatalf("Agenda error: %v", err)
	}

	total := len(agenda.Overdue) + len(agenda.FinalizedToday) + len(agenda.Upcoming)
	if total != live {
		t.Fatalf("expected %d live rows across buckets, got %d", live, total)
	}

	seen := map[int64]int{}
	for _, a := range agenda.Overdue {
		seen[a.ID]++
	}
	for _, a := range agenda.FinalizedToday {
		seen[a.ID]++
	}
	for _, a := range agenda.Upcoming {
		seen[a.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("appointment %d appears in %d buckets", id, n)
		}
	}
}

func TestAgenda_BucketsSortedDescending_IDTiebreak(t *testing.T) {
	svc, repo, _ := newTestService()
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// Tres vencidos: dos con el mismo horario (desempata id desc).
	repo.Create(context.Background(), Appointment{
		ClientID: 10, PetIDs: []int64{7},
		Date: today.AddDate(0, 0, -2), Time: "09:00", Status: StatusPending,
	})
	repo.Create(context.Background(), Appointment{
		ClientID: 10, PetIDs: []int64{7},
		Date: today.AddDate(0, 0, -1), Time: "09:00", Status: StatusPending,
	})
	repo.Create(context.Background(), Appointment{
		ClientID: 10, PetIDs: []int64{3},
		Date: today.AddDate(0, 0, -1), Time: "09:00", Status: StatusPending,
	})

	agenda, err := svc.Agenda(context.Background(), partitionNow)
	if err != nil {
		t.Fatalf("Agenda error: %v", err)
	}
	if len(agenda.Overdue) != 3 {
		t.Fatalf("expected 3 overdue, got %d", len(agenda.Overdue))
	}

	got := []int64{agenda.Overdue[0].ID, agenda.Overdue[1].ID, agenda.Overdue[2].ID}
	want := []int64{3, 2, 1} // más nuevo primero; mismo horario => id mayor primero
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAgenda_ZeroNow_UsesServiceClock(t *testing.T) {
	svc, repo, _ := newTestService()
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return partitionNow }

	repo.Create(context.Background(), Appointment{
		ClientID: 10, PetIDs: []int64{7},
		Date: today, Time: "09:00", Status: StatusPending,
	})

	agenda, err := svc.Agenda(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("Agenda error: %v", err)
	}
	if len(agenda.Overdue) != 1 {
		t.Fatalf("expected the 09:00 pending row overdue at noon, got %+v", agenda)
	}
}
