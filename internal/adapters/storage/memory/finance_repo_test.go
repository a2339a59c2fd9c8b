package memory

import (
	"context"
	"testing"
	"time"

	"pet-grooming-scheduler/internal/domain/finance"
)

func TestFinanceRepo_UpsertCycle_UpdatesInPlace(t *testing.T) {
	repo := NewFinanceRepo()
	cycle := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	id1, err := repo.UpsertCycle(context.Background(), 5, cycle, finance.Transaction{
		ClientID: 10, Amount: 400, Status: finance.StatusOpen, Description: "ciclo inicial",
	})
	if err != nil {
		t.Fatalf("UpsertCycle #1 error: %v", err)
	}

	// Re-expansión del mismo ciclo: misma fila, monto nuevo.
	id2, err := repo.UpsertCycle(context.Background(), 5, cycle, finance.Transaction{
		ClientID: 10, Amount: 460, Status: finance.StatusOpen, Description: "ciclo con add-on",
	})
	if err != nil {
		t.Fatalf("UpsertCycle #2 error: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same row id, got %s vs %s", id1, id2)
	}

	rows, err := repo.FindOpenByClient(context.Background(), 10)
	if err != nil {
		t.Fatalf("FindOpenByClient error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one open row, got %d", len(rows))
	}
	if rows[0].Amount != 460 || rows[0].Description != "ciclo con add-on" {
		t.Fatalf("expected updated row, got %+v", rows[0])
	}
}

func TestFinanceRepo_UpsertCycle_NewDateNewRow(t *testing.T) {
	repo := NewFinanceRepo()
	cycle1 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cycle2 := cycle1.AddDate(0, 0, 28)

	id1, _ := repo.UpsertCycle(context.Background(), 5, cycle1, finance.Transaction{
		ClientID: 10, Amount: 400, Status: finance.StatusOpen,
	})
	id2, err := repo.UpsertCycle(context.Background(), 5, cycle2, finance.Transaction{
		ClientID: 10, Amount: 400, Status: finance.StatusOpen,
	})
	if err != nil {
		t.Fatalf("UpsertCycle error: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("different cycle start must create a new row")
	}

	rows, _ := repo.FindOpenByClient(context.Background(), 10)
	if len(rows) != 2 {
		t.Fatalf("expected 2 open rows, got %d", len(rows))
	}
	// Orden: fecha ascendente.
	if !rows[0].Date.Before(rows[1].Date) {
		t.Fatalf("expected ascending date order, got %v then %v", rows[0].Date, rows[1].Date)
	}
}

func TestFinanceRepo_FindOpenByClient_FiltersStatusAndClient(t *testing.T) {
	repo := NewFinanceRepo()
	cycle := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	repo.UpsertCycle(context.Background(), 5, cycle, finance.Transaction{
		ClientID: 10, Amount: 400, Status: finance.StatusOpen,
	})
	repo.UpsertCycle(context.Background(), 6, cycle, finance.Transaction{
		ClientID: 20, Amount: 99, Status: finance.StatusOpen,
	})

	rows, err := repo.FindOpenByClient(context.Background(), 10)
	if err != nil {
		t.Fatalf("FindOpenByClient error: %v", err)
	}
	if len(rows) != 1 || rows[0].ClientID != 10 {
		t.Fatalf("expected only client 10 rows, got %+v", rows)
	}
}
