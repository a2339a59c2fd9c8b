package appointments

import (
	"context"
	"testing"
	"time"
)

func seedVisit(repo *testRepo, clientID int64, petIDs []int64, date time.Time, timeOfDay string, total float64) []int64 {
	ids := make([]int64, 0, len(petIDs))
	for i := range petIDs {
		rotated := rotatePetIDs(petIDs, i)
		id, _ := repo.Create(context.Background(), Appointment{
			ClientID:   clientID,
			PetIDs:     rotated,
			Date:       date,
			Time:       timeOfDay,
			Type:       BookingSimple,
			Status:     StatusPending,
			TotalValue: total,
		})
		ids = append(ids, id)
	}
	return ids
}

func TestFindGroup_ReconstructsVisit_FromAnyMember(t *testing.T) {
	svc, repo, _ := newTestService()

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	ids := seedVisit(repo, 10, []int64{7, 3}, date, "14:00", 60)

	// Simetría: desde cualquier miembro se reconstruye el mismo grupo.
	var first Group
	for i, id := range ids {
		g, found, err := svc.FindGroup(context.Background(), id)
		if err != nil {
			t.Fatalf("FindGroup(%d) error: %v", id, err)
		}
		if !found {
			t.Fatalf("FindGroup(%d): expected a group", id)
		}
		if i == 0 {
			first = g
			continue
		}
		if g.Signature != first.Signature || g.AnchorID != first.AnchorID || g.Total != first.Total {
			t.Fatalf("group differs by member: %+v vs %+v", g, first)
		}
	}

	if first.Signature != "3-7" {
		t.Fatalf("expected signature 3-7, got %s", first.Signature)
	}
	if first.Total != 120 {
		t.Fatalf("expected consolidated total 120, got %.2f", first.Total)
	}
	// Anchor: el id numéricamente menor del grupo.
	if first.AnchorID != ids[0] && first.AnchorID != ids[1] {
		t.Fatalf("anchor outside group: %d", first.AnchorID)
	}
	if first.AnchorID != first.MemberIDs[0] {
		t.Fatalf("expected anchor to be the smallest member id")
	}
	for i := 1; i < len(first.MemberIDs); i++ {
		if first.MemberIDs[i-1] >= first.MemberIDs[i] {
			t.Fatalf("expected ascending member ids, got %v", first.MemberIDs)
		}
	}
}

func TestFindGroup_ResolvesPetNames(t *testing.T) {
	svc, repo, _ := newTestService()

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	ids := seedVisit(repo, 10, []int64{7, 3}, date, "14:00", 60)

	g, found, err := svc.FindGroup(context.Background(), ids[0])
	if err != nil || !found {
		t.Fatalf("FindGroup error: %v found=%v", err, found)
	}
	if len(g.PetNames) != 2 {
		t.Fatalf("expected 2 pet names, got %v", g.PetNames)
	}
	names := map[string]bool{}
	for _, n := range g.PetNames {
		names[n] = true
	}
	if !names["Thor"] || !names["Luna"] {
		t.Fatalf("expected Thor and Luna, got %v", g.PetNames)
	}
}

func TestFindGroup_SinglePetRow_NoGroup(t *testing.T) {
	svc, repo, _ := newTestService()

	id, _ := repo.Create(context.Background(), Appointment{
		ClientID: 10,
		PetIDs:   []int64{7},
		Date:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Time:     "14:00",
		Status:   StatusPending,
	})

	_, found, err := svc.FindGroup(context.Background(), id)
	if err != nil {
		t.Fatalf("FindGroup error: %v", err)
	}
	if found {
		t.Fatalf("single-pet row must not form a group")
	}
}

func TestFindGroup_LoneMultiPetRow_NoGroup(t *testing.T) {
	svc, repo, _ := newTestService()

	// Fila multi-pet sin contraparte (p.ej. la otra fue borrada a mano):
	// un match solitario no es grupo.
	id, _ := repo.Create(context.Background(), Appointment{
		ClientID: 10,
		PetIDs:   []int64{7, 3},
		Date:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Time:     "14:00",
		Status:   StatusPending,
	})

	_, found, err := svc.FindGroup(context.Background(), id)
	if err != nil {
		t.Fatalf("FindGroup error: %v", err)
	}
	if found {
		t.Fatalf("lone row must not form a group")
	}
}

func TestFindGroup_DifferentSignatureAtSameSlot_Excluded(t *testing.T) {
	svc, repo, _ := newTestService()

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	ids := seedVisit(repo, 10, []int64{7, 3}, date, "14:00", 60)

	// Otra visita del mismo cliente, misma fecha y hora, pero otro set.
	repo.Create(context.Background(), Appointment{
		ClientID: 10,
		PetIDs:   []int64{9, 7},
		Date:     date,
		Time:     "14:00",
		Status:   StatusPending,
	})

	g, found, err := svc.FindGroup(context.Background(), ids[0])
	if err != nil || !found {
		t.Fatalf("FindGroup error: %v found=%v", err, found)
	}
	if len(g.MemberIDs) != 2 {
		t.Fatalf("expected only the matching pair, got %v", g.MemberIDs)
	}
}

func TestFindGroup_MissingPet_GroupStillValid(t *testing.T) {
	svc, repo, _ := newTestService()

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	// Pet 99 no existe en el directorio.
	ids := seedVisit(repo, 10, []int64{7, 99}, date, "14:00", 60)

	g, found, err := svc.FindGroup(context.Background(), ids[0])
	if err != nil || !found {
		t.Fatalf("FindGroup error: %v found=%v", err, found)
	}
	if len(g.MemberIDs) != 2 {
		t.Fatalf("expected 2 members, got %v", g.MemberIDs)
	}
	if len(g.PetNames) != 1 || g.PetNames[0] != "Thor" {
		t.Fatalf("expected only the resolvable name, got %v", g.PetNames)
	}
}
