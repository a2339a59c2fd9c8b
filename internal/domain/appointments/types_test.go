package appointments

import "testing"

func TestNormalizeStatus_LegacySpellings(t *testing.T) {
	cases := map[string]Status{
		"pending":            StatusPending,
		"pendente":           StatusPending,
		" Pendente ":         StatusPending,
		"finalized":          StatusFinalized,
		"finalizado":         StatusFinalized,
		"finalized_and_paid": StatusFinalizedAndPaid,
		"finalized_paid":     StatusFinalizedAndPaid,
		"finalized and paid": StatusFinalizedAndPaid,
		"Finalizado e Pago":  StatusFinalizedAndPaid,
		"finalizado_e_pago":  StatusFinalizedAndPaid,
		"canceled":           StatusCanceled,
		"cancelled":          StatusCanceled,
		"cancelado":          StatusCanceled,
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}

	// Lo irreconocible pasa tal cual (en minúsculas), no se inventa estado.
	if got := NormalizeStatus("Archived"); got != Status("archived") {
		t.Errorf("NormalizeStatus(Archived) = %q", got)
	}
}

func TestParseStatus_StrictCanonicalOnly(t *testing.T) {
	for _, raw := range []string{"pending", "finalized", "finalized_and_paid", "canceled"} {
		if _, ok := ParseStatus(raw); !ok {
			t.Errorf("ParseStatus(%q) rejected canonical value", raw)
		}
	}
	for _, raw := range []string{"pendente", "finalizado", "finalized_paid", "archived", ""} {
		if _, ok := ParseStatus(raw); ok {
			t.Errorf("ParseStatus(%q) accepted non-canonical value", raw)
		}
	}
}

func TestCanTransition_Matrix(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusFinalized}:           true,
		{StatusPending, StatusCanceled}:            true,
		{StatusFinalized, StatusFinalizedAndPaid}:  true,
		{StatusPending, StatusFinalizedAndPaid}:    false,
		{StatusFinalized, StatusPending}:           false,
		{StatusFinalized, StatusCanceled}:          false,
		{StatusCanceled, StatusPending}:            false,
		{StatusFinalizedAndPaid, StatusFinalized}:  false,
		{StatusFinalizedAndPaid, StatusPending}:    false,
		{StatusCanceled, StatusFinalizedAndPaid}:   false,
	}
	for pair, want := range allowed {
		if got := CanTransition(pair[0], pair[1]); got != want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", pair[0], pair[1], got, want)
		}
	}
}

func TestSignature_OrderInsensitive(t *testing.T) {
	a := Appointment{PetIDs: []int64{7, 3, 11}}
	b := Appointment{PetIDs: []int64{11, 7, 3}}
	if a.Signature() != b.Signature() {
		t.Fatalf("signatures differ: %s vs %s", a.Signature(), b.Signature())
	}
	if a.Signature() != "3-7-11" {
		t.Fatalf("expected 3-7-11, got %s", a.Signature())
	}
}
