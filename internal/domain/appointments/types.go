package appointments

import "strings"

type BookingType string

const (
	BookingSimple       BookingType = "simple"
	BookingSubscription BookingType = "subscription"
)

type Status string

const (
	StatusPending          Status = "pending"
	StatusFinalized        Status = "finalized"
	StatusFinalizedAndPaid Status = "finalized_and_paid"
	StatusCanceled         Status = "canceled"
)

// NormalizeStatus colapsa las grafías históricas a un valor canónico.
// Se aplica en el borde de lectura del storage; datos viejos traen
// variantes en texto libre y en portugués.
func NormalizeStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "pending", "pendente":
		return StatusPending
	case "finalized", "finalizado":
		return StatusFinalized
	case "finalized_and_paid", "finalized_paid", "finalized and paid",
		"finalizado_e_pago", "finalizado e pago":
		return StatusFinalizedAndPaid
	case "canceled", "cancelled", "cancelado":
		return StatusCanceled
	default:
		return Status(s)
	}
}

// ParseStatus acepta solo los cuatro valores canónicos. Cualquier otra cosa
// se rechaza antes de tocar el storage.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.TrimSpace(raw)) {
	case StatusPending:
		return StatusPending, true
	case StatusFinalized:
		return StatusFinalized, true
	case StatusFinalizedAndPaid:
		return StatusFinalizedAndPaid, true
	case StatusCanceled:
		return StatusCanceled, true
	default:
		return "", false
	}
}

// Terminal: canceled y finalized_and_paid son historia, no worklist.
func (s Status) Terminal() bool {
	return s == StatusCanceled || s == StatusFinalizedAndPaid
}

// CanTransition define la máquina de estados:
// pending -> finalized | canceled; finalized -> finalized_and_paid.
// No hay camino de vuelta desde un estado terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusFinalized || to == StatusCanceled
	case StatusFinalized:
		return to == StatusFinalizedAndPaid
	default:
		return false
	}
}
