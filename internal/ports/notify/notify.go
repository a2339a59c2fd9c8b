package notify

import "context"

type Hook string

const (
	HookAppointmentSaved     Hook = "appointment_saved"
	HookAppointmentFinalized Hook = "appointment_finalized"
)

// Notification es el payload mínimo que consumen los subsistemas externos
// (mensajería, cobros). Solo ids y tipo de reserva; nada de contenido.
type Notification struct {
	Hook          Hook
	AppointmentID int64
	BookingType   string // simple | subscription
}

// Notifier recibe notificaciones fire-and-forget. Un consumidor que falla
// no debe afectar la secuencia de escrituras del emisor.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
