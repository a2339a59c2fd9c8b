package finance

import "time"

// TransactionStatus usa los valores históricos del libro financiero.
type TransactionStatus string

const (
	StatusOpen     TransactionStatus = "em_aberto"
	StatusPaid     TransactionStatus = "pago"
	StatusCanceled TransactionStatus = "cancelado"
)

// Transaction es una fila del libro financiero (tabla aparte, no una
// entidad del dominio). Una fila por ciclo de assinatura, o una por
// atendimiento simple cuando el cobro se registra a mano.
type Transaction struct {
	ID             string            `db:"id" json:"id"`
	ClientID       int64             `db:"client_id" json:"client_id"`
	SubscriptionID *int64            `db:"subscription_id" json:"subscription_id,omitempty"`
	AppointmentID  *int64            `db:"appointment_id" json:"appointment_id,omitempty"`
	Date           time.Time         `db:"date" json:"date"`
	Amount         float64           `db:"amount" json:"amount"`
	Status         TransactionStatus `db:"status" json:"status"`
	Description    string            `db:"description" json:"description"`
}
