package finance

import (
	"context"
	"time"
)

type Ledger interface {
	// FindOpenByClient devuelve las filas em_aberto del cliente, fecha ascendente.
	FindOpenByClient(ctx context.Context, clientID int64) ([]Transaction, error)

	// UpsertCycle garantiza a lo sumo una fila abierta por (subscription, fecha de
	// inicio de ciclo): si ya existe, actualiza monto y descripción en el lugar;
	// si no, inserta una fila nueva. Devuelve el id de la fila.
	UpsertCycle(ctx context.Context, subscriptionID int64, date time.Time, tx Transaction) (string, error)
}
