package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-grooming-scheduler/internal/domain/finance"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// FinanceRepo cubre el libro financiero (tabla aparte, tabular). Usa sqlx
// para el scan directo a structs con tags db; comparte el pool pgx del
// resto de los repos.
type FinanceRepo struct {
	db *sqlx.DB
}

func NewFinanceRepo(db *sql.DB) *FinanceRepo {
	return &FinanceRepo{db: sqlx.NewDb(db, "pgx")}
}

func (r *FinanceRepo) FindOpenByClient(ctx context.Context, clientID int64) ([]finance.Transaction, error) {
	out := make([]finance.Transaction, 0)
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, client_id, subscription_id, appointment_id, date, amount, status, description
		FROM transactions
		WHERE client_id = $1 AND status = $2
		ORDER BY date, id
	`, clientID, string(finance.StatusOpen))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FinanceRepo) UpsertCycle(ctx context.Context, subscriptionID int64, date time.Time, tx finance.Transaction) (string, error) {
	// Lee-y-escribe sin lock de fila, igual que el comportamiento original:
	// dos expansiones concurrentes del mismo par (assinatura, fecha) corren
	// y gana la última escritura.
	var existingID string
	err := r.db.GetContext(ctx, &existingID, `
		SELECT id
		FROM transactions
		WHERE subscription_id = $1 AND date = $2 AND status = $3
	`, subscriptionID, date, string(finance.StatusOpen))

	if err == nil {
		_, err = r.db.ExecContext(ctx, `
			UPDATE transactions
			SET amount = $2, description = $3
			WHERE id = $1
		`, existingID, tx.Amount, tx.Description)
		if err != nil {
			return "", err
		}
		return existingID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, client_id, subscription_id, appointment_id, date, amount, status, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		id, tx.ClientID, subscriptionID, tx.AppointmentID, date, tx.Amount, string(finance.StatusOpen), tx.Description,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}
