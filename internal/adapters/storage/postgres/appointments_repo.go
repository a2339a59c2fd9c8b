package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-grooming-scheduler/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO appointments (
			client_id, pet_ids,
			date, time_of_day,
			type, status,
			total_value, add_on_value,
			subscription_id, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`,
		a.ClientID,
		joinIDs(a.PetIDs),
		a.Date,
		a.Time,
		string(a.Type),
		string(a.Status),
		a.TotalValue,
		a.AddOnValue,
		a.SubscriptionID,
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, appointmentColumns+` WHERE id = $1`, id)

	a, err := scanAppointment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return appointments.Appointment{}, ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByVisit(ctx context.Context, clientID int64, date time.Time, timeOfDay string) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, appointmentColumns+`
		WHERE client_id = $1 AND date = $2 AND time_of_day = $3
		ORDER BY id
	`, clientID, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *AppointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, appointmentColumns+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *AppointmentsRepo) UpdateStatus(ctx context.Context, id int64, status appointments.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET status = $2, updated_at = now()
		WHERE id = $1
	`, id, string(status))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const appointmentColumns = `
	SELECT
		id, client_id, pet_ids,
		date, time_of_day,
		type, status,
		total_value, add_on_value,
		subscription_id, notes,
		created_at, updated_at
	FROM appointments
`

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var petIDs, typ, status string
	var subID sql.NullInt64

	if err := row.Scan(
		&a.ID,
		&a.ClientID,
		&petIDs,
		&a.Date,
		&a.Time,
		&typ,
		&status,
		&a.TotalValue,
		&a.AddOnValue,
		&subID,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	a.PetIDs = splitIDs(petIDs)
	a.Type = appointments.BookingType(typ)
	// Normalización de grafías legadas en el borde de lectura.
	a.Status = appointments.NormalizeStatus(status)
	if subID.Valid {
		v := subID.Int64
		a.SubscriptionID = &v
	}
	return a, nil
}

func collectAppointments(rows *sql.Rows) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
