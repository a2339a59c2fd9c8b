package postgres

import (
	"context"
	"database/sql"

	"pet-grooming-scheduler/internal/domain/subscriptions"
)

type SubscriptionsRepo struct {
	db *sql.DB
}

func NewSubscriptionsRepo(db *sql.DB) *SubscriptionsRepo {
	return &SubscriptionsRepo{db: db}
}

func (r *SubscriptionsRepo) Create(ctx context.Context, s subscriptions.Subscription) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO subscriptions (
			client_id, pet_ids,
			frequency, start_date, time_of_day,
			base_event_price, per_pet_cycle_value, cycle_total_value,
			add_on_value, add_on_occurrence,
			extra_description, extra_value,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id
	`,
		s.ClientID,
		joinIDs(s.PetIDs),
		string(s.Frequency),
		s.StartDate,
		s.Time,
		s.BaseEventPrice,
		s.PerPetCycleValue,
		s.CycleTotalValue,
		s.AddOnValue,
		s.AddOnOccurrence,
		s.ExtraDescription,
		s.ExtraValue,
		s.CreatedAt,
	).Scan(&id)
	return id, err
}

func (r *SubscriptionsRepo) GetByID(ctx context.Context, id int64) (subscriptions.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, client_id, pet_ids,
			frequency, start_date, time_of_day,
			base_event_price, per_pet_cycle_value, cycle_total_value,
			add_on_value, add_on_occurrence,
			extra_description, extra_value,
			created_at
		FROM subscriptions
		WHERE id = $1
	`, id)

	var s subscriptions.Subscription
	var petIDs, freq string
	if err := row.Scan(
		&s.ID,
		&s.ClientID,
		&petIDs,
		&freq,
		&s.StartDate,
		&s.Time,
		&s.BaseEventPrice,
		&s.PerPetCycleValue,
		&s.CycleTotalValue,
		&s.AddOnValue,
		&s.AddOnOccurrence,
		&s.ExtraDescription,
		&s.ExtraValue,
		&s.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return subscriptions.Subscription{}, ErrNotFound
		}
		return subscriptions.Subscription{}, err
	}

	s.PetIDs = splitIDs(petIDs)
	s.Frequency = subscriptions.Frequency(freq)
	return s, nil
}
