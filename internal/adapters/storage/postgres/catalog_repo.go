package postgres

import (
	"context"
	"database/sql"

	"pet-grooming-scheduler/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) Create(ctx context.Context, s catalog.Service) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO grooming_services (name, price, default_recurring, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`,
		s.Name, s.Price, s.DefaultRecurring, s.Active, s.CreatedAt, s.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (r *CatalogRepo) GetByID(ctx context.Context, id int64) (catalog.Service, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, default_recurring, active, created_at, updated_at
		FROM grooming_services
		WHERE id = $1
	`, id)

	var s catalog.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Price, &s.DefaultRecurring, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Service{}, ErrNotFound
		}
		return catalog.Service{}, err
	}
	return s, nil
}

func (r *CatalogRepo) List(ctx context.Context, onlyActive bool) ([]catalog.Service, error) {
	q := `
		SELECT id, name, price, default_recurring, active, created_at, updated_at
		FROM grooming_services
	`
	if onlyActive {
		q += " WHERE active"
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Service, 0)
	for rows.Next() {
		var s catalog.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.DefaultRecurring, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
