package postgres

import (
	"context"
	"database/sql"

	"pet-grooming-scheduler/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (client_id, name, species, breed, sex, size, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		p.ClientID, p.Name, string(p.Species), p.Breed, string(p.Sex), string(p.Size), p.Notes, p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, name, species, breed, sex, size, notes, created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByClient(ctx context.Context, clientID int64) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_id, name, species, breed, sex, size, notes, created_at, updated_at
		FROM pets
		WHERE client_id = $1
		ORDER BY id
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var species, sex, size string
	if err := row.Scan(&p.ID, &p.ClientID, &p.Name, &species, &p.Breed, &sex, &size, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return pets.Pet{}, err
	}
	p.Species = pets.Species(species)
	p.Sex = pets.Sex(sex)
	p.Size = pets.Size(size)
	return p, nil
}
