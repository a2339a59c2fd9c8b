package pets

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	Sex     string
	Size    string
	Notes   string
}

func (s *Service) Create(ctx context.Context, clientID int64, in CreateInput) (Pet, error) {
	if clientID <= 0 {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ClientID:  clientID,
		Name:      strings.TrimSpace(in.Name),
		Species:   Species(strings.TrimSpace(in.Species)),
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       Sex(strings.TrimSpace(in.Sex)),
		Size:      Size(strings.TrimSpace(in.Size)),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return Pet{}, err
	}
	p.ID = id
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]Pet, error) {
	return s.repo.ListByClient(ctx, clientID)
}
