package trip

import (
	"context"
	"errors"
	"time"
)

type Repository interface {
	CreateTrip(ctx context.Context, t *Trip) error
	GetTrip(ctx context.Context, id int64) (*Trip, error)
	ListTrips(ctx context.Context) ([]*Trip, error)
	FindTripByName(ctx context.Context, name string) (*Trip, error)
	UpdateTrip(ctx context.Context, t *Trip) error
	DeleteTrip(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	StartDate   *time.Time
	EndDate     *time.Time
	Location    string
	Description string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Trip, error) {
	t := &Trip{
		Name:        params.Name,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Location:    params.Location,
		Description: params.Description,
	}
	if err := s.repo.CreateTrip(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Trip, error) {
	return s.repo.GetTrip(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Trip, error) {
	return s.repo.ListTrips(ctx)
}

// LookupByName resolves a trip name to its id using a case-insensitive exact
// match. Returns nil (not an error) when no trip has that name, so callers
// can keep the raw name around for review.
func (s *Service) LookupByName(ctx context.Context, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}

	t, err := s.repo.FindTripByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &t.ID, nil
}

func (s *Service) Update(ctx context.Context, t *Trip) error {
	return s.repo.UpdateTrip(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTrip(ctx, id)
}
