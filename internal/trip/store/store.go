package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattcc18/financy-ledger/internal/trip"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTripColumns = `
	trip_id, trip_name, start_date, end_date, location, description, created_at, updated_at
`

func scanTrip(s scanner) (*trip.Trip, error) {
	var t trip.Trip

	var location, description sql.NullString

	if err := s.Scan(
		&t.ID, &t.Name, &t.StartDate, &t.EndDate, &location, &description,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Location = location.String
	t.Description = description.String

	return &t, nil
}

func (s *Store) CreateTrip(ctx context.Context, t *trip.Trip) error {
	query := `
		INSERT INTO trips (trip_name, start_date, end_date, location, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING trip_id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.Name, t.StartDate, t.EndDate, t.Location, t.Description,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating trip: %w", err)
	}

	return nil
}

func (s *Store) GetTrip(ctx context.Context, id int64) (*trip.Trip, error) {
	query := `SELECT ` + selectTripColumns + ` FROM trips WHERE trip_id = $1`

	t, err := scanTrip(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, trip.ErrNotFound
		}

		return nil, fmt.Errorf("getting trip: %w", err)
	}

	return t, nil
}

func (s *Store) ListTrips(ctx context.Context) ([]*trip.Trip, error) {
	query := `SELECT ` + selectTripColumns + `
		FROM trips
		ORDER BY start_date DESC NULLS LAST, trip_name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	defer rows.Close()

	var trips []*trip.Trip

	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning trip: %w", err)
		}

		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trips: %w", err)
	}

	return trips, nil
}

func (s *Store) FindTripByName(ctx context.Context, name string) (*trip.Trip, error) {
	query := `SELECT ` + selectTripColumns + `
		FROM trips
		WHERE LOWER(trip_name) = LOWER($1)
		LIMIT 1`

	t, err := scanTrip(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, trip.ErrNotFound
		}

		return nil, fmt.Errorf("finding trip by name: %w", err)
	}

	return t, nil
}

func (s *Store) UpdateTrip(ctx context.Context, t *trip.Trip) error {
	query := `
		UPDATE trips
		SET trip_name = $1, start_date = $2, end_date = $3, location = $4, description = $5, updated_at = NOW()
		WHERE trip_id = $6
	`

	res, err := s.db.ExecContext(ctx, query, t.Name, t.StartDate, t.EndDate, t.Location, t.Description, t.ID)
	if err != nil {
		return fmt.Errorf("updating trip: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return trip.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTrip(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE trip_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return trip.ErrNotFound
	}

	return nil
}
