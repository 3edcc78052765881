package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattcc18/financy-ledger/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectGoalColumns = `
	goal_id, name, goal_type, target_amount, current_amount, currency,
	target_date, description, icon, created_at, updated_at
`

func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal

	var description, icon sql.NullString

	if err := s.Scan(
		&g.ID, &g.Name, &g.GoalType, &g.TargetAmount, &g.CurrentAmount, &g.Currency,
		&g.TargetDate, &description, &icon, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}

	g.Description = description.String
	g.Icon = icon.String

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (name, goal_type, target_amount, current_amount, currency,
			target_date, description, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING goal_id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.Name, g.GoalType, g.TargetAmount, g.CurrentAmount, g.Currency,
		g.TargetDate, g.Description, g.Icon,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, id int64) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE goal_id = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, goal_type = $2, target_amount = $3, current_amount = $4,
			currency = $5, target_date = $6, description = $7, icon = $8, updated_at = NOW()
		WHERE goal_id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		g.Name, g.GoalType, g.TargetAmount, g.CurrentAmount,
		g.Currency, g.TargetDate, g.Description, g.Icon, g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goal.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE goal_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
