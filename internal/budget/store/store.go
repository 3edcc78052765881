package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattcc18/financy-ledger/internal/budget"
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

const selectBudgetColumns = `
	budget_id, name, currency, income_sources, categories, created_at, updated_at
`

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var incomeSources, categories []byte

	if err := s.Scan(
		&b.ID, &b.Name, &b.Currency, &incomeSources, &categories,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.IncomeSources = incomeSources
	b.Categories = categories

	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (name, currency, income_sources, categories, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING budget_id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.Name, b.Currency, []byte(b.IncomeSources), []byte(b.Categories),
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id int64) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE budget_id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET name = $1, currency = $2, income_sources = $3, categories = $4, updated_at = NOW()
		WHERE budget_id = $5
	`

	res, err := s.db.ExecContext(ctx, query,
		b.Name, b.Currency, []byte(b.IncomeSources), []byte(b.Categories), b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE budget_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return budget.ErrNotFound
	}

	return nil
}
