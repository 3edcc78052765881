package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattcc18/financy-ledger/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateCategory inserts a category after a case-insensitive name check, so
// "groceries" and "Groceries" cannot coexist.
func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	var existingID int64

	err := s.db.QueryRowContext(ctx,
		`SELECT category_id FROM categories WHERE LOWER(category_name) = LOWER($1)`,
		c.Name,
	).Scan(&existingID)

	switch {
	case err == nil:
		return category.ErrExists
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking category name: %w", err)
	}

	query := `
		INSERT INTO categories (category_name, category_type)
		VALUES ($1, $2)
		RETURNING category_id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query, c.Name, c.Type).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context, categoryType *string) ([]*category.Category, error) {
	query := `
		SELECT category_id, category_name, category_type, created_at, updated_at
		FROM categories
	`

	var args []any

	if categoryType != nil {
		query += " WHERE category_type = $1"

		args = append(args, *categoryType)
	}

	query += " ORDER BY category_type, category_name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}
