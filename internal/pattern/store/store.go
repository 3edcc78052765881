package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattcc18/financy-ledger/internal/pattern"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Available probes for the import_patterns table. Probed per call rather than
// cached so the table can be created while the server is running.
func (s *Store) Available(ctx context.Context) bool {
	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = 'import_patterns'
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		return false
	}

	return exists
}

// FindBest returns the single strongest rule for an exact case-insensitive
// value match: highest usage count first, confidence as tie-break.
func (s *Store) FindBest(ctx context.Context, patternType pattern.Type, value string) (*pattern.Pattern, error) {
	query := `
		SELECT pattern_id, pattern_type, pattern_value, matched_account_id,
			matched_category, matched_transaction_type, confidence_score, usage_count, last_used
		FROM import_patterns
		WHERE pattern_type = $1 AND LOWER(pattern_value) = LOWER($2)
		ORDER BY usage_count DESC, confidence_score DESC
		LIMIT 1
	`

	var p pattern.Pattern

	var typeStr string

	err := s.db.QueryRowContext(ctx, query, patternType, value).Scan(
		&p.ID, &typeStr, &p.Value, &p.AccountID,
		&p.Category, &p.TransactionType, &p.Confidence, &p.UsageCount, &p.LastUsed,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding pattern: %w", err)
	}

	p.Type = pattern.Type(typeStr)

	return &p, nil
}

// Upsert creates the rule or merges into an existing one. Merging never
// overwrites a non-null outcome field with null and never lowers the
// confidence score.
func (s *Store) Upsert(ctx context.Context, params pattern.UpsertParams) error {
	var existingID int64

	findQuery := `
		SELECT pattern_id FROM import_patterns
		WHERE pattern_type = $1 AND LOWER(pattern_value) = LOWER($2)
		LIMIT 1
	`

	err := s.db.QueryRowContext(ctx, findQuery, params.Type, params.Value).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("checking pattern: %w", err)
	}

	if err == sql.ErrNoRows {
		insertQuery := `
			INSERT INTO import_patterns
				(pattern_type, pattern_value, matched_account_id, matched_category,
				 matched_transaction_type, confidence_score, usage_count, last_used)
			VALUES ($1, $2, $3, $4, $5, $6, 1, NOW())
		`

		if _, err := s.db.ExecContext(ctx, insertQuery,
			params.Type, params.Value, params.AccountID, params.Category,
			params.TransactionType, params.Confidence,
		); err != nil {
			return fmt.Errorf("inserting pattern: %w", err)
		}

		return nil
	}

	updateQuery := `
		UPDATE import_patterns
		SET usage_count = usage_count + 1,
			matched_account_id = COALESCE($1, matched_account_id),
			matched_category = COALESCE($2, matched_category),
			matched_transaction_type = COALESCE($3, matched_transaction_type),
			confidence_score = GREATEST(confidence_score, $4),
			last_used = NOW()
		WHERE pattern_id = $5
	`

	if _, err := s.db.ExecContext(ctx, updateQuery,
		params.AccountID, params.Category, params.TransactionType,
		params.Confidence, existingID,
	); err != nil {
		return fmt.Errorf("updating pattern: %w", err)
	}

	return nil
}
