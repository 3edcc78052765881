package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mattcc18/financy-ledger/internal/rate"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) LatestRates(ctx context.Context, base string, onOrBefore *time.Time) ([]rate.Rate, error) {
	query := `
		SELECT DISTINCT ON (target_currency) base_currency, target_currency, rate, rate_date
		FROM exchange_rates
		WHERE base_currency = $1
	`

	args := []any{base}

	if onOrBefore != nil {
		query += " AND rate_date <= $2"

		args = append(args, *onOrBefore)
	}

	query += " ORDER BY target_currency, rate_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []rate.Rate

	for rows.Next() {
		var r rate.Rate
		if err := rows.Scan(&r.BaseCurrency, &r.TargetCurrency, &r.Rate, &r.Date); err != nil {
			return nil, fmt.Errorf("scanning exchange rate: %w", err)
		}

		rates = append(rates, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchange rates: %w", err)
	}

	return rates, nil
}

func (s *Store) RateHistory(ctx context.Context, base, target string) ([]rate.Rate, error) {
	query := `
		SELECT base_currency, target_currency, rate, rate_date
		FROM exchange_rates
		WHERE base_currency = $1 AND target_currency = $2
		ORDER BY rate_date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, base, target)
	if err != nil {
		return nil, fmt.Errorf("listing rate history: %w", err)
	}
	defer rows.Close()

	var rates []rate.Rate

	for rows.Next() {
		var r rate.Rate
		if err := rows.Scan(&r.BaseCurrency, &r.TargetCurrency, &r.Rate, &r.Date); err != nil {
			return nil, fmt.Errorf("scanning rate history: %w", err)
		}

		rates = append(rates, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rate history: %w", err)
	}

	return rates, nil
}

func (s *Store) UpsertRate(ctx context.Context, r rate.Rate) error {
	query := `
		INSERT INTO exchange_rates (base_currency, target_currency, rate, rate_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (base_currency, target_currency, rate_date)
		DO UPDATE SET rate = EXCLUDED.rate
	`

	if _, err := s.db.ExecContext(ctx, query, r.BaseCurrency, r.TargetCurrency, r.Rate, r.Date); err != nil {
		return fmt.Errorf("upserting exchange rate: %w", err)
	}

	return nil
}
