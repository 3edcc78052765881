package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mattcc18/financy-ledger/internal/balance"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// rateJoin resolves the EUR conversion rate in effect on the balance date.
// Rates are stored EUR-based, so holding currencies convert at 1/rate.
const rateJoin = `
	LEFT JOIN LATERAL (
		SELECT 1.0 / er.rate AS rate_to_eur
		FROM exchange_rates er
		WHERE er.base_currency = 'EUR'
		  AND er.target_currency = a.currency_code
		  AND er.rate_date <= %s
		ORDER BY er.rate_date DESC
		LIMIT 1
	) r ON a.currency_code <> 'EUR'
`

func (s *Store) AccountBalances(ctx context.Context, asOf *time.Time) ([]balance.Row, error) {
	query := `
		WITH account_balances AS (
			SELECT account_id, SUM(amount) AS amount, MAX(transaction_date) AS balance_date
			FROM transactions
	`

	var args []any

	if asOf != nil {
		query += " WHERE transaction_date <= $1"

		args = append(args, *asOf)
	}

	query += `
			GROUP BY account_id
		)
		SELECT ab.balance_date, a.account_name, a.account_type, a.institution,
			a.currency_code, ab.amount, COALESCE(r.rate_to_eur, 1.0) AS rate_to_eur
		FROM account_balances ab
		JOIN accounts a ON ab.account_id = a.account_id
	` + fmt.Sprintf(rateJoin, "ab.balance_date") + `
		ORDER BY ab.balance_date DESC, a.account_id
	`

	return s.queryRows(ctx, query, args...)
}

func (s *Store) AccountHistory(ctx context.Context, accountName string) ([]balance.Row, error) {
	query := `
		WITH running AS (
			SELECT t.account_id, t.transaction_date,
				SUM(t.amount) OVER (
					PARTITION BY t.account_id
					ORDER BY t.transaction_date
					ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
				) AS running_balance
			FROM transactions t
			JOIN accounts a ON t.account_id = a.account_id
			WHERE a.account_name = $1
		),
		daily AS (
			SELECT DISTINCT ON (transaction_date)
				account_id, transaction_date AS balance_date, running_balance AS amount
			FROM running
			ORDER BY transaction_date, account_id
		)
		SELECT d.balance_date, a.account_name, a.account_type, a.institution,
			a.currency_code, d.amount, COALESCE(r.rate_to_eur, 1.0) AS rate_to_eur
		FROM daily d
		JOIN accounts a ON d.account_id = a.account_id
	` + fmt.Sprintf(rateJoin, "d.balance_date") + `
		ORDER BY d.balance_date ASC
	`

	return s.queryRows(ctx, query, accountName)
}

func (s *Store) queryRows(ctx context.Context, query string, args ...any) ([]balance.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying balances: %w", err)
	}
	defer rows.Close()

	var result []balance.Row

	for rows.Next() {
		var r balance.Row
		if err := rows.Scan(
			&r.Date, &r.AccountName, &r.AccountType, &r.Institution,
			&r.Currency, &r.Amount, &r.RateToEUR,
		); err != nil {
			return nil, fmt.Errorf("scanning balance: %w", err)
		}

		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating balances: %w", err)
	}

	return result, nil
}
