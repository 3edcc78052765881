package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattcc18/financy-ledger/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (account_name, account_type, institution, currency_code)
		VALUES ($1, $2, $3, $4)
		RETURNING account_id
	`

	err := s.db.QueryRowContext(ctx, query, a.Name, a.Type, a.Institution, a.CurrencyCode).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	query := `
		SELECT account_id, account_name, account_type, institution, currency_code
		FROM accounts
		WHERE account_id = $1
	`

	var a account.Account

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Name, &a.Type, &a.Institution, &a.CurrencyCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return &a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]account.Account, error) {
	query := `
		SELECT account_id, account_name, account_type, institution, currency_code
		FROM accounts
		ORDER BY account_name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account

	for rows.Next() {
		var a account.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Institution, &a.CurrencyCode); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET account_name = $1, account_type = $2, institution = $3, currency_code = $4
		WHERE account_id = $5
	`

	res, err := s.db.ExecContext(ctx, query, a.Name, a.Type, a.Institution, a.CurrencyCode, a.ID)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE account_id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	return nil
}
