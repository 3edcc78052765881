package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mattcc18/financy-ledger/internal/ledger"
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

const selectEntryColumns = `
	transaction_id, account_id, amount, transaction_type, category, transaction_date,
	description, merchant, trip_id, transfer_link_id, created_at
`

func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var typeStr string

	var category, description, merchant sql.NullString

	var linkID *uuid.UUID

	if err := s.Scan(
		&e.ID, &e.AccountID, &e.Amount, &typeStr, &category, &e.Date,
		&description, &merchant, &e.TripID, &linkID, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Type = ledger.Type(typeStr)
	e.Category = category.String
	e.Description = description.String
	e.Merchant = merchant.String
	e.TransferLinkID = linkID

	return &e, nil
}

// nullIfEmpty keeps optional text columns NULL instead of storing the empty
// string, matching what scanEntry reads back.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const insertEntryQuery = `
	INSERT INTO transactions (account_id, amount, transaction_type, category, transaction_date,
		description, merchant, trip_id, transfer_link_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	RETURNING transaction_id, created_at
`

func (s *Store) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	err := s.db.QueryRowContext(ctx, insertEntryQuery,
		e.AccountID, e.Amount, e.Type, nullIfEmpty(e.Category), e.Date,
		nullIfEmpty(e.Description), nullIfEmpty(e.Merchant), e.TripID, e.TransferLinkID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating ledger entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM transactions WHERE transaction_id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting ledger entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM transactions WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND transaction_type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND transaction_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND transaction_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY transaction_date DESC, transaction_id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}

	return entries, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting ledger entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

// CreatePair inserts both legs and an optional fee inside one database
// transaction, so a partial failure leaves no orphaned leg behind.
func (s *Store) CreatePair(ctx context.Context, from, to, fee *ledger.Entry) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	entries := []*ledger.Entry{from, to}
	if fee != nil {
		entries = append(entries, fee)
	}

	for _, e := range entries {
		err := dbTx.QueryRowContext(ctx, insertEntryQuery,
			e.AccountID, e.Amount, e.Type, nullIfEmpty(e.Category), e.Date,
			nullIfEmpty(e.Description), nullIfEmpty(e.Merchant), e.TripID, e.TransferLinkID,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting pair leg: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing pair: %w", err)
	}

	return nil
}
