package expense

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mattcc18/financy-ledger/internal/account"
	"github.com/mattcc18/financy-ledger/internal/trip"
)

type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
}

// AccountSource and TripSource cover the existence checks Create runs before
// inserting.
type AccountSource interface {
	Get(ctx context.Context, id int64) (*account.Account, error)
}

type TripSource interface {
	Get(ctx context.Context, id int64) (*trip.Trip, error)
}

type Service struct {
	repo     Repository
	accounts AccountSource
	trips    TripSource
}

func NewService(repo Repository, accounts AccountSource, trips TripSource) *Service {
	return &Service{repo: repo, accounts: accounts, trips: trips}
}

type CreateParams struct {
	Date        time.Time
	AccountID   int64
	Merchant    string
	Category    string
	Amount      decimal.Decimal
	Currency    string
	Description string
	TripID      *int64
}

// Create validates the referenced account and trip before inserting. A
// missing reference surfaces the source package's ErrNotFound so handlers
// can map it to a 404.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if _, err := s.accounts.Get(ctx, params.AccountID); err != nil {
		return nil, err
	}

	if params.TripID != nil {
		if _, err := s.trips.Get(ctx, *params.TripID); err != nil {
			return nil, err
		}
	}

	e := &Expense{
		Date:        params.Date,
		AccountID:   params.AccountID,
		Merchant:    params.Merchant,
		Category:    params.Category,
		Amount:      params.Amount,
		Currency:    strings.ToUpper(params.Currency),
		Description: params.Description,
		TripID:      params.TripID,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

type ListFilter struct {
	AccountID *int64
	TripID    *int64
	Category  *string
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}
