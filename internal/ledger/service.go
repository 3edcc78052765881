package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id int64) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
	DeleteEntry(ctx context.Context, id int64) error

	// CreatePair inserts both legs of a linked pair, plus an optional fee
	// entry, as one atomic unit: either all rows become visible or none do.
	CreatePair(ctx context.Context, from, to, fee *Entry) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	AccountID   int64
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Date        time.Time
	Description string
	Merchant    string
	TripID      *int64
}

type ListFilter struct {
	AccountID *int64
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	e := &Entry{
		AccountID:   params.AccountID,
		Amount:      params.Amount,
		Type:        params.Type,
		Category:    params.Category,
		Date:        params.Date,
		Description: params.Description,
		Merchant:    params.Merchant,
		TripID:      params.TripID,
	}
	if e.Type == TypeTransfer {
		e.Category = CategoryTransfer
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteEntry(ctx, id)
}

type TransferParams struct {
	FromAccountID   int64
	FromAccountName string
	ToAccountID     int64
	ToAccountName   string
	Amount          decimal.Decimal // positive, in the shared currency
	Date            time.Time
	Description     string
	Fees            decimal.Decimal
	FeeCurrency     string
}

type PairResult struct {
	FromEntry      *Entry
	ToEntry        *Entry
	FeeEntry       *Entry
	TransferLinkID uuid.UUID
}

// Transfer moves money between two accounts in the same currency: one
// negative entry on the source, one positive on the destination, both sharing
// a freshly allocated link id. Each leg's merchant is the other account's
// name. An optional fee becomes a separate expense on the source account.
func (s *Service) Transfer(ctx context.Context, params TransferParams) (*PairResult, error) {
	if params.FromAccountID == params.ToAccountID {
		return nil, fmt.Errorf("cannot transfer to the same account")
	}

	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("transfer amount must be positive")
	}

	if params.Fees.IsNegative() {
		return nil, fmt.Errorf("fees cannot be negative")
	}

	description := params.Description
	if description == "" {
		description = "Transfer between accounts"
	}

	linkID := uuid.New()

	from := &Entry{
		AccountID:      params.FromAccountID,
		Amount:         params.Amount.Neg(),
		Type:           TypeTransfer,
		Category:       CategoryTransfer,
		Date:           params.Date,
		Description:    description + " (from)",
		Merchant:       params.ToAccountName,
		TransferLinkID: &linkID,
	}

	to := &Entry{
		AccountID:      params.ToAccountID,
		Amount:         params.Amount,
		Type:           TypeTransfer,
		Category:       CategoryTransfer,
		Date:           params.Date,
		Description:    description + " (to)",
		Merchant:       params.FromAccountName,
		TransferLinkID: &linkID,
	}

	var fee *Entry
	if params.Fees.IsPositive() {
		fee = &Entry{
			AccountID:   params.FromAccountID,
			Amount:      params.Fees.Neg(),
			Type:        TypeExpense,
			Category:    "Bank Fees",
			Date:        params.Date,
			Description: fmt.Sprintf("Transfer fee: %s %s", params.Fees, params.FeeCurrency),
			Merchant:    "Transfer Fee",
		}
	}

	if err := s.repo.CreatePair(ctx, from, to, fee); err != nil {
		return nil, fmt.Errorf("creating transfer pair: %w", err)
	}

	return &PairResult{FromEntry: from, ToEntry: to, FeeEntry: fee, TransferLinkID: linkID}, nil
}

type ExchangeParams struct {
	FromAccountID   int64
	FromAccountName string
	FromCurrency    string
	ToAccountID     int64
	ToAccountName   string
	ToCurrency      string
	Amount          decimal.Decimal // positive, in the source currency
	ExchangeRate    decimal.Decimal
	Date            time.Time
	Description     string
	Fees            decimal.Decimal
}

// Exchange moves money between accounts in different currencies. The
// destination leg's amount is the source amount converted at the given rate,
// so the two legs are linked but deliberately not equal-and-opposite.
func (s *Service) Exchange(ctx context.Context, params ExchangeParams) (*PairResult, error) {
	if params.FromAccountID == params.ToAccountID {
		return nil, fmt.Errorf("cannot exchange to the same account")
	}

	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	if !params.ExchangeRate.IsPositive() {
		return nil, fmt.Errorf("exchange rate must be positive")
	}

	if params.Fees.IsNegative() {
		return nil, fmt.Errorf("fees cannot be negative")
	}

	toAmount := params.Amount.Mul(params.ExchangeRate).Round(2)

	description := params.Description
	if description == "" {
		description = fmt.Sprintf("Currency exchange: %s %s → %s %s (rate: %s)",
			params.Amount, params.FromCurrency, toAmount, params.ToCurrency, params.ExchangeRate)
	}

	linkID := uuid.New()

	from := &Entry{
		AccountID:      params.FromAccountID,
		Amount:         params.Amount.Neg(),
		Type:           TypeTransfer,
		Category:       CategoryTransfer,
		Date:           params.Date,
		Description:    description + " (from)",
		Merchant:       params.ToAccountName,
		TransferLinkID: &linkID,
	}

	to := &Entry{
		AccountID:      params.ToAccountID,
		Amount:         toAmount,
		Type:           TypeTransfer,
		Category:       CategoryTransfer,
		Date:           params.Date,
		Description:    description + " (to)",
		Merchant:       params.FromAccountName,
		TransferLinkID: &linkID,
	}

	var fee *Entry
	if params.Fees.IsPositive() {
		fee = &Entry{
			AccountID:   params.FromAccountID,
			Amount:      params.Fees.Neg(),
			Type:        TypeExpense,
			Category:    "Bank Fees",
			Date:        params.Date,
			Description: fmt.Sprintf("Currency exchange fee: %s %s", params.Fees, params.FromCurrency),
			Merchant:    "Currency Exchange",
		}
	}

	if err := s.repo.CreatePair(ctx, from, to, fee); err != nil {
		return nil, fmt.Errorf("creating exchange pair: %w", err)
	}

	return &PairResult{FromEntry: from, ToEntry: to, FeeEntry: fee, TransferLinkID: linkID}, nil
}

// CreateLinkedPair persists two prepared entries as the legs of one transfer.
// It stamps both with a shared link id, forces transfer type and category,
// and writes them atomically. Used by the CSV import confirm phase, which
// builds its own legs.
func (s *Service) CreateLinkedPair(ctx context.Context, from, to *Entry) (uuid.UUID, error) {
	linkID := uuid.New()

	for _, e := range []*Entry{from, to} {
		e.Type = TypeTransfer
		e.Category = CategoryTransfer
		e.TransferLinkID = &linkID
	}

	if err := s.repo.CreatePair(ctx, from, to, nil); err != nil {
		return uuid.Nil, fmt.Errorf("creating linked pair: %w", err)
	}

	return linkID, nil
}
