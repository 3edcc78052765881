package balance

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mattcc18/financy-ledger/internal/rate"
)

// Row is one aggregated balance as the store reports it: the native amount
// plus the EUR conversion rate in effect on the balance date (1.0 for EUR
// accounts and for currencies with no recorded rate).
type Row struct {
	Date        time.Time
	AccountName string
	AccountType string
	Institution string
	Currency    string
	Amount      decimal.Decimal
	RateToEUR   decimal.Decimal
}

type Repository interface {
	// AccountBalances sums the ledger per account, considering only entries
	// on or before the given date when set.
	AccountBalances(ctx context.Context, asOf *time.Time) ([]Row, error)
	// AccountHistory returns the running balance of one account, one row per
	// transaction date, oldest first.
	AccountHistory(ctx context.Context, accountName string) ([]Row, error)
}

// RateSource provides the recorded rate history for one currency pair,
// newest first.
type RateSource interface {
	History(ctx context.Context, base, target string) ([]rate.Rate, error)
}

type Service struct {
	repo  Repository
	rates RateSource
}

func NewService(repo Repository, rates RateSource) *Service {
	return &Service{repo: repo, rates: rates}
}

// Balances returns every account's current position converted to the target
// currency, newest balance date first.
func (s *Service) Balances(ctx context.Context, targetCurrency string, asOf *time.Time) ([]*Balance, error) {
	rows, err := s.repo.AccountBalances(ctx, asOf)
	if err != nil {
		return nil, err
	}

	return s.convert(ctx, rows, targetCurrency)
}

// History returns one account's balance over time converted to the target
// currency, oldest first.
func (s *Service) History(ctx context.Context, accountName, targetCurrency string) ([]*Balance, error) {
	rows, err := s.repo.AccountHistory(ctx, accountName)
	if err != nil {
		return nil, err
	}

	return s.convert(ctx, rows, targetCurrency)
}

// convert produces the EUR value for every row, then applies the EUR to
// target rate in effect on each balance date. Dates with no rate recorded
// yet fall back to 1.0, matching the EUR value.
func (s *Service) convert(ctx context.Context, rows []Row, targetCurrency string) ([]*Balance, error) {
	targetCurrency = strings.ToUpper(targetCurrency)

	var history []rate.Rate

	if targetCurrency != "EUR" {
		var err error

		history, err = s.rates.History(ctx, "EUR", targetCurrency)
		if err != nil {
			return nil, err
		}
	}

	balances := make([]*Balance, len(rows))

	for i, row := range rows {
		b := &Balance{
			Date:        row.Date,
			AccountName: row.AccountName,
			AccountType: row.AccountType,
			Institution: row.Institution,
			Currency:    row.Currency,
			Amount:      row.Amount,
			AmountEUR:   row.Amount.Mul(row.RateToEUR),
		}

		if targetCurrency != "EUR" {
			converted := b.AmountEUR.Mul(rateOn(history, row.Date))
			b.Converted = &converted
		}

		balances[i] = b
	}

	return balances, nil
}

// rateOn picks the most recent rate dated on or before the balance date.
// The history is newest first.
func rateOn(history []rate.Rate, date time.Time) decimal.Decimal {
	for _, r := range history {
		if !r.Date.After(date) {
			return r.Rate
		}
	}

	return decimal.NewFromInt(1)
}

var (
	cashAccountTypes       = []string{"cash", "current", "savings", "checking"}
	investmentAccountTypes = []string{"investment", "pension", "stocks", "isa", "retirement"}
)

// Metrics buckets every balance into cash or investments by account type
// (unrecognized types count as cash) and derives net worth and the
// investment share of it.
func (s *Service) Metrics(ctx context.Context, targetCurrency string, asOf *time.Time) (*Metrics, error) {
	balances, err := s.Balances(ctx, targetCurrency, asOf)
	if err != nil {
		return nil, err
	}

	var cash, investments decimal.Decimal

	for _, b := range balances {
		value := b.AmountEUR
		if b.Converted != nil {
			value = *b.Converted
		}

		if matchesType(b.AccountType, cashAccountTypes) {
			cash = cash.Add(value)
		} else if matchesType(b.AccountType, investmentAccountTypes) {
			investments = investments.Add(value)
		} else {
			cash = cash.Add(value)
		}
	}

	netWorth := cash.Add(investments)

	ratio := decimal.Zero
	if netWorth.IsPositive() {
		ratio = investments.Div(netWorth).Mul(decimal.NewFromInt(100))
	}

	return &Metrics{
		Cash:                cash.Round(2),
		Investments:         investments.Round(2),
		NetWorth:            netWorth.Round(2),
		CashInvestmentRatio: ratio.Round(2),
	}, nil
}

func matchesType(accountType string, types []string) bool {
	accountType = strings.ToLower(accountType)

	for _, t := range types {
		if strings.Contains(accountType, t) {
			return true
		}
	}

	return false
}
