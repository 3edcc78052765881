package importer

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/mattcc18/financy-ledger/internal/account"
	"github.com/mattcc18/financy-ledger/internal/ledger"
)

var expenseDateLayouts = []dateLayout{
	{"02/01/2006 15:04", true},
	{"02/01/2006", false},
}

// expenseRow is a Revolut expense-export or Monzo line. The two formats share
// this parser; they only differ in column aliases.
type expenseRow struct {
	Date     string
	Amount   string
	Merchant string
	Currency string
	Category string
	TripName string
}

func newExpenseRow(idx headerIndex, record []string) expenseRow {
	return expenseRow{
		Date:     idx.lookup(record, "date"),
		Amount:   idx.lookup(record, "total_amt", "amount"),
		Merchant: idx.lookup(record, "merchandiser", "merchant"),
		Currency: idx.lookup(record, "currency"),
		Category: idx.lookup(record, "expense_category", "category"),
		TripName: idx.lookup(record, "trip"),
	}
}

// parseExpense turns one expense row into a candidate. The type is purely
// amount-sign based since this format never carries transfers. An explicit
// category wins over classification, and a trip name that does not resolve to
// a known trip is kept as text for review.
func (s *Service) parseExpense(ctx context.Context, row expenseRow, accounts []account.Account, defaultAccountID *int64) (*Candidate, error) {
	amount, err := parseAmount(row.Amount)
	if err != nil {
		return nil, err
	}

	txDate, txTime, err := parseRowDate(row.Date, expenseDateLayouts)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(row.Currency)
	if currency == "" {
		currency = "EUR"
	}

	txType := ledger.TypeExpense
	if !amount.IsNegative() {
		txType = ledger.TypeIncome
	}

	accountID, accountConf := s.classifier.matchAccount(ctx, row.Merchant, currency, accounts, defaultAccountID)

	category := row.Category
	if category == "" {
		category = s.classifier.category(ctx, row.Merchant, txType)
	}

	var tripID *int64

	if row.TripName != "" {
		tripID, err = s.trips.LookupByName(ctx, row.TripName)
		if err != nil {
			slog.Warn("trip lookup failed", "trip", row.TripName, "error", err)

			tripID = nil
		}
	}

	return &Candidate{
		TransactionType:   txType,
		AccountID:         accountID,
		AccountConfidence: accountConf,
		Amount:            amount,
		Currency:          currency,
		TransactionDate:   NewDate(txDate),
		TransactionTime:   txTime,
		Description:       row.Merchant,
		Merchant:          row.Merchant,
		Category:          category,
		TripID:            tripID,
		TripName:          row.TripName,
		Confidence:        math.Min(accountConf, confidenceCeiling),
	}, nil
}
