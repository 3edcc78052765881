package importer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mattcc18/financy-ledger/internal/account"
	"github.com/mattcc18/financy-ledger/internal/ledger"
)

// confidenceCeiling caps overall row confidence: a CSV import is never
// treated as fully certain.
const confidenceCeiling = 0.8

// errUnparsableRow marks a row the extractor could not turn into a
// candidate. The orchestrator reports all of these with one uniform message
// and keeps the wrapped detail for debug logging only.
var errUnparsableRow = errors.New("unparsable row")

type dateLayout struct {
	layout  string
	hasTime bool
}

var statementDateLayouts = []dateLayout{
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
	{"02/01/2006 15:04", true},
	{"02/01/2006", false},
}

// parseRowDate tries each layout in order and returns the date plus an HH:MM
// time when the matching layout carried one.
func parseRowDate(s string, layouts []dateLayout) (time.Time, string, error) {
	for _, l := range layouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}

		if l.hasTime {
			return t, t.Format("15:04"), nil
		}

		return t, "", nil
	}

	return time.Time{}, "", fmt.Errorf("%w: unrecognized date %q", errUnparsableRow, s)
}

// parseAmount parses a signed decimal after stripping thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: missing amount", errUnparsableRow)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid amount %q", errUnparsableRow, s)
	}

	return amount, nil
}

// statementRow is a Revolut account-statement line.
type statementRow struct {
	Type          string
	Description   string
	Amount        string
	Currency      string
	StartedDate   string
	CompletedDate string
	State         string
}

func newStatementRow(idx headerIndex, record []string) statementRow {
	return statementRow{
		Type:          idx.lookup(record, "type"),
		Description:   idx.lookup(record, "description"),
		Amount:        idx.lookup(record, "amount"),
		Currency:      idx.lookup(record, "currency"),
		StartedDate:   idx.lookup(record, "started date"),
		CompletedDate: idx.lookup(record, "completed date"),
		State:         idx.lookup(record, "state"),
	}
}

// parseStatement turns one statement row into a candidate. REVERTED rows
// produce neither a candidate nor an error. The started date is preferred
// over the completed date when both are present.
//
// Transfer direction shortcuts: a negative-amount transfer is assumed to
// originate from the upload's account, and a positive-amount transfer whose
// counterparty was found in the description is attributed to that account.
// Everything else goes through the full matching cascade.
func (s *Service) parseStatement(ctx context.Context, row statementRow, accounts []account.Account, defaultAccountID *int64) (*Candidate, error) {
	if row.State == "REVERTED" {
		return nil, nil
	}

	dateStr := row.StartedDate
	if dateStr == "" {
		dateStr = row.CompletedDate
	}

	if dateStr == "" {
		return nil, fmt.Errorf("%w: missing transaction date", errUnparsableRow)
	}

	amount, err := parseAmount(row.Amount)
	if err != nil {
		return nil, err
	}

	txDate, txTime, err := parseRowDate(dateStr, statementDateLayouts)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(row.Currency)
	if currency == "" {
		currency = "EUR"
	}

	txType := s.classifier.transactionType(ctx, row.Type, row.Description, amount)

	var transferTo *int64
	if txType == ledger.TypeTransfer {
		transferTo = findCounterparty(row.Description, accounts)
	}

	var (
		accountID   *int64
		accountConf float64
	)

	switch {
	case txType == ledger.TypeTransfer && amount.IsNegative():
		accountID, accountConf = defaultAccountID, 0.95
	case txType == ledger.TypeTransfer && amount.IsPositive() && transferTo != nil:
		accountID, accountConf = transferTo, 0.85
	default:
		accountID, accountConf = s.classifier.matchAccount(ctx, row.Description, currency, accounts, defaultAccountID)
	}

	return &Candidate{
		TransactionType:     txType,
		AccountID:           accountID,
		AccountConfidence:   accountConf,
		Amount:              amount,
		Currency:            currency,
		TransactionDate:     NewDate(txDate),
		TransactionTime:     txTime,
		Description:         row.Description,
		Merchant:            s.classifier.merchant(row.Description, txType),
		Category:            s.classifier.category(ctx, row.Description, txType),
		TransferToAccountID: transferTo,
		Confidence:          math.Min(accountConf, confidenceCeiling),
	}, nil
}
