package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mattcc18/financy-ledger/internal/account"
	"github.com/mattcc18/financy-ledger/internal/encoding"
	"github.com/mattcc18/financy-ledger/internal/ledger"
	"github.com/mattcc18/financy-ledger/internal/pattern"
)

// AccountDirectory is the read surface the importer needs from accounts. The
// full list is loaded once per upload and treated as an immutable snapshot
// for that request.
type AccountDirectory interface {
	List(ctx context.Context) ([]account.Account, error)
	Get(ctx context.Context, id int64) (*account.Account, error)
}

type TripDirectory interface {
	LookupByName(ctx context.Context, name string) (*int64, error)
}

// PatternSource is the learned-rule store. Lookups return nil and writes
// no-op when the backing table is absent; the importer never depends on it.
type PatternSource interface {
	Best(ctx context.Context, patternType pattern.Type, value string) *pattern.Pattern
	Learn(ctx context.Context, params pattern.UpsertParams) error
}

type Ledger interface {
	Create(ctx context.Context, params ledger.CreateParams) (*ledger.Entry, error)
	CreateLinkedPair(ctx context.Context, from, to *ledger.Entry) (uuid.UUID, error)
}

// Service drives the two-phase CSV import: Parse triages an upload into
// confident, uncertain, and failed rows; Confirm persists the rows the user
// accepted and feeds the pattern store. Nothing is persisted between the two
// phases, the client round-trips the candidates.
type Service struct {
	accounts   AccountDirectory
	trips      TripDirectory
	patterns   PatternSource
	entries    Ledger
	classifier *classifier
}

func NewService(accounts AccountDirectory, trips TripDirectory, patterns PatternSource, entries Ledger) *Service {
	return &Service{
		accounts:   accounts,
		trips:      trips,
		patterns:   patterns,
		entries:    entries,
		classifier: &classifier{patterns: patterns},
	}
}

type ParseResult struct {
	Transactions     []*Candidate `json:"transactions"`
	Uncertain        []*Candidate `json:"uncertain"`
	Errors           []string     `json:"errors"`
	TotalParsed      int          `json:"total_parsed"`
	FormatDetected   Format       `json:"format_detected"`
	DefaultAccountID *int64       `json:"default_account_id"`
}

// Parse reads a whole CSV upload and classifies every data row. Unknown
// formats and an invalid default account reject the upload; everything past
// that point is per-row: a failing row is recorded under its 1-based file
// position (the header is row 1) and never aborts the batch. Rows the
// extractor could not make sense of all carry the same "Failed to parse"
// message; only unexpected errors surface their detail to the client.
func (s *Service) Parse(ctx context.Context, file io.Reader, defaultAccountID *int64) (*ParseResult, error) {
	decoded, err := encoding.NewUTF8Reader(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("csv file is empty or invalid")
	}

	format := DetectFormat(headers)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unknown csv format, headers: %s", strings.Join(headers, ", "))
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	if defaultAccountID != nil && !accountExists(accounts, *defaultAccountID) {
		return nil, fmt.Errorf("account %d not found", *defaultAccountID)
	}

	idx := newHeaderIndex(headers)

	result := &ParseResult{
		Transactions:     []*Candidate{},
		Uncertain:        []*Candidate{},
		Errors:           []string{},
		FormatDetected:   format,
		DefaultAccountID: defaultAccountID,
	}

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		var candidate *Candidate

		switch format {
		case FormatRevolutStatement:
			candidate, err = s.parseStatement(ctx, newStatementRow(idx, record), accounts, defaultAccountID)
		default:
			candidate, err = s.parseExpense(ctx, newExpenseRow(idx, record), accounts, defaultAccountID)
		}

		if err != nil {
			if errors.Is(err, errUnparsableRow) {
				slog.Debug("row failed to parse", "row", rowNum, "error", err)

				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Failed to parse", rowNum))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			}

			continue
		}

		if candidate == nil {
			continue
		}

		candidate.RowNumber = rowNum

		if isUncertain(candidate) {
			result.Uncertain = append(result.Uncertain, candidate)
		} else {
			result.Transactions = append(result.Transactions, candidate)
		}
	}

	result.TotalParsed = len(result.Transactions) + len(result.Uncertain)

	return result, nil
}

// isUncertain gates automatic acceptance. A transfer without an identified
// counterparty, anything below the confidence thresholds, and anything with
// no matched account all go to human review.
func isUncertain(c *Candidate) bool {
	if c.TransactionType == ledger.TypeTransfer && c.TransferToAccountID == nil && c.AccountConfidence < 0.8 {
		return true
	}

	return c.Confidence < 0.7 || c.AccountConfidence < 0.7 || c.AccountID == nil
}

func accountExists(accounts []account.Account, id int64) bool {
	for _, a := range accounts {
		if a.ID == id {
			return true
		}
	}

	return false
}

type ConfirmResult struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}

// Confirm persists a reviewed batch. Candidates missing an account or date
// are skipped silently. A transfer with a resolved counterparty becomes a
// linked pair written atomically and counted as two imported rows; everything
// else, including a transfer without one, becomes a single entry. Failures
// are isolated per candidate. Each persisted candidate feeds a fully trusted
// merchant rule back into the pattern store.
//
// Confirming the same batch twice creates duplicate entries, there is no
// dedup key.
func (s *Service) Confirm(ctx context.Context, candidates []Candidate) (*ConfirmResult, error) {
	var imported, pairs int

	for i := range candidates {
		c := &candidates[i]

		if c.AccountID == nil || c.TransactionDate == nil || c.TransactionDate.IsZero() {
			continue
		}

		if c.TransactionType == ledger.TypeTransfer && c.TransferToAccountID != nil {
			if err := s.confirmPair(ctx, c); err != nil {
				slog.Error("failed to import transfer pair", "row", c.RowNumber, "error", err)
				continue
			}

			imported += 2
			pairs++
		} else {
			_, err := s.entries.Create(ctx, ledger.CreateParams{
				AccountID:   *c.AccountID,
				Amount:      c.Amount,
				Type:        c.TransactionType,
				Category:    c.Category,
				Date:        c.TransactionDate.Time,
				Description: c.Description,
				Merchant:    c.Merchant,
				TripID:      c.TripID,
			})
			if err != nil {
				slog.Error("failed to import transaction", "row", c.RowNumber, "error", err)
				continue
			}

			imported++
		}

		s.learn(ctx, c)
	}

	message := fmt.Sprintf("Successfully imported %d transactions", imported)
	if pairs > 0 {
		message += fmt.Sprintf(" (%d transfer pairs)", pairs)
	}

	return &ConfirmResult{Message: message, Imported: imported}, nil
}

// confirmPair synthesizes both legs of a linked transfer. The sign of the
// candidate's amount decides which account is debited, amounts are exact
// negatives of the absolute amount, each leg's merchant is the other
// account's name, and both descriptions carry the from/to decoration.
func (s *Service) confirmPair(ctx context.Context, c *Candidate) error {
	amount := c.Amount.Abs()

	fromID, toID := *c.AccountID, *c.TransferToAccountID
	if !c.Amount.IsNegative() {
		fromID, toID = toID, fromID
	}

	fromName := s.accountName(ctx, fromID)
	toName := s.accountName(ctx, toID)

	description := c.Description
	if description == "" {
		description = "Transfer between accounts"
	}

	description = fmt.Sprintf("%s (from %s to %s)", description, fromName, toName)

	from := &ledger.Entry{
		AccountID:   fromID,
		Amount:      amount.Neg(),
		Date:        c.TransactionDate.Time,
		Description: description,
		Merchant:    toName,
	}

	to := &ledger.Entry{
		AccountID:   toID,
		Amount:      amount,
		Date:        c.TransactionDate.Time,
		Description: description,
		Merchant:    fromName,
	}

	_, err := s.entries.CreateLinkedPair(ctx, from, to)

	return err
}

func (s *Service) accountName(ctx context.Context, id int64) string {
	a, err := s.accounts.Get(ctx, id)
	if err != nil {
		return "Unknown Account"
	}

	return a.Name
}

// learn records the user's confirmed classification as a merchant rule keyed
// by the description, falling back to the merchant. Confidence is fixed at
// 0.9 since a human signed off on it.
func (s *Service) learn(ctx context.Context, c *Candidate) {
	value := c.Description
	if value == "" {
		value = c.Merchant
	}

	if value == "" {
		return
	}

	txType := string(c.TransactionType)
	params := pattern.UpsertParams{
		Type:            pattern.TypeMerchant,
		Value:           value,
		AccountID:       c.AccountID,
		TransactionType: &txType,
		Confidence:      0.9,
	}

	if c.Category != "" {
		params.Category = &c.Category
	}

	if err := s.patterns.Learn(ctx, params); err != nil {
		slog.Warn("failed to save learned pattern", "value", value, "error", err)
	}
}
