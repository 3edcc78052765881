package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("expense not found")

// Expense is a single purchase record, kept separate from the ledger so trip
// spending can be tracked without touching account balances.
type Expense struct {
	ID          int64
	Date        time.Time
	AccountID   int64
	Merchant    string
	Category    string
	Amount      decimal.Decimal
	Currency    string
	Description string
	TripID      *int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
