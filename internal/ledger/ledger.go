package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the kind of ledger movement.
type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeTransfer Type = "transfer"
)

// CategoryTransfer is the category forced onto every transfer entry.
const CategoryTransfer = "Transfer"

// Entry is one signed amount on one account. Amounts are negative when money
// leaves the account. The two sides of a transfer are two entries sharing a
// TransferLinkID.
type Entry struct {
	ID             int64
	AccountID      int64
	Amount         decimal.Decimal
	Type           Type
	Category       string
	Date           time.Time
	Description    string
	Merchant       string
	TripID         *int64
	TransferLinkID *uuid.UUID
	CreatedAt      time.Time
}
