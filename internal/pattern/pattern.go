package pattern

import "time"

// Type says what a learned rule's value was matched against.
type Type string

const (
	TypeTransactionType Type = "transaction_type"
	TypeAccountMatch    Type = "account_match"
	TypeCategory        Type = "category"
	TypeMerchant        Type = "merchant"
)

// Pattern is a learned classification rule, keyed by (Type, Value) with Value
// compared case-insensitively. It accumulates: outcome fields are merged on
// repeat confirmations and the rule is never deleted.
type Pattern struct {
	ID              int64
	Type            Type
	Value           string
	AccountID       *int64
	Category        *string
	TransactionType *string
	Confidence      float64
	UsageCount      int
	LastUsed        *time.Time
}
