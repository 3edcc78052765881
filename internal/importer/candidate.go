package importer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mattcc18/financy-ledger/internal/ledger"
)

// Date is a calendar day that round-trips as "YYYY-MM-DD" in upload responses
// and confirm requests.
type Date struct {
	time.Time
}

func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		return nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q", s)
		}
	}

	d.Time = t

	return nil
}

// Candidate is one parsed CSV row: a proposed ledger entry plus the
// confidence scores the review gate runs on. A nil AccountID means account
// matching failed and the row needs human resolution.
//
// Amount is signed, negative meaning money leaving the matched account.
// Currency is whatever the source row stated, which is not necessarily the
// matched account's currency.
type Candidate struct {
	TransactionType     ledger.Type     `json:"transaction_type"`
	AccountID           *int64          `json:"account_id"`
	AccountConfidence   float64         `json:"account_confidence"`
	Amount              decimal.Decimal `json:"amount"`
	Currency            string          `json:"currency"`
	TransactionDate     *Date           `json:"transaction_date"`
	TransactionTime     string          `json:"transaction_time,omitempty"`
	Description         string          `json:"description"`
	Merchant            string          `json:"merchant,omitempty"`
	Category            string          `json:"category"`
	TransferToAccountID *int64          `json:"transfer_to_account_id,omitempty"`
	TripID              *int64          `json:"trip_id,omitempty"`
	TripName            string          `json:"trip_name,omitempty"`
	Confidence          float64         `json:"confidence"`
	RowNumber           int             `json:"row_number"`
}
