package rate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is one historical exchange rate: 1 unit of base buys Rate units of
// target on Date.
type Rate struct {
	BaseCurrency   string
	TargetCurrency string
	Rate           decimal.Decimal
	Date           time.Time
}

// Snapshot is the rate table for one base currency on one date. The base
// currency itself is always present at 1.0.
type Snapshot struct {
	BaseCurrency string
	Rates        map[string]decimal.Decimal
	Date         *time.Time
}
