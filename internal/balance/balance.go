package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is one account's aggregated position at a point in time. AmountEUR
// is the native amount converted at the rate in effect on the balance date;
// Converted is set only when a non-EUR target currency was requested.
type Balance struct {
	Date        time.Time
	AccountName string
	AccountType string
	Institution string
	Currency    string
	Amount      decimal.Decimal
	AmountEUR   decimal.Decimal
	Converted   *decimal.Decimal
}

// Metrics are the headline numbers for the dashboard. Accounts are bucketed
// as cash or investments by their account type; the ratio is the investment
// share of net worth as a percentage.
type Metrics struct {
	Cash                decimal.Decimal `json:"cash"`
	Investments         decimal.Decimal `json:"investments"`
	NetWorth            decimal.Decimal `json:"net_worth"`
	CashInvestmentRatio decimal.Decimal `json:"cash_investment_ratio"`
}
