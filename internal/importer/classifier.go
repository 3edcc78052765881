package importer

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mattcc18/financy-ledger/internal/account"
	"github.com/mattcc18/financy-ledger/internal/ledger"
	"github.com/mattcc18/financy-ledger/internal/pattern"
)

// learnedTrust is the minimum confidence a learned rule needs before the
// classifier prefers it over the static fallbacks.
const learnedTrust = 0.7

// categoryKeywords maps categories to description keywords, checked in order
// with the first matching category winning.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Groceries", []string{"tesco", "lidl", "aldi", "dunnes", "supermarket", "groceries", "boots", "costcutter"}},
	{"Restaurants", []string{"restaurant", "cafe", "mcdonald", "burger king", "pizza", "food", "wetherspoon", "fratelli"}},
	{"Transport", []string{"uber", "bolt", "free now", "trainline", "stagecoach", "transport", "taxi", "dsb", "rhônexpress"}},
	{"Shopping", []string{"amazon", "temu", "shopping", "store", "tenpin"}},
	{"Travel", []string{"ryanair", "hotel", "airbnb", "travel", "flight", "expedia"}},
	{"Entertainment", []string{"movies", "cinema", "entertainment", "patreon"}},
	{"Bills", []string{"giffgaff", "phone", "bill"}},
	{"Fitness", []string{"fitness", "gym", "badminton", "anytime fitness"}},
	{"Education", []string{"education", "italki"}},
	{"General", []string{"general", "register office"}},
}

// classifier is the heuristic engine behind CSV import. Each method trusts a
// sufficiently confident learned rule first and only then falls back to
// static rules.
type classifier struct {
	patterns PatternSource
}

// transactionType buckets a row into income, expense, or transfer from the
// bank's raw type label, the description, and the amount sign.
func (c *classifier) transactionType(ctx context.Context, rawType, description string, amount decimal.Decimal) ledger.Type {
	if p := c.patterns.Best(ctx, pattern.TypeTransactionType, description); p != nil && p.Confidence > learnedTrust && p.TransactionType != nil {
		switch t := ledger.Type(*p.TransactionType); t {
		case ledger.TypeIncome, ledger.TypeExpense, ledger.TypeTransfer:
			return t
		}
	}

	raw := strings.ToLower(strings.TrimSpace(rawType))
	desc := strings.ToLower(description)

	switch {
	case raw == "topup" || raw == "rev payment" || strings.Contains(desc, "payment from"):
		return ledger.TypeIncome
	case raw == "transfer":
		switch {
		case strings.Contains(desc, "to ") || strings.Contains(desc, "transfer to"):
			return ledger.TypeTransfer
		case strings.Contains(desc, "from ") || strings.Contains(desc, "transfer from"):
			return ledger.TypeIncome
		default:
			return ledger.TypeTransfer
		}
	case raw == "card payment" || raw == "exchange":
		if amount.IsNegative() {
			return ledger.TypeExpense
		}

		return ledger.TypeIncome
	default:
		if amount.IsNegative() {
			return ledger.TypeExpense
		}

		return ledger.TypeIncome
	}
}

// matchAccount resolves which internal account a row belongs to. The cascade
// short-circuits on the first hit: learned rule, transfer counterparty,
// name or institution mentioned in the description, the upload's default
// account, first account sharing the currency, and finally the default
// account at rock-bottom confidence.
func (c *classifier) matchAccount(ctx context.Context, description, currency string, accounts []account.Account, defaultAccountID *int64) (*int64, float64) {
	if p := c.patterns.Best(ctx, pattern.TypeAccountMatch, description); p != nil && p.Confidence > learnedTrust {
		return p.AccountID, p.Confidence
	}

	desc := strings.ToLower(description)

	if strings.Contains(desc, "transfer") || strings.Contains(desc, "to ") || strings.Contains(desc, "from ") {
		if id := findCounterparty(description, accounts); id != nil {
			return id, 0.8
		}
	}

	var sameCurrency []account.Account

	for _, a := range accounts {
		if a.CurrencyCode == currency {
			sameCurrency = append(sameCurrency, a)
		}
	}

	for _, a := range sameCurrency {
		if strings.Contains(desc, strings.ToLower(a.Name)) ||
			(a.Institution != "" && strings.Contains(desc, strings.ToLower(a.Institution))) {
			id := a.ID
			return &id, 0.9
		}
	}

	if defaultAccountID != nil {
		for _, a := range accounts {
			if a.ID == *defaultAccountID && a.CurrencyCode == currency {
				return defaultAccountID, 0.9
			}
		}
	}

	if len(sameCurrency) > 0 {
		id := sameCurrency[0].ID
		return &id, 0.5
	}

	return defaultAccountID, 0.3
}

// category labels a row. Transfers are always "Transfer" with no lookup; for
// everything else a learned rule wins over the keyword table, and "Other" is
// the final fallback.
func (c *classifier) category(ctx context.Context, description string, txType ledger.Type) string {
	if txType == ledger.TypeTransfer {
		return ledger.CategoryTransfer
	}

	if p := c.patterns.Best(ctx, pattern.TypeCategory, description); p != nil && p.Confidence > learnedTrust && p.Category != nil && *p.Category != "" {
		return *p.Category
	}

	desc := strings.ToLower(description)

	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(desc, keyword) {
				return entry.category
			}
		}
	}

	return "Other"
}

var merchantPrefixes = []string{"Card Payment", "Payment", "Rev Payment"}

// merchant pulls a merchant name out of the description. For transfers it is
// the counterparty text after "to "/"from "; for everything else the leading
// text once known bank prefixes are stripped. Returns "" when nothing usable
// remains.
func (c *classifier) merchant(description string, txType ledger.Type) string {
	if description == "" {
		return ""
	}

	if txType == ledger.TypeTransfer {
		desc := strings.ToLower(description)

		for _, marker := range []string{"to ", "from "} {
			i := strings.Index(desc, marker)
			if i < 0 {
				continue
			}

			m, _, _ := strings.Cut(description[i+len(marker):], ",")

			return strings.TrimSpace(m)
		}

		return ""
	}

	desc := description
	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(desc, prefix) {
			desc = strings.TrimSpace(desc[len(prefix):])
		}
	}

	m, _, _ := strings.Cut(desc, ",")
	m, _, _ = strings.Cut(m, "-")

	return strings.TrimSpace(m)
}
