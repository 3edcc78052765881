package importer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcc18/financy-ledger/internal/account"
	"github.com/mattcc18/financy-ledger/internal/ledger"
	"github.com/mattcc18/financy-ledger/internal/pattern"
)

func newTestClassifier(rules map[string]*pattern.Pattern) *classifier {
	if rules == nil {
		rules = map[string]*pattern.Pattern{}
	}

	return &classifier{patterns: &stubPatterns{rules: rules}}
}

func TestClassifier_TransactionType(t *testing.T) {
	c := newTestClassifier(nil)

	type testCase struct {
		name        string
		rawType     string
		description string
		amount      string
		want        ledger.Type
	}

	tests := []testCase{
		{"Topup", "TOPUP", "Top-Up by card", "50.00", ledger.TypeIncome},
		{"RevPayment", "Rev Payment", "Rev Payment from John", "20.00", ledger.TypeIncome},
		{"PaymentFromDescription", "", "Payment from employer", "-1.00", ledger.TypeIncome},
		{"TransferTo", "Transfer", "Transfer to savings", "-100.00", ledger.TypeTransfer},
		{"TransferFrom", "Transfer", "Received from savings", "100.00", ledger.TypeIncome},
		{"TransferPlain", "Transfer", "Internal movement", "-100.00", ledger.TypeTransfer},
		{"CardPaymentNegative", "Card Payment", "Tesco", "-25.50", ledger.TypeExpense},
		{"CardPaymentPositive", "Card Payment", "Refund", "25.50", ledger.TypeIncome},
		{"ExchangeNegative", "Exchange", "EUR to USD", "-10.00", ledger.TypeExpense},
		{"DefaultBySignNegative", "Something Else", "Mystery", "-1.00", ledger.TypeExpense},
		{"DefaultBySignPositive", "Something Else", "Mystery", "1.00", ledger.TypeIncome},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			assert.Equal(t, tc.want, c.transactionType(context.Background(), tc.rawType, tc.description, amount))
		})
	}
}

func TestClassifier_TransactionType_LearnedRuleWins(t *testing.T) {
	c := newTestClassifier(map[string]*pattern.Pattern{
		"transaction_type|Netflix": {TransactionType: ptr(string("expense")), Confidence: 0.95},
		"transaction_type|Spotify": {TransactionType: ptr(string("expense")), Confidence: 0.5},
	})

	amount := decimal.RequireFromString("10.00")

	// high-confidence rule overrides the amount-sign default
	assert.Equal(t, ledger.TypeExpense, c.transactionType(context.Background(), "", "Netflix", amount))

	// below the trust threshold the static rules apply
	assert.Equal(t, ledger.TypeIncome, c.transactionType(context.Background(), "", "Spotify", amount))
}

func TestClassifier_MatchAccount(t *testing.T) {
	accounts := []account.Account{
		{ID: 1, Name: "Main", Institution: "Revolut", CurrencyCode: "EUR"},
		{ID: 2, Name: "Jane Savings Account", Institution: "Revolut", CurrencyCode: "EUR"},
	}

	c := newTestClassifier(nil)

	t.Run("CounterpartyFromTransferText", func(t *testing.T) {
		id, conf := c.matchAccount(context.Background(), "Transfer to Jane Savings", "EUR", accounts, nil)
		require.NotNil(t, id)
		assert.Equal(t, int64(2), *id)
		assert.InDelta(t, 0.8, conf, 1e-9)
	})

	t.Run("NameInDescription", func(t *testing.T) {
		id, conf := c.matchAccount(context.Background(), "Main account top-up", "EUR", accounts, nil)
		require.NotNil(t, id)
		assert.Equal(t, int64(1), *id)
		assert.InDelta(t, 0.9, conf, 1e-9)
	})

	t.Run("DefaultAccountMatchingCurrency", func(t *testing.T) {
		id, conf := c.matchAccount(context.Background(), "Mystery merchant", "EUR", accounts, ptr(int64(2)))
		require.NotNil(t, id)
		assert.Equal(t, int64(2), *id)
		assert.InDelta(t, 0.9, conf, 1e-9)
	})

	t.Run("FirstCurrencyMatchNeedsReview", func(t *testing.T) {
		id, conf := c.matchAccount(context.Background(), "Mystery merchant", "EUR", accounts, nil)
		require.NotNil(t, id)
		assert.Equal(t, int64(1), *id)
		assert.InDelta(t, 0.5, conf, 1e-9)
	})

	t.Run("NoMatchFallsBackToDefault", func(t *testing.T) {
		id, conf := c.matchAccount(context.Background(), "Mystery merchant", "USD", accounts, ptr(int64(1)))
		require.NotNil(t, id)
		assert.Equal(t, int64(1), *id)
		assert.InDelta(t, 0.3, conf, 1e-9)
	})

	t.Run("NoMatchNoDefault", func(t *testing.T) {
		id, conf := c.matchAccount(context.Background(), "Mystery merchant", "USD", accounts, nil)
		assert.Nil(t, id)
		assert.InDelta(t, 0.3, conf, 1e-9)
	})

	t.Run("LearnedRuleWins", func(t *testing.T) {
		learned := newTestClassifier(map[string]*pattern.Pattern{
			"account_match|Mystery merchant": {AccountID: ptr(int64(2)), Confidence: 0.92},
		})

		id, conf := learned.matchAccount(context.Background(), "Mystery merchant", "USD", accounts, nil)
		require.NotNil(t, id)
		assert.Equal(t, int64(2), *id)
		assert.InDelta(t, 0.92, conf, 1e-9)
	})
}

func TestClassifier_Category(t *testing.T) {
	c := newTestClassifier(map[string]*pattern.Pattern{
		"category|Mystery Sub": {Category: ptr(string("Entertainment")), Confidence: 0.85},
	})

	type testCase struct {
		name        string
		description string
		txType      ledger.Type
		want        string
	}

	tests := []testCase{
		{"TransferAlwaysTransfer", "Tesco", ledger.TypeTransfer, "Transfer"},
		{"KeywordGroceries", "Tesco Store Dublin", ledger.TypeExpense, "Groceries"},
		{"KeywordTravel", "Ryanair flight FR123", ledger.TypeExpense, "Travel"},
		{"FirstCategoryWins", "Tesco store", ledger.TypeExpense, "Groceries"},
		{"LearnedRule", "Mystery Sub", ledger.TypeExpense, "Entertainment"},
		{"NoMatch", "zzz", ledger.TypeExpense, "Other"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.category(context.Background(), tc.description, tc.txType))
		})
	}
}

func TestClassifier_Merchant(t *testing.T) {
	c := newTestClassifier(nil)

	type testCase struct {
		name        string
		description string
		txType      ledger.Type
		want        string
	}

	tests := []testCase{
		{"StripsCardPaymentPrefix", "Card Payment Tesco, Dublin", ledger.TypeExpense, "Tesco"},
		{"StopsAtHyphen", "Tesco - Main St", ledger.TypeExpense, "Tesco"},
		{"TransferCounterparty", "Transfer to John Smith, ref 1", ledger.TypeTransfer, "John Smith"},
		{"TransferFromCounterparty", "Received from Jane Doe", ledger.TypeTransfer, "Jane Doe"},
		{"TransferWithoutMarker", "Salary", ledger.TypeTransfer, ""},
		{"Empty", "", ledger.TypeExpense, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.merchant(tc.description, tc.txType))
		})
	}
}
