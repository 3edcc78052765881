package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcc18/financy-ledger/internal/ledger"
	"github.com/mattcc18/financy-ledger/internal/pattern"
)

func TestService_ParseExpense(t *testing.T) {
	accounts := testAccounts()

	newSvc := func(trips map[string]int64) *Service {
		return NewService(
			&stubAccounts{accounts: accounts},
			&stubTrips{byName: trips},
			&stubPatterns{rules: map[string]*pattern.Pattern{}},
			&stubLedger{},
		)
	}

	t.Run("NegativeAmountIsExpense", func(t *testing.T) {
		svc := newSvc(nil)

		c, err := svc.parseExpense(context.Background(), expenseRow{
			Date:     "02/01/2025 10:30",
			Amount:   "-12.40",
			Merchant: "Tesco",
			Currency: "EUR",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		require.NotNil(t, c)

		assert.Equal(t, ledger.TypeExpense, c.TransactionType)
		assert.Equal(t, "Tesco", c.Description)
		assert.Equal(t, "Tesco", c.Merchant)
		assert.Equal(t, "Groceries", c.Category)
		assert.Equal(t, "2025-01-02", c.TransactionDate.Format("2006-01-02"))
		assert.Equal(t, "10:30", c.TransactionTime)
	})

	t.Run("PositiveAmountIsIncome", func(t *testing.T) {
		svc := newSvc(nil)

		c, err := svc.parseExpense(context.Background(), expenseRow{
			Date:     "02/01/2025",
			Amount:   "100.00",
			Merchant: "Refund",
			Currency: "EUR",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		assert.Equal(t, ledger.TypeIncome, c.TransactionType)
		assert.Empty(t, c.TransactionTime)
	})

	t.Run("ExplicitCategoryWins", func(t *testing.T) {
		svc := newSvc(nil)

		c, err := svc.parseExpense(context.Background(), expenseRow{
			Date:     "02/01/2025",
			Amount:   "-12.40",
			Merchant: "Tesco",
			Currency: "EUR",
			Category: "Work Lunch",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		assert.Equal(t, "Work Lunch", c.Category)
	})

	t.Run("TripResolvesToID", func(t *testing.T) {
		svc := newSvc(map[string]int64{"paris 2025": 7})

		c, err := svc.parseExpense(context.Background(), expenseRow{
			Date:     "02/01/2025",
			Amount:   "-12.40",
			Merchant: "Cafe",
			Currency: "EUR",
			TripName: "Paris 2025",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		require.NotNil(t, c.TripID)
		assert.Equal(t, int64(7), *c.TripID)
		assert.Equal(t, "Paris 2025", c.TripName)
	})

	t.Run("UnknownTripKeepsName", func(t *testing.T) {
		svc := newSvc(nil)

		c, err := svc.parseExpense(context.Background(), expenseRow{
			Date:     "02/01/2025",
			Amount:   "-12.40",
			Merchant: "Cafe",
			Currency: "EUR",
			TripName: "Atlantis",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		assert.Nil(t, c.TripID)
		assert.Equal(t, "Atlantis", c.TripName)
	})

	t.Run("BadDate", func(t *testing.T) {
		svc := newSvc(nil)

		_, err := svc.parseExpense(context.Background(), expenseRow{
			Date:     "2025-01-02",
			Amount:   "-12.40",
			Merchant: "Tesco",
			Currency: "EUR",
		}, accounts, ptr(int64(1)))

		require.ErrorIs(t, err, errUnparsableRow)
		require.ErrorContains(t, err, "unrecognized date")
	})
}

func TestNewExpenseRow_ColumnAliases(t *testing.T) {
	idx := newHeaderIndex([]string{"date", "total_amt", "merchandiser", "currency", "expense_category", "Trip"})

	row := newExpenseRow(idx, []string{"02/01/2025", "-5.00", "Cafe", "EUR", "Food", "Paris"})

	assert.Equal(t, "-5.00", row.Amount)
	assert.Equal(t, "Cafe", row.Merchant)
	assert.Equal(t, "Food", row.Category)
	assert.Equal(t, "Paris", row.TripName)
}

func TestNewExpenseRow_FallbackAliases(t *testing.T) {
	idx := newHeaderIndex([]string{"date", "amount", "merchant", "currency", "category"})

	row := newExpenseRow(idx, []string{"02/01/2025", "-5.00", "Cafe", "EUR", "Food"})

	assert.Equal(t, "-5.00", row.Amount)
	assert.Equal(t, "Cafe", row.Merchant)
	assert.Equal(t, "Food", row.Category)
	assert.Empty(t, row.TripName)
}
