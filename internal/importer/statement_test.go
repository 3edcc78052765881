package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcc18/financy-ledger/internal/ledger"
)

func TestService_ParseStatement(t *testing.T) {
	accounts := testAccounts()
	svc, _, _ := newTestService(accounts)

	t.Run("RevertedRowProducesNothing", func(t *testing.T) {
		c, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Card Payment",
			Description: "Tesco",
			Amount:      "-25.50",
			Currency:    "EUR",
			StartedDate: "2025-01-02 10:00:00",
			State:       "REVERTED",
		}, accounts, nil)

		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("CardPaymentNegativeIsExpense", func(t *testing.T) {
		c, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Card Payment",
			Description: "Tesco Store",
			Amount:      "-25.50",
			Currency:    "EUR",
			StartedDate: "2025-01-02 10:00:00",
			State:       "COMPLETED",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		require.NotNil(t, c)

		assert.Equal(t, ledger.TypeExpense, c.TransactionType)
		assert.Equal(t, "-25.5", c.Amount.String())
		assert.Equal(t, "Groceries", c.Category)
		assert.Equal(t, "Tesco Store", c.Merchant)
		assert.Equal(t, "2025-01-02", c.TransactionDate.Format("2006-01-02"))
		assert.Equal(t, "10:00", c.TransactionTime)
		assert.LessOrEqual(t, c.Confidence, 0.8)
	})

	t.Run("ThousandsSeparatorStripped", func(t *testing.T) {
		c, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Card Payment",
			Description: "Big purchase",
			Amount:      "-1,234.56",
			Currency:    "EUR",
			StartedDate: "2025-01-02",
			State:       "COMPLETED",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "-1234.56", c.Amount.String())
		assert.Empty(t, c.TransactionTime)
	})

	t.Run("StartedDatePreferred", func(t *testing.T) {
		c, err := svc.parseStatement(context.Background(), statementRow{
			Type:          "Card Payment",
			Description:   "Tesco",
			Amount:        "-1.00",
			Currency:      "EUR",
			StartedDate:   "2025-01-02",
			CompletedDate: "2025-01-05",
			State:         "COMPLETED",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		assert.Equal(t, "2025-01-02", c.TransactionDate.Format("2006-01-02"))
	})

	t.Run("SlashDateFormat", func(t *testing.T) {
		c, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Card Payment",
			Description: "Tesco",
			Amount:      "-1.00",
			Currency:    "EUR",
			StartedDate: "01/09/2025 13:31",
			State:       "COMPLETED",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		assert.Equal(t, "2025-09-01", c.TransactionDate.Format("2006-01-02"))
		assert.Equal(t, "13:31", c.TransactionTime)
	})

	t.Run("NegativeTransferUsesDefaultAccount", func(t *testing.T) {
		c, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Transfer",
			Description: "Transfer to Jane Savings",
			Amount:      "-100.00",
			Currency:    "EUR",
			StartedDate: "2025-01-03",
			State:       "COMPLETED",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		require.NotNil(t, c)

		assert.Equal(t, ledger.TypeTransfer, c.TransactionType)
		assert.Equal(t, "Transfer", c.Category)
		require.NotNil(t, c.AccountID)
		assert.Equal(t, int64(1), *c.AccountID)
		assert.InDelta(t, 0.95, c.AccountConfidence, 1e-9)
		require.NotNil(t, c.TransferToAccountID)
		assert.Equal(t, int64(2), *c.TransferToAccountID)
	})

	t.Run("PositiveTransferAttributedToCounterparty", func(t *testing.T) {
		c, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Transfer",
			Description: "Transfer to Jane Savings",
			Amount:      "100.00",
			Currency:    "EUR",
			StartedDate: "2025-01-03",
			State:       "COMPLETED",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		require.NotNil(t, c.AccountID)
		assert.Equal(t, int64(2), *c.AccountID)
		assert.InDelta(t, 0.85, c.AccountConfidence, 1e-9)
	})

	t.Run("MissingCurrencyDefaultsToEUR", func(t *testing.T) {
		c, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Card Payment",
			Description: "Tesco",
			Amount:      "-1.00",
			StartedDate: "2025-01-02",
			State:       "COMPLETED",
		}, accounts, ptr(int64(1)))

		require.NoError(t, err)
		assert.Equal(t, "EUR", c.Currency)
	})

	t.Run("BadAmount", func(t *testing.T) {
		_, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Card Payment",
			Description: "Tesco",
			Amount:      "abc",
			Currency:    "EUR",
			StartedDate: "2025-01-02",
			State:       "COMPLETED",
		}, accounts, nil)

		require.ErrorIs(t, err, errUnparsableRow)
		require.ErrorContains(t, err, "invalid amount")
	})

	t.Run("BadDate", func(t *testing.T) {
		_, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Card Payment",
			Description: "Tesco",
			Amount:      "-1.00",
			Currency:    "EUR",
			StartedDate: "02.01.2025",
			State:       "COMPLETED",
		}, accounts, nil)

		require.ErrorIs(t, err, errUnparsableRow)
		require.ErrorContains(t, err, "unrecognized date")
	})

	t.Run("MissingDate", func(t *testing.T) {
		_, err := svc.parseStatement(context.Background(), statementRow{
			Type:        "Card Payment",
			Description: "Tesco",
			Amount:      "-1.00",
			Currency:    "EUR",
			State:       "COMPLETED",
		}, accounts, nil)

		require.ErrorIs(t, err, errUnparsableRow)
		require.ErrorContains(t, err, "missing transaction date")
	})
}
