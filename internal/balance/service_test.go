package balance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcc18/financy-ledger/internal/rate"
)

type stubRepo struct {
	rows []Row
}

func (r *stubRepo) AccountBalances(_ context.Context, _ *time.Time) ([]Row, error) {
	return r.rows, nil
}

func (r *stubRepo) AccountHistory(_ context.Context, _ string) ([]Row, error) {
	return r.rows, nil
}

type stubRates struct {
	history []rate.Rate
}

func (r *stubRates) History(_ context.Context, _, _ string) ([]rate.Rate, error) {
	return r.history, nil
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Balances_EURTarget(t *testing.T) {
	repo := &stubRepo{rows: []Row{
		{Date: day(10), AccountName: "Main", AccountType: "Current", Currency: "EUR", Amount: dec("100"), RateToEUR: dec("1")},
		{Date: day(10), AccountName: "US Broker", AccountType: "Investment", Currency: "USD", Amount: dec("220"), RateToEUR: dec("0.5")},
	}}
	svc := NewService(repo, &stubRates{})

	balances, err := svc.Balances(context.Background(), "EUR", nil)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.True(t, balances[0].AmountEUR.Equal(dec("100")))
	assert.True(t, balances[1].AmountEUR.Equal(dec("110")))
	assert.Nil(t, balances[0].Converted)
}

func TestService_Balances_ConvertsToTarget(t *testing.T) {
	repo := &stubRepo{rows: []Row{
		{Date: day(5), AccountName: "Main", AccountType: "Current", Currency: "EUR", Amount: dec("100"), RateToEUR: dec("1")},
		{Date: day(15), AccountName: "Main", AccountType: "Current", Currency: "EUR", Amount: dec("100"), RateToEUR: dec("1")},
	}}

	// newest first; the day(5) balance must pick the day(1) rate
	rates := &stubRates{history: []rate.Rate{
		{BaseCurrency: "EUR", TargetCurrency: "GBP", Rate: dec("0.9"), Date: day(10)},
		{BaseCurrency: "EUR", TargetCurrency: "GBP", Rate: dec("0.8"), Date: day(1)},
	}}
	svc := NewService(repo, rates)

	balances, err := svc.Balances(context.Background(), "gbp", nil)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	require.NotNil(t, balances[0].Converted)
	assert.True(t, balances[0].Converted.Equal(dec("80")), "got %s", balances[0].Converted)
	require.NotNil(t, balances[1].Converted)
	assert.True(t, balances[1].Converted.Equal(dec("90")), "got %s", balances[1].Converted)
}

func TestService_Balances_NoRateFallsBackToEUR(t *testing.T) {
	repo := &stubRepo{rows: []Row{
		{Date: day(5), AccountName: "Main", AccountType: "Current", Currency: "EUR", Amount: dec("100"), RateToEUR: dec("1")},
	}}
	svc := NewService(repo, &stubRates{})

	balances, err := svc.Balances(context.Background(), "GBP", nil)
	require.NoError(t, err)
	require.Len(t, balances, 1)

	require.NotNil(t, balances[0].Converted)
	assert.True(t, balances[0].Converted.Equal(dec("100")))
}

func TestService_Metrics(t *testing.T) {
	repo := &stubRepo{rows: []Row{
		{Date: day(10), AccountName: "Main", AccountType: "Current", Currency: "EUR", Amount: dec("300"), RateToEUR: dec("1")},
		{Date: day(10), AccountName: "Broker", AccountType: "Stocks ISA", Currency: "EUR", Amount: dec("100"), RateToEUR: dec("1")},
		{Date: day(10), AccountName: "Shoebox", AccountType: "Mystery", Currency: "EUR", Amount: dec("100"), RateToEUR: dec("1")},
	}}
	svc := NewService(repo, &stubRates{})

	metrics, err := svc.Metrics(context.Background(), "EUR", nil)
	require.NoError(t, err)

	// unrecognized account types count as cash
	assert.True(t, metrics.Cash.Equal(dec("400")), "cash %s", metrics.Cash)
	assert.True(t, metrics.Investments.Equal(dec("100")))
	assert.True(t, metrics.NetWorth.Equal(dec("500")))
	assert.True(t, metrics.CashInvestmentRatio.Equal(dec("20")), "ratio %s", metrics.CashInvestmentRatio)
}

func TestService_Metrics_Empty(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubRates{})

	metrics, err := svc.Metrics(context.Background(), "EUR", nil)
	require.NoError(t, err)

	assert.True(t, metrics.NetWorth.IsZero())
	assert.True(t, metrics.CashInvestmentRatio.IsZero())
}
