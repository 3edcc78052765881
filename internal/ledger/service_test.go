package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mattcc18/financy-ledger/internal/ledger"
)

func TestService_Transfer(t *testing.T) {
	type args struct {
		params ledger.TransferParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *ledger.MockRepository)
		verify    func(t *testing.T, got *ledger.PairResult)
		wantErr   bool
	}

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "LinkedPairInvariants",
			args: args{
				params: ledger.TransferParams{
					FromAccountID:   1,
					FromAccountName: "Current Account",
					ToAccountID:     2,
					ToAccountName:   "Savings Account",
					Amount:          decimal.RequireFromString("250.00"),
					Date:            date,
				},
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreatePair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil)
			},
			verify: func(t *testing.T, got *ledger.PairResult) {
				from, to := got.FromEntry, got.ToEntry

				// Amounts are exact negatives of each other.
				assert.True(t, from.Amount.Equal(to.Amount.Neg()))
				assert.True(t, from.Amount.IsNegative())

				// Both legs share one link id.
				require.NotNil(t, from.TransferLinkID)
				require.NotNil(t, to.TransferLinkID)
				assert.Equal(t, *from.TransferLinkID, *to.TransferLinkID)
				assert.Equal(t, got.TransferLinkID, *from.TransferLinkID)

				// Each leg carries the other account's name as merchant.
				assert.Equal(t, "Savings Account", from.Merchant)
				assert.Equal(t, "Current Account", to.Merchant)

				assert.Equal(t, ledger.TypeTransfer, from.Type)
				assert.Equal(t, ledger.CategoryTransfer, from.Category)
				assert.Nil(t, got.FeeEntry)
			},
		},
		{
			name: "WithFee",
			args: args{
				params: ledger.TransferParams{
					FromAccountID:   1,
					FromAccountName: "Current Account",
					ToAccountID:     2,
					ToAccountName:   "Savings Account",
					Amount:          decimal.RequireFromString("100"),
					Fees:            decimal.RequireFromString("1.50"),
					FeeCurrency:     "EUR",
					Date:            date,
				},
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreatePair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
					Return(nil)
			},
			verify: func(t *testing.T, got *ledger.PairResult) {
				require.NotNil(t, got.FeeEntry)
				assert.Equal(t, ledger.TypeExpense, got.FeeEntry.Type)
				assert.True(t, got.FeeEntry.Amount.Equal(decimal.RequireFromString("-1.50")))
				assert.Equal(t, int64(1), got.FeeEntry.AccountID)
				assert.Nil(t, got.FeeEntry.TransferLinkID)
			},
		},
		{
			name: "SameAccount",
			args: args{
				params: ledger.TransferParams{
					FromAccountID: 1,
					ToAccountID:   1,
					Amount:        decimal.RequireFromString("10"),
					Date:          date,
				},
			},
			wantErr: true,
		},
		{
			name: "NonPositiveAmount",
			args: args{
				params: ledger.TransferParams{
					FromAccountID: 1,
					ToAccountID:   2,
					Amount:        decimal.Zero,
					Date:          date,
				},
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			args: args{
				params: ledger.TransferParams{
					FromAccountID: 1,
					ToAccountID:   2,
					Amount:        decimal.RequireFromString("10"),
					Date:          date,
				},
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreatePair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.Transfer(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestService_Exchange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		CreatePair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil)

	svc := ledger.NewService(repo)

	got, err := svc.Exchange(context.Background(), ledger.ExchangeParams{
		FromAccountID:   1,
		FromAccountName: "EUR Account",
		FromCurrency:    "EUR",
		ToAccountID:     2,
		ToAccountName:   "GBP Account",
		ToCurrency:      "GBP",
		Amount:          decimal.RequireFromString("100"),
		ExchangeRate:    decimal.RequireFromString("0.85"),
		Date:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Destination leg is rate-converted, not mirrored.
	assert.True(t, got.FromEntry.Amount.Equal(decimal.RequireFromString("-100")))
	assert.True(t, got.ToEntry.Amount.Equal(decimal.RequireFromString("85")))
	require.NotNil(t, got.FromEntry.TransferLinkID)
	require.NotNil(t, got.ToEntry.TransferLinkID)
	assert.Equal(t, *got.FromEntry.TransferLinkID, *got.ToEntry.TransferLinkID)
}

func TestService_Exchange_InvalidRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := ledger.NewService(ledger.NewMockRepository(ctrl))

	_, err := svc.Exchange(context.Background(), ledger.ExchangeParams{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.RequireFromString("100"),
		ExchangeRate:  decimal.Zero,
		Date:          time.Now(),
	})
	assert.Error(t, err)
}

func TestService_CreateLinkedPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		CreatePair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil)

	svc := ledger.NewService(repo)

	from := &ledger.Entry{AccountID: 1, Amount: decimal.RequireFromString("-40")}
	to := &ledger.Entry{AccountID: 2, Amount: decimal.RequireFromString("40")}

	linkID, err := svc.CreateLinkedPair(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, ledger.TypeTransfer, from.Type)
	assert.Equal(t, ledger.CategoryTransfer, to.Category)
	require.NotNil(t, from.TransferLinkID)
	assert.Equal(t, linkID, *from.TransferLinkID)
	assert.Equal(t, linkID, *to.TransferLinkID)
}

func TestService_Create_TransferForcesCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
			e.ID = 7
			return nil
		})

	svc := ledger.NewService(repo)

	got, err := svc.Create(context.Background(), ledger.CreateParams{
		AccountID: 1,
		Amount:    decimal.RequireFromString("-12"),
		Type:      ledger.TypeTransfer,
		Category:  "Groceries",
		Date:      time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.CategoryTransfer, got.Category)
}
