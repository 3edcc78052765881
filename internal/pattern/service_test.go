package pattern_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattcc18/financy-ledger/internal/pattern"
)

type mockRepo struct {
	available    bool
	findBestFunc func(ctx context.Context, t pattern.Type, value string) (*pattern.Pattern, error)
	upserts      []pattern.UpsertParams
	upsertErr    error
}

func (m *mockRepo) Available(ctx context.Context) bool { return m.available }

func (m *mockRepo) FindBest(ctx context.Context, t pattern.Type, value string) (*pattern.Pattern, error) {
	if m.findBestFunc != nil {
		return m.findBestFunc(ctx, t, value)
	}

	return nil, nil
}

func (m *mockRepo) Upsert(ctx context.Context, params pattern.UpsertParams) error {
	m.upserts = append(m.upserts, params)
	return m.upsertErr
}

func TestService_Best_Unavailable(t *testing.T) {
	repo := &mockRepo{available: false}
	svc := pattern.NewService(repo)

	got := svc.Best(context.Background(), pattern.TypeCategory, "Tesco Stores")
	assert.Nil(t, got)
}

func TestService_Best_SwallowsStoreErrors(t *testing.T) {
	repo := &mockRepo{
		available: true,
		findBestFunc: func(context.Context, pattern.Type, string) (*pattern.Pattern, error) {
			return nil, errors.New("relation does not exist")
		},
	}
	svc := pattern.NewService(repo)

	got := svc.Best(context.Background(), pattern.TypeCategory, "Tesco Stores")
	assert.Nil(t, got)
}

func TestService_Best_ReturnsRule(t *testing.T) {
	category := "Groceries"
	repo := &mockRepo{
		available: true,
		findBestFunc: func(_ context.Context, pt pattern.Type, value string) (*pattern.Pattern, error) {
			assert.Equal(t, pattern.TypeCategory, pt)
			assert.Equal(t, "Tesco Stores", value)

			return &pattern.Pattern{Type: pt, Value: value, Category: &category, Confidence: 0.9}, nil
		},
	}
	svc := pattern.NewService(repo)

	got := svc.Best(context.Background(), pattern.TypeCategory, "Tesco Stores")
	if assert.NotNil(t, got) {
		assert.Equal(t, &category, got.Category)
	}
}

func TestService_Learn_NoOpWhenUnavailable(t *testing.T) {
	repo := &mockRepo{available: false}
	svc := pattern.NewService(repo)

	err := svc.Learn(context.Background(), pattern.UpsertParams{
		Type:       pattern.TypeMerchant,
		Value:      "Tesco Stores",
		Confidence: 0.9,
	})
	assert.NoError(t, err)
	assert.Empty(t, repo.upserts)
}

func TestService_Learn_EmptyValueIgnored(t *testing.T) {
	repo := &mockRepo{available: true}
	svc := pattern.NewService(repo)

	err := svc.Learn(context.Background(), pattern.UpsertParams{Type: pattern.TypeMerchant})
	assert.NoError(t, err)
	assert.Empty(t, repo.upserts)
}
