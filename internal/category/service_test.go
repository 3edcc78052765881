package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	categories []*Category
	created    []*Category
}

func (r *stubRepo) CreateCategory(_ context.Context, c *Category) error {
	c.ID = int64(len(r.created) + 1)
	r.created = append(r.created, c)

	return nil
}

func (r *stubRepo) ListCategories(_ context.Context, categoryType *string) ([]*Category, error) {
	if categoryType == nil {
		return r.categories, nil
	}

	var filtered []*Category

	for _, c := range r.categories {
		if c.Type == *categoryType {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}

func TestService_Create_RejectsUnknownType(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "Groceries", "savings")

	require.ErrorContains(t, err, "category_type must be")
	assert.Empty(t, repo.created)
}

func TestService_Create(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), "Salary", TypeIncome)

	require.NoError(t, err)
	assert.Equal(t, "Salary", c.Name)
	assert.Equal(t, TypeIncome, c.Type)
	assert.NotZero(t, c.ID)
}

func TestService_List_RejectsUnknownFilter(t *testing.T) {
	svc := NewService(&stubRepo{})

	_, err := svc.List(context.Background(), ptr(string("savings")))

	require.ErrorContains(t, err, "category_type must be")
}

func TestService_Grouped(t *testing.T) {
	repo := &stubRepo{categories: []*Category{
		{Name: "Groceries", Type: TypeExpense},
		{Name: "Restaurants", Type: TypeExpense},
		{Name: "Salary", Type: TypeIncome},
	}}
	svc := NewService(repo)

	grouped, err := svc.Grouped(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Restaurants"}, grouped.ExpenseCategories)
	assert.Equal(t, []string{"Salary"}, grouped.IncomeCategories)
}

func TestService_Grouped_Empty(t *testing.T) {
	svc := NewService(&stubRepo{})

	grouped, err := svc.Grouped(context.Background())

	require.NoError(t, err)
	assert.Empty(t, grouped.ExpenseCategories)
	assert.Empty(t, grouped.IncomeCategories)
	assert.NotNil(t, grouped.ExpenseCategories)
}

func ptr[T any](v T) *T { return &v }
