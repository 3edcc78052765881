package category

import (
	"context"
	"fmt"
)

type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context, categoryType *string) ([]*Category, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validType(t string) bool {
	return t == TypeExpense || t == TypeIncome
}

func (s *Service) Create(ctx context.Context, name, categoryType string) (*Category, error) {
	if !validType(categoryType) {
		return nil, fmt.Errorf("category_type must be %q or %q", TypeExpense, TypeIncome)
	}

	c := &Category{Name: name, Type: categoryType}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// List returns all categories ordered by type then name, optionally
// restricted to one type.
func (s *Service) List(ctx context.Context, categoryType *string) ([]*Category, error) {
	if categoryType != nil && !validType(*categoryType) {
		return nil, fmt.Errorf("category_type must be %q or %q", TypeExpense, TypeIncome)
	}

	return s.repo.ListCategories(ctx, categoryType)
}

// Grouped returns all category names split into expense and income lists.
func (s *Service) Grouped(ctx context.Context) (*Grouped, error) {
	categories, err := s.repo.ListCategories(ctx, nil)
	if err != nil {
		return nil, err
	}

	grouped := &Grouped{
		ExpenseCategories: []string{},
		IncomeCategories:  []string{},
	}

	for _, c := range categories {
		if c.Type == TypeExpense {
			grouped.ExpenseCategories = append(grouped.ExpenseCategories, c.Name)
		} else {
			grouped.IncomeCategories = append(grouped.IncomeCategories, c.Name)
		}
	}

	return grouped, nil
}
