package category

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("category not found")
	ErrExists   = errors.New("category already exists")
)

const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Category names a spending or income bucket users can assign to entries.
type Category struct {
	ID        int64
	Name      string
	Type      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Grouped splits category names by type, the shape the frontend pickers
// consume.
type Grouped struct {
	ExpenseCategories []string `json:"expense_categories"`
	IncomeCategories  []string `json:"income_categories"`
}
