package budget

import (
	"context"
	"encoding/json"
)

type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id int64) (*Budget, error)
	ListBudgets(ctx context.Context) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name          string
	Currency      string
	IncomeSources json.RawMessage
	Categories    json.RawMessage
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	b := &Budget{
		Name:          params.Name,
		Currency:      params.Currency,
		IncomeSources: params.IncomeSources,
		Categories:    params.Categories,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx)
}

func (s *Service) Update(ctx context.Context, b *Budget) error {
	return s.repo.UpdateBudget(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteBudget(ctx, id)
}
