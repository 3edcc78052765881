package goal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, id int64) (*Goal, error)
	ListGoals(ctx context.Context) ([]*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name          string
	GoalType      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Currency      string
	TargetDate    *time.Time
	Description   string
	Icon          string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	g := &Goal{
		Name:          params.Name,
		GoalType:      params.GoalType,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: params.CurrentAmount,
		Currency:      params.Currency,
		TargetDate:    params.TargetDate,
		Description:   params.Description,
		Icon:          params.Icon,
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Goal, error) {
	return s.repo.GetGoal(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Goal, error) {
	return s.repo.ListGoals(ctx)
}

func (s *Service) Update(ctx context.Context, g *Goal) error {
	return s.repo.UpdateGoal(ctx, g)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteGoal(ctx, id)
}
