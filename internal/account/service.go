package account

import (
	"context"
	"strings"
)

type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id int64) (*Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	Type         string
	Institution  string
	CurrencyCode string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	a := &Account{
		Name:         params.Name,
		Type:         params.Type,
		Institution:  params.Institution,
		CurrencyCode: strings.ToUpper(params.CurrencyCode),
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

// List returns all accounts ordered by name. The CSV import loads this once
// per upload and treats it as an immutable snapshot for the request.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) Update(ctx context.Context, a *Account) error {
	a.CurrencyCode = strings.ToUpper(a.CurrencyCode)
	return s.repo.UpdateAccount(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteAccount(ctx, id)
}
