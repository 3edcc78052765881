package rate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// LatestRates returns the most recent rate per target currency for the
	// base, considering only rates on or before the given date when set.
	LatestRates(ctx context.Context, base string, onOrBefore *time.Time) ([]Rate, error)
	RateHistory(ctx context.Context, base, target string) ([]Rate, error)
	UpsertRate(ctx context.Context, r Rate) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Latest returns a conversion snapshot from the base currency to every
// currency with a recorded rate. Straight lookup only, no inference.
func (s *Service) Latest(ctx context.Context, base string, onOrBefore *time.Time) (*Snapshot, error) {
	base = strings.ToUpper(base)

	rates, err := s.repo.LatestRates(ctx, base, onOrBefore)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		BaseCurrency: base,
		Rates:        map[string]decimal.Decimal{base: decimal.NewFromInt(1)},
	}

	for _, r := range rates {
		snapshot.Rates[r.TargetCurrency] = r.Rate

		if snapshot.Date == nil || r.Date.After(*snapshot.Date) {
			d := r.Date
			snapshot.Date = &d
		}
	}

	return snapshot, nil
}

// History returns every recorded rate for one currency pair, newest first.
func (s *Service) History(ctx context.Context, base, target string) ([]Rate, error) {
	return s.repo.RateHistory(ctx, strings.ToUpper(base), strings.ToUpper(target))
}

func (s *Service) Upsert(ctx context.Context, r Rate) error {
	if !r.Rate.IsPositive() {
		return fmt.Errorf("rate must be greater than zero")
	}

	r.BaseCurrency = strings.ToUpper(r.BaseCurrency)
	r.TargetCurrency = strings.ToUpper(r.TargetCurrency)

	return s.repo.UpsertRate(ctx, r)
}
