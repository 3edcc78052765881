package pattern

import (
	"context"
	"log/slog"
)

type Repository interface {
	// Available reports whether the backing table exists. Learning is an
	// optional enhancement; when the table is absent every lookup misses and
	// every upsert is a no-op.
	Available(ctx context.Context) bool

	FindBest(ctx context.Context, patternType Type, value string) (*Pattern, error)
	Upsert(ctx context.Context, params UpsertParams) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type UpsertParams struct {
	Type            Type
	Value           string
	AccountID       *int64
	Category        *string
	TransactionType *string
	Confidence      float64
}

// Best returns the strongest learned rule for the value, or nil when there is
// none. Store failures degrade to "no rule found" so a broken or missing
// pattern table never affects an import.
func (s *Service) Best(ctx context.Context, patternType Type, value string) *Pattern {
	if value == "" || !s.repo.Available(ctx) {
		return nil
	}

	p, err := s.repo.FindBest(ctx, patternType, value)
	if err != nil {
		slog.Warn("pattern lookup failed", "pattern_type", patternType, "error", err)
		return nil
	}

	return p
}

// Learn records a confirmed classification. Creates the rule on first sight;
// on repeat, fills in absent outcome fields, raises the confidence to the max
// of old and new, and bumps the usage count.
func (s *Service) Learn(ctx context.Context, params UpsertParams) error {
	if params.Value == "" || !s.repo.Available(ctx) {
		return nil
	}

	return s.repo.Upsert(ctx, params)
}
