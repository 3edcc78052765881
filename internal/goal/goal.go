package goal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("goal not found")

// Goal is a savings or debt target with manual progress tracking.
type Goal struct {
	ID            int64
	Name          string
	GoalType      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Currency      string
	TargetDate    *time.Time
	Description   string
	Icon          string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
